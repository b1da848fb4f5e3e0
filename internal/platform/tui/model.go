package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/watch"
)

// statusTicks is how long a status message replaces the key help.
const statusTicks = 180

// RunOptions carries the optional parts of a game session.
type RunOptions struct {
	// Config is applied to configurable games before the first reset.
	// Nil keeps each game's defaults.
	Config *config.PlatformerConfig

	// Reloads delivers edited config files while the game runs.
	Reloads <-chan watch.Reload
}

// ConfigReloadMsg carries a config file the watcher re-read.
type ConfigReloadMsg watch.Reload

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       RunOptions
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	statusLeft int
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score and run have been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// The bottom terminal row is kept for the key help.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts RunOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		opts:       opts,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Init configures and resets the game, then starts the tick loop.
func (m Model) Init() tea.Cmd {
	if c, ok := m.game.(registry.Configurable); ok && m.opts.Config != nil {
		c.Configure(*m.opts.Config)
	}
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Reloads != nil {
		cmds = append(cmds, waitForReload(m.opts.Reloads))
	}
	return tea.Batch(cmds...)
}

// waitForReload blocks until the watcher delivers a config. A closed channel
// ends the wait for good.
func waitForReload(reloads <-chan watch.Reload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-reloads
		if !ok {
			return nil
		}
		return ConfigReloadMsg(r)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys().Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.setStatus("screenshot failed: " + err.Error())
		} else {
			m.setStatus("saved " + path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun(storage.OutcomeAborted)
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		// Only leave a game that is not in motion.
		if m.gameState.GameOver || m.gameState.Paused {
			m.saveRun(storage.OutcomeAborted)
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. Games draw relative to the
// screen they are given, so the simulation keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.statusLeft > 0 {
		m.statusLeft--
		if m.statusLeft == 0 {
			m.status = ""
		}
	}

	// A restart after game over gets a fresh seed.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score and run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.saveRun(storage.OutcomeGameOver)
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleReload hands a re-read config to the game and waits for the next one.
func (m Model) handleReload(msg ConfigReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Reloads)
	if msg.Err != nil {
		m.setStatus("config not reloaded: " + msg.Err.Error())
		return m, next
	}

	cfg := msg.Config
	m.opts.Config = &cfg
	if c, ok := m.game.(registry.Configurable); ok {
		c.Configure(cfg)
		m.setStatus("reloaded " + filepath.Base(msg.Path))
	}
	return m, next
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusLeft = statusTicks
}

// saveRun records the current run unless nothing was simulated. Games
// without a world store a zero hash.
func (m *Model) saveRun(outcome string) {
	state := m.game.State()
	if m.store == nil || state.Tick == 0 {
		return
	}

	run := storage.RunRecord{
		GameID:          m.game.ID(),
		Seed:            m.config.Seed,
		Ticks:           state.Tick,
		Score:           state.Score,
		BodiesRemaining: state.Bodies,
		Outcome:         outcome,
	}
	if s, ok := m.game.(registry.Snapshotter); ok {
		snap := s.Snapshot()
		run.StateHash = snap.Hash()
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(run)
}

// saveScreenshot writes the current screen to ~/.platformer/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	footer := renderFooter(m.status, m.help.View(m.keys.Keys()), m.config.ScreenW)
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game.
// It reports whether the player asked to return to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts RunOptions) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
