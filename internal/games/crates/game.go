// Package crates implements a stacking sandbox. Crates drop into a walled
// arena one at a time; the game ends when a resting crate pokes above the
// drop line.
package crates

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/geom"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/view"
)

// Game implements the crate stacking game.
type Game struct {
	cfg        config.PlatformerConfig
	rt         core.RuntimeConfig
	world      *sim.World
	dropper    *Dropper
	camera     *view.Camera
	difficulty *config.DifficultyManager
	logger     *log.Logger

	gameOver bool
	paused   bool
	reason   string
}

// New creates a crates game using the default platformer config.
func New() *Game {
	g := &Game{}
	g.Configure(config.DefaultPlatformerConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "crates"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Crate Stack"
}

// Configure applies new tunables. Arena size changes take effect on the next
// Reset.
func (g *Game) Configure(cfg config.PlatformerConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.camera == nil {
		g.camera = view.NewCamera(cfg.Camera)
	} else {
		g.camera.SetConfig(cfg.Camera)
	}
	if g.dropper != nil {
		g.dropper.UpdateConfig(cfg.Crates, g.difficulty)
	}
	if g.world != nil {
		g.world.SetSettings(cfg.Physics.Settings())
		g.world.SetForces(cfg.Physics.Forces())
	}
}

// SetLogger sets the logger handed to the world on the next Reset.
func (g *Game) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Reset empties the arena.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.world = sim.NewWorld(g.cfg.Physics.Settings(), g.cfg.Physics.Forces(), g.logger)
	g.dropper = NewDropper(rt.Seed, g.cfg.Crates, g.difficulty)
	g.gameOver = false
	g.paused = false
	g.reason = ""

	c := g.cfg.Crates
	bodies := append(walls(c.ArenaWidth, c.ArenaHeight, c.CrateSize), g.dropper.body(g.world.Tick))
	for _, b := range bodies {
		if err := g.world.Insert(b); err != nil {
			panic(fmt.Sprintf("crates: %v", err))
		}
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(g.rt)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.dropper.Move(-1)
	}
	if in.Has(core.ActionRight) {
		g.dropper.Move(1)
	}
	if in.Has(core.ActionJump) {
		g.dropper.Request()
	}

	g.world.Step(nil)
	events := g.dropper.takeEvents()

	resting, overflow := g.survey()
	switch {
	case overflow:
		g.end("the stack reached the drop line")
	case g.cfg.Crates.MaxCrates > 0 && resting >= g.cfg.Crates.MaxCrates:
		g.end("every crate is stacked")
	}
	if g.gameOver {
		events = append(events, "game over: "+g.reason)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) end(reason string) {
	g.gameOver = true
	g.reason = reason
}

// survey counts resting crates and reports whether one of them sticks out
// more than half a crate above the arena.
func (g *Game) survey() (resting int, overflow bool) {
	for _, b := range g.crates() {
		if !b.IsAttached() {
			continue
		}
		resting++
		if b.WorldBounds()[0].Y < -g.cfg.Crates.CrateSize/2 {
			overflow = true
		}
	}
	return resting, overflow
}

func (g *Game) crates() []*physics.Body {
	all := g.world.Bodies()
	var out []*physics.Body
	for _, name := range g.world.Names() {
		if strings.HasPrefix(name, cratePrefix+"-") {
			out = append(out, all[name])
		}
	}
	return out
}

// State returns the current game state. The score is the number of crates
// in the arena.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    len(g.crates()),
		Bodies:   g.world.Len(),
		Tick:     g.world.Tick(),
		GameOver: g.gameOver,
		Paused:   g.paused,
		Reason:   g.reason,
	}
}

// Snapshot returns the physical state of every body.
func (g *Game) Snapshot() sim.Snapshot {
	return g.world.Snapshot()
}

// Render draws the arena scaled to fit the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	c := g.cfg.Crates
	area := geom.R(-c.CrateSize, -3*c.CrateSize, c.ArenaWidth+2*c.CrateSize, c.ArenaHeight+4*c.CrateSize)
	g.camera.Fit(area, dst.Width(), dst.Height())

	line := g.camera.CellRect(geom.R(0, 0, c.ArenaWidth, 1), dst.Width(), dst.Height())
	for x := line.X; x < line.Right(); x++ {
		dst.SetColored(x, line.Y, '·', core.ColorGray)
	}

	all := g.world.Bodies()
	bodies := make([]*physics.Body, 0, g.world.Len())
	for _, name := range g.world.Names() {
		bodies = append(bodies, all[name])
	}
	view.DrawBodies(dst, g.camera, bodies, sprite)

	state := g.State()
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Crates: %d ", state.Score), core.ColorBrightWhite)
	if !g.dropper.Ready() {
		dst.DrawTextColored(16, 0, "…", core.ColorGray)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("%s  |  Crates: %d  |  Press R to restart", g.reason, state.Score))
	}
}

func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	centerY := dst.Height() / 2
	width := max(len([]rune(subtitle)), len(title)) + 4
	box := core.NewRect((dst.Width()-width)/2, centerY-2, width, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCenteredColored(centerY-1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(centerY+1, subtitle)
}

func sprite(b *physics.Body) view.Sprite {
	switch {
	case b.Name == dropperName:
		return view.Sprite{Glyph: 'V', Color: core.ColorBrightYellow, Layer: 2}
	case strings.HasPrefix(b.Name, cratePrefix):
		color := core.ColorOrange
		if !b.IsAttached() {
			color = core.ColorYellow
		}
		return view.Sprite{Glyph: '▣', Color: color, Layer: 1}
	default:
		return view.Sprite{Glyph: '█', Color: core.ColorGray}
	}
}

func init() {
	registry.Register("crates", func() registry.Game {
		return New()
	})
}
