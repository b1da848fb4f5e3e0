// Package penguin implements a side-scrolling platformer. A penguin runs,
// slides and jumps across grass terraces and moving platforms, stomping
// spiders on the way.
package penguin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/view"
)

// holdTicks keeps a movement key active between terminal key repeats.
const holdTicks = 8

// controls is the input the penguin's tick hook reads.
type controls struct {
	left, right, duck bool
	jump              bool
	zoomIn, zoomOut   bool
	recenter, respawn bool
}

// Game implements the penguin platformer.
type Game struct {
	cfg        config.PlatformerConfig
	rt         core.RuntimeConfig
	world      *sim.World
	camera     *view.Camera
	difficulty *config.DifficultyManager
	logger     *log.Logger
	drawn      view.Collector

	held        map[core.Action]int
	controls    controls
	patrolSpeed float64

	stomps   int
	maxX     float64
	events   []string
	gameOver bool
	paused   bool
	reason   string
}

// New creates a penguin game using the default platformer config.
func New() *Game {
	g := &Game{held: make(map[core.Action]int)}
	g.Configure(config.DefaultPlatformerConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "penguin"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Penguin Slide"
}

// Configure applies new tunables. A running world picks them up on its next
// step.
func (g *Game) Configure(cfg config.PlatformerConfig) {
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if g.camera == nil {
		g.camera = view.NewCamera(cfg.Camera)
	} else {
		g.camera.SetConfig(cfg.Camera)
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

// Reset builds the level from scratch.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.world = sim.NewWorld(g.cfg.Physics.Settings(), g.cfg.Physics.Forces(), g.logger)
	g.camera = view.NewCamera(g.cfg.Camera)
	g.drawn.Reset()
	clear(g.held)
	g.controls = controls{}
	g.patrolSpeed = g.cfg.Enemies.PatrolSpeed
	g.stomps = 0
	g.maxX = playerSpawn.X
	g.events = nil
	g.gameOver = false
	g.paused = false
	g.reason = ""

	for _, b := range g.level() {
		if err := g.world.Insert(b); err != nil {
			panic(fmt.Sprintf("penguin: %v", err))
		}
	}
	if p, ok := g.world.Get(PlayerName); ok {
		g.camera.Follow(p)
	}
}

// level returns the bodies of a fresh level in processing order.
func (g *Game) level() []*physics.Body {
	bodies := []*physics.Body{g.newPlayer()}
	for i := range platformCount {
		bodies = append(bodies, g.newPlatform(i))
	}
	for y := -1; y <= 0; y++ {
		for x := -2 + y; x < 2+y; x++ {
			bodies = append(bodies, newGrass(x, y))
		}
	}
	for i := firstCrate; i <= lastCrate; i++ {
		bodies = append(bodies, newCrate(i))
	}
	for i := 1; i <= spiderCount; i++ {
		bodies = append(bodies, g.newSpider(i))
	}
	return bodies
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

	g.readInput(in)
	g.events = nil
	g.patrolSpeed = g.difficulty.Speed(g.cfg.Enemies.PatrolSpeed, g.score(), g.world.Tick())

	g.drawn.Reset()
	g.world.Step(&g.drawn)

	player, ok := g.world.Get(PlayerName)
	if !ok {
		g.end("the penguin is gone")
		return core.StepResult{State: g.State(), Events: g.events}
	}

	if g.controls.recenter {
		g.camera.Recenter()
	}
	g.camera.Zoom = player.ScratchOr(keyZoom, g.cfg.Camera.DefaultZoom)
	g.camera.Follow(player)
	g.maxX = max(g.maxX, player.Pos.X)

	switch {
	case player.ScratchOr(keyHealth, 0) <= 0:
		g.end("caught by a spider")
	case player.Pos.Y > killPlaneY:
		g.end("fell into the sea")
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) end(reason string) {
	g.gameOver = true
	g.reason = reason
	g.events = append(g.events, "game over: "+reason)
}

// readInput turns this frame's actions into the controls the hooks see.
// Movement keys stay held for a few ticks so a repeating key feels continuous.
func (g *Game) readInput(in core.InputFrame) {
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionDuck} {
		if in.Has(a) {
			g.held[a] = holdTicks
		} else if g.held[a] > 0 {
			g.held[a]--
		}
	}
	if in.Has(core.ActionLeft) {
		g.held[core.ActionRight] = 0
	}
	if in.Has(core.ActionRight) {
		g.held[core.ActionLeft] = 0
	}

	g.controls = controls{
		left:     g.held[core.ActionLeft] > 0,
		right:    g.held[core.ActionRight] > 0,
		duck:     g.held[core.ActionDuck] > 0,
		jump:     in.Has(core.ActionJump),
		zoomIn:   in.Has(core.ActionZoomIn),
		zoomOut:  in.Has(core.ActionZoomOut),
		recenter: in.Has(core.ActionRecenter),
		respawn:  in.Has(core.ActionRestart),
	}
}

// score is the stomp bonus plus one point per hundred units travelled.
func (g *Game) score() int {
	progress := int((g.maxX - playerSpawn.X) / 100)
	return g.stomps*g.cfg.Enemies.StompScore + max(progress, 0)
}

func (g *Game) health() int {
	if p, ok := g.world.Get(PlayerName); ok {
		return max(int(p.ScratchOr(keyHealth, 0)), 0)
	}
	return 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.score(),
		Health:   g.health(),
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

// Render draws the bodies drawn in the last step, or every body before the
// first step.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	bodies := g.drawn.Bodies()
	if len(bodies) == 0 {
		all := g.world.Bodies()
		for _, name := range g.world.Names() {
			bodies = append(bodies, all[name])
		}
	}
	view.DrawBodies(dst, g.camera, bodies, sprite)

	hearts := strings.Repeat("♥", g.health())
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %d ", g.score()), core.ColorBrightWhite)
	dst.DrawTextColored(16, 0, hearts, core.ColorBrightRed)
	zoom := fmt.Sprintf(" zoom ×%.2f ", g.camera.Zoom/g.cfg.Camera.DefaultZoom)
	dst.DrawTextColored(dst.Width()-len([]rune(zoom))-1, 0, zoom, core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("%s  |  Score: %d  |  Press R to restart", g.reason, g.score()))
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

// sprite picks the look of each body kind.
func sprite(b *physics.Body) view.Sprite {
	switch kind(b.Name) {
	case grassPrefix:
		return view.Sprite{Glyph: '▒', Top: '"', Color: core.ColorGreen, Layer: 0}
	case platformPrefix:
		return view.Sprite{Glyph: '▀', Color: core.ColorYellow, Layer: 1}
	case cratePrefix:
		return view.Sprite{Glyph: '#', Color: core.ColorOrange, Layer: 2}
	case spiderPrefix:
		return view.Sprite{Glyph: 'Ж', Color: core.ColorBrightRed, Layer: 3}
	case PlayerName:
		glyph := '◀'
		if b.Params.FlipX {
			glyph = '▶'
		}
		if b.ScratchOr(keyDucking, 0) != 0 {
			glyph = '▬'
		}
		return view.Sprite{Glyph: glyph, Color: core.ColorBrightCyan, Layer: 4}
	default:
		return view.Sprite{Glyph: '?', Color: core.ColorGray}
	}
}

func init() {
	registry.Register("penguin", func() registry.Game {
		return New()
	})
}
