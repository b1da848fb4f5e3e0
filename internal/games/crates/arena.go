package crates

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/geom"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Fixed body names.
const (
	floorName   = "floor"
	leftWall    = "wall-left"
	rightWall   = "wall-right"
	dropperName = "dropper"
	cratePrefix = "crate"
)

// Dropper tracks where and when the next crate falls. It lives in the world
// as a body without bounds whose tick hook inserts new crates.
type Dropper struct {
	rng        *rand.Rand
	cfg        config.CratesConfig
	difficulty *config.DifficultyManager

	column    int
	cooldown  int
	dropped   int
	requested bool
	events    []string
}

// NewDropper creates a dropper with the given RNG seed.
func NewDropper(seed int64, cfg config.CratesConfig, diff *config.DifficultyManager) *Dropper {
	d := &Dropper{cfg: cfg, difficulty: diff}
	d.Reset(seed)
	return d
}

// UpdateConfig updates the configuration.
func (d *Dropper) UpdateConfig(cfg config.CratesConfig, diff *config.DifficultyManager) {
	d.cfg = cfg
	d.difficulty = diff
	d.column = min(d.column, d.Columns()-1)
}

// Reset forgets every drop and reseeds the RNG.
func (d *Dropper) Reset(seed int64) {
	d.rng = rand.New(rand.NewSource(seed))
	d.column = d.rng.Intn(d.Columns())
	d.cooldown = 0
	d.dropped = 0
	d.requested = false
	d.events = nil
}

// Columns returns how many crates fit side by side in the arena.
func (d *Dropper) Columns() int {
	return max(int(d.cfg.ArenaWidth/d.cfg.CrateSize), 1)
}

// Column returns the column the next crate falls in.
func (d *Dropper) Column() int {
	return d.column
}

// Move shifts the drop column, staying inside the arena.
func (d *Dropper) Move(delta int) {
	d.column = min(max(d.column+delta, 0), d.Columns()-1)
}

// Request asks for a crate on the next tick.
func (d *Dropper) Request() {
	d.requested = true
}

// Dropped returns the number of crates dropped so far.
func (d *Dropper) Dropped() int {
	return d.dropped
}

// Ready reports whether a requested crate would fall now.
func (d *Dropper) Ready() bool {
	return d.cooldown == 0 && (d.cfg.MaxCrates <= 0 || d.dropped < d.cfg.MaxCrates)
}

func (d *Dropper) spawnY() float64 {
	return -2 * d.cfg.CrateSize
}

// body returns the dropper's marker body.
func (d *Dropper) body(tick func() uint64) *physics.Body {
	size := d.cfg.CrateSize
	b := physics.NewBody(
		geom.R(0, 0, size, size),
		geom.R(float64(d.column)*size, d.spawnY(), size, size),
		nil,
	)
	b.Name = dropperName
	b.Mass = physics.Infinite
	b.Tick = func(self *physics.Body, others physics.Bodies) {
		d.tick(self, others, tick())
	}
	return b
}

func (d *Dropper) tick(self *physics.Body, others physics.Bodies, tick uint64) {
	if d.cooldown > 0 {
		d.cooldown--
	}
	self.Pos.X = float64(d.column) * d.cfg.CrateSize

	if !d.requested || !d.Ready() {
		d.requested = false
		return
	}
	d.requested = false

	d.dropped++
	crate := newCrate(fmt.Sprintf("%s-%03d", cratePrefix, d.dropped), self.Pos, d.cfg.CrateSize)
	others[crate.Name] = crate
	d.events = append(d.events, "drop "+crate.Name)

	d.cooldown = d.difficulty.Cooldown(d.cfg.SpawnCooldown, d.dropped, tick)
	d.column = d.rng.Intn(d.Columns())
	self.Pos.X = float64(d.column) * d.cfg.CrateSize
}

// takeEvents returns and clears the events recorded since the last call.
func (d *Dropper) takeEvents() []string {
	events := d.events
	d.events = nil
	return events
}

func newCrate(name string, pos geom.Vec, size float64) *physics.Body {
	b := physics.NewBody(
		geom.R(0, 0, size, size),
		geom.R(pos.X, pos.Y, size, size),
		[]geom.Rect{geom.R(0, 0, size, size)},
	)
	b.Name = name
	b.Elasticity = 0.2
	b.Collide = crateCollide
	return b
}

// crateCollide bounces crates off each other sideways and stacks them
// vertically: the upper one rests on the lower and the mover is pushed out.
func crateCollide(axis geom.Axis, a, b *physics.Body, inter geom.Rect) physics.Outcome {
	if axis == geom.AxisX {
		if a.RestsOn(b.Name) || b.RestsOn(a.Name) || b.IsImmovable() {
			return physics.FlatCollide(axis, a, b, inter)
		}
		return physics.ElasticCollide(axis, a, b, inter)
	}
	if a.Pos.Y < b.Pos.Y {
		a.AttachTo(b)
	} else {
		b.AttachTo(a)
	}
	return physics.FlatCollide(axis, a, b, inter)
}

// walls returns the floor and side walls around a w×h arena.
func walls(w, h, size float64) []*physics.Body {
	wall := func(name string, x, y, bw, bh float64) *physics.Body {
		b := physics.NewBody(geom.R(0, 0, bw, bh), geom.R(x, y, bw, bh), []geom.Rect{geom.R(0, 0, bw, bh)})
		b.Name = name
		b.Mass = physics.Infinite
		b.Elasticity = 0
		return b
	}
	top := -4 * size
	return []*physics.Body{
		wall(floorName, -size, h, w+2*size, size),
		wall(leftWall, -size, top, size, h-top),
		wall(rightWall, w, top, size, h-top),
	}
}
