// Package physics implements an axis-separated AABB collision and impulse
// engine. Bodies carry their own behavior as plain function values; the
// engine moves one body at a time against a shared collection of the others.
package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

// Default body parameters.
const (
	DefaultName       = "Article"
	DefaultMass       = 1.0
	DefaultFriction   = 0.9
	DefaultElasticity = 0.01
)

// Infinite is the mass of an immovable body.
var Infinite = math.Inf(1)

// Bodies is the shared collection of simulated bodies, keyed by name.
type Bodies map[string]*Body

// Names returns the keys sorted, giving a stable iteration order.
func (bs Bodies) Names() []string {
	names := make([]string, 0, len(bs))
	for name := range bs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TickFunc is a per-step behavior hook. It may read and mutate the other
// bodies and insert new ones into the collection.
type TickFunc func(self *Body, others Bodies)

// CollideFunc resolves a contact between a (the mover, or the body whose hook
// runs) and b along one axis. The intersection is in world coordinates.
type CollideFunc func(axis geom.Axis, a, b *Body, intersection geom.Rect) Outcome

// DrawFunc runs after a body has been resolved. Returning false suppresses
// the default renderer for that body.
type DrawFunc func(self *Body) bool

// Params are presentation parameters carried for renderers. The engine only
// refreshes Pivot.
type Params struct {
	Source   geom.Rect
	Size     geom.Vec
	Rotation float64
	FlipX    bool
	FlipY    bool
	Pivot    geom.Vec
}

// Body is a simulated rectangle-bounded object.
type Body struct {
	Name   string
	Bounds []geom.Rect // local collision rectangles relative to Pos

	Pos  geom.Vec
	Vel  geom.Vec
	Mass float64
	CoG  geom.Vec

	Friction   float64
	Elasticity float64

	// Destroy marks the body for removal at the end of the current step.
	Destroy bool

	// Attached names the body this one rests on; empty when airborne.
	Attached string
	// AttachedFrom lists the bodies resting on this one.
	AttachedFrom []string

	Scratch map[string]float64
	Params  Params

	Tick    TickFunc
	Collide CollideFunc
	Draw    DrawFunc
}

// NewBody creates a body positioned at dest's origin with dest's size as its
// drawn size and default physical parameters.
func NewBody(src, dest geom.Rect, bounds []geom.Rect) *Body {
	return &Body{
		Name:       DefaultName,
		Bounds:     bounds,
		Pos:        dest.Pos(),
		Mass:       DefaultMass,
		CoG:        dest.Size().Mul(0.5),
		Friction:   DefaultFriction,
		Elasticity: DefaultElasticity,
		Scratch:    make(map[string]float64),
		Params: Params{
			Source: src,
			Size:   dest.Size(),
			Pivot:  geom.V(0.5, 0.5),
		},
	}
}

// IsImmovable reports whether the body has infinite mass.
func (b *Body) IsImmovable() bool {
	return math.IsInf(b.Mass, 1)
}

// HasBounds reports whether the body takes part in collisions.
func (b *Body) HasBounds() bool {
	return len(b.Bounds) > 0
}

// WorldBounds returns the collision rectangles offset by the body position.
func (b *Body) WorldBounds() []geom.Rect {
	out := make([]geom.Rect, len(b.Bounds))
	for i, r := range b.Bounds {
		out[i] = r.Offset(b.Pos)
	}
	return out
}

// Rect returns the drawn rectangle in world coordinates.
func (b *Body) Rect() geom.Rect {
	return geom.R(b.Pos.X, b.Pos.Y, b.Params.Size.X, b.Params.Size.Y)
}

// RefreshPivot recenters the draw pivot on the body.
func (b *Body) RefreshPivot() {
	b.Params.Pivot = b.Pos.Add(b.Params.Size.Mul(0.5))
}

// ScratchOr returns the scratch value for key, or def when unset.
func (b *Body) ScratchOr(key string, def float64) float64 {
	if v, ok := b.Scratch[key]; ok {
		return v
	}
	return def
}

// SetScratch stores a scratch value.
func (b *Body) SetScratch(key string, value float64) {
	if b.Scratch == nil {
		b.Scratch = make(map[string]float64)
	}
	b.Scratch[key] = value
}

// AddScratch adds delta to a scratch value (missing counts as zero) and
// returns the result.
func (b *Body) AddScratch(key string, delta float64) float64 {
	v := b.ScratchOr(key, 0) + delta
	b.SetScratch(key, v)
	return v
}

func (b *Body) String() string {
	return fmt.Sprintf("%s %v %v %v %v", b.Name, b.Pos.X, b.Pos.Y, b.Params.Size.X, b.Params.Size.Y)
}
