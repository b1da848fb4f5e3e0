package sim

import "github.com/vovakirdan/tui-platformer/internal/physics"

// Forces are applied to every finite-mass body at the start of its step.
type Forces struct {
	Gravity float64 // added to Y velocity
	Drag    float64 // fraction of velocity removed
}

// DefaultForces returns the stock gravity and air drag.
func DefaultForces() Forces {
	return Forces{Gravity: 0.4, Drag: 0.005}
}

// Apply adds gravity then drag. Immovable bodies are left alone.
func (f Forces) Apply(b *physics.Body) {
	if b.IsImmovable() {
		return
	}
	b.Vel.Y += f.Gravity
	b.Vel = b.Vel.Sub(b.Vel.Mul(f.Drag))
}
