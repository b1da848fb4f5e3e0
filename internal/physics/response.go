package physics

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

// Outcome tells the engine what to do after a collision response.
type Outcome struct {
	cont  bool
	delta int
}

// Continue ends resolution on the current axis after the obstacle's own
// response has run with roles reversed.
func Continue() Outcome {
	return Outcome{cont: true}
}

// DontPropagate adds n to the iteration counter. Positive values keep the
// sweep going; a result that drops the counter to zero or below ends it.
func DontPropagate(n int) Outcome {
	return Outcome{delta: n}
}

// IsContinue reports whether the outcome is Continue.
func (o Outcome) IsContinue() bool {
	return o.cont
}

// Delta returns the counter adjustment of a DontPropagate outcome.
func (o Outcome) Delta() int {
	return o.delta
}

func (o Outcome) String() string {
	if o.cont {
		return "Continue"
	}
	return fmt.Sprintf("DontPropagate(%d)", o.delta)
}

// FlatOutcome is what FlatCollide returns.
var FlatOutcome = DontPropagate(-10)

// DefaultCollide is used when a body has no collide hook. On the vertical
// axis the upper body becomes attached to the lower one. The velocity
// response is elastic against finite masses and flat against immovable ones.
func DefaultCollide(axis geom.Axis, a, b *Body, intersection geom.Rect) Outcome {
	if axis == geom.AxisY {
		if a.Pos.Y < b.Pos.Y {
			a.AttachTo(b)
		} else {
			b.AttachTo(a)
		}
	}
	if !b.IsImmovable() {
		return ElasticCollide(axis, a, b, intersection)
	}
	return FlatCollide(axis, a, b, intersection)
}

// ElasticCollide exchanges momentum along axis using the one-dimensional
// elastic collision formula scaled by the product of both elasticities.
// Only the axis components of the velocities change.
func ElasticCollide(axis geom.Axis, a, b *Body, _ geom.Rect) Outcome {
	e := a.Elasticity * b.Elasticity
	ua := axis.Component(a.Vel)
	ub := axis.Component(b.Vel)

	var av, bv float64
	switch {
	case a.IsImmovable() && b.IsImmovable():
		av, bv = ua, ub
	case b.IsImmovable():
		av, bv = -e*ua, ub
	case a.IsImmovable():
		av, bv = ua, -e*ub
	default:
		ma, mb := a.Mass, b.Mass
		sum := ma + mb
		av = ((ma-mb)/sum*ua + 2*mb/sum*ub) * e
		bv = (2*ma/sum*ua - (ma-mb)/sum*ub) * e
	}

	if math.IsNaN(av) {
		av = 0
	}
	if math.IsNaN(bv) {
		bv = 0
	}
	a.Vel = axis.With(a.Vel, av)
	b.Vel = axis.With(b.Vel, bv)

	return DontPropagate(1)
}

// FlatCollide pushes a finite-mass mover out of an immovable obstacle by
// adding the penetration depth to its velocity. Position is left alone; the
// engine integrates the corrected velocity after the sweep.
func FlatCollide(axis geom.Axis, a, b *Body, intersection geom.Rect) Outcome {
	if a.IsImmovable() {
		return FlatOutcome
	}
	switch axis {
	case geom.AxisX:
		if a.Vel.X <= 0 {
			a.Vel.X += intersection.W
		} else {
			a.Vel.X -= intersection.W
		}
	case geom.AxisY:
		if a.Pos.Y > b.Pos.Y {
			a.Vel.Y += intersection.H
		} else {
			a.Vel.Y -= intersection.H
		}
	}
	return FlatOutcome
}
