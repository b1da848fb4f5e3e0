package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

func box(name string, x, y, w, h float64) *Body {
	b := NewBody(geom.R(0, 0, w, h), geom.R(x, y, w, h), []geom.Rect{geom.R(0, 0, w, h)})
	b.Name = name
	return b
}

func wall(name string, x, y, w, h float64) *Body {
	b := box(name, x, y, w, h)
	b.Mass = Infinite
	return b
}

func bodies(bs ...*Body) Bodies {
	out := make(Bodies, len(bs))
	for _, b := range bs {
		out[b.Name] = b
	}
	return out
}

func TestResolveFlatStopLandsFlush(t *testing.T) {
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(0, 10)
	floor := wall("floor", 0, 16, 100, 10)

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(floor))

	require.InDelta(t, 6, mover.Vel.Y, 1e-9)
	require.InDelta(t, 6, mover.Pos.Y, 1e-9)
	require.InDelta(t, floor.Pos.Y, mover.Pos.Y+10, 1e-9)
	require.Equal(t, "floor", mover.Attached)
	require.Equal(t, []string{"mover"}, floor.AttachedFrom)
}

func TestResolveElasticSwap(t *testing.T) {
	a := box("a", 0, 0, 10, 10)
	a.Vel = geom.V(5, 0)
	a.Elasticity = 1
	b := box("b", 12, 0, 10, 10)
	b.Vel = geom.V(-5, 0)
	b.Elasticity = 1

	NewEngine(DefaultSettings(), nil).Resolve(a, bodies(b))

	require.InDelta(t, -5, a.Vel.X, 1e-9)
	require.InDelta(t, 5, b.Vel.X, 1e-9)
	require.InDelta(t, -5, a.Pos.X, 1e-9)
	require.Equal(t, 12.0, b.Pos.X, "obstacle position is never changed by the mover's resolve")
}

func TestResolveIterationCap(t *testing.T) {
	calls := 0
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(3, 1)
	mover.Collide = func(axis geom.Axis, a, b *Body, _ geom.Rect) Outcome {
		if axis == geom.AxisX {
			calls++
		}
		return DontPropagate(1)
	}
	block := box("block", 10, -5, 10, 30)

	settings := DefaultSettings()
	NewEngine(settings, nil).Resolve(mover, bodies(block))

	require.Equal(t, settings.IterationCap-1, calls)
	require.InDelta(t, 3, mover.Pos.X, 1e-9)
}

func TestResolveIterationCapIsConfigurable(t *testing.T) {
	calls := 0
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(3, 0)
	mover.Collide = func(geom.Axis, *Body, *Body, geom.Rect) Outcome {
		calls++
		return DontPropagate(1)
	}

	settings := DefaultSettings()
	settings.IterationCap = 5
	NewEngine(settings, nil).Resolve(mover, bodies(box("block", 10, 0, 10, 10)))

	require.Equal(t, 4, calls)
}

func TestResolveStalledCounterStopsAtCap(t *testing.T) {
	tests := []struct {
		name   string
		deltas []int
	}{
		{"zero", []int{0}},
		{"cancelling", []int{1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			mover := box("mover", 0, 0, 10, 10)
			mover.Vel = geom.V(3, 0)
			mover.Collide = func(geom.Axis, *Body, *Body, geom.Rect) Outcome {
				d := tt.deltas[calls%len(tt.deltas)]
				calls++
				return DontPropagate(d)
			}

			settings := DefaultSettings()
			NewEngine(settings, nil).Resolve(mover, bodies(box("block", 10, 0, 10, 10)))

			require.Equal(t, settings.IterationCap, calls)
			require.InDelta(t, 3, mover.Pos.X, 1e-9)
		})
	}
}

func TestResolveWedgedBetweenImmovables(t *testing.T) {
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(3, 3)
	left := wall("left", -5, 0, 10, 10)
	right := wall("right", 8, 0, 10, 10)

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(left, right))

	// X: the shallower left contact (2 wide) wins and pushes back by 2.
	// Y: both contacts are 7.3 deep; the later name wins the tie.
	require.False(t, math.IsNaN(mover.Vel.X) || math.IsNaN(mover.Vel.Y))
	require.InDelta(t, 0.9, mover.Vel.X, 1e-9)
	require.InDelta(t, -4.6, mover.Vel.Y, 1e-9)
	require.InDelta(t, 1, mover.Pos.X, 1e-9)
	require.InDelta(t, -4.6, mover.Pos.Y, 1e-9)
	require.Equal(t, "mover", right.Attached)
	require.Empty(t, left.Attached)
	require.Equal(t, []string{"right"}, mover.AttachedFrom)
	require.Equal(t, geom.VecZero, left.Vel)
	require.Equal(t, geom.VecZero, right.Vel)
}

func TestResolveTwoImmovablesTerminate(t *testing.T) {
	a := wall("a", 0, 0, 10, 10)
	a.Vel = geom.V(1, 0)
	b := wall("b", 5, 0, 10, 10)

	NewEngine(DefaultSettings(), nil).Resolve(a, bodies(b))

	require.Equal(t, 1.0, a.Vel.X)
	require.Equal(t, geom.VecZero, b.Vel)
	require.Equal(t, 1.0, a.Pos.X)
}

func TestResolveSlidesAlongSurface(t *testing.T) {
	for _, overlap := range []float64{0, 1.5, 2} {
		mover := box("mover", 0, 0, 10, 10)
		mover.Vel = geom.V(5, 0)
		floor := wall("floor", -100, 10-overlap, 300, 10)

		NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(floor))

		require.Equal(t, 5.0, mover.Pos.X, "overlap %v", overlap)
		require.Equal(t, 5.0, mover.Vel.X, "overlap %v", overlap)
	}
}

func TestResolveCornerUsesIntegratedX(t *testing.T) {
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(5, 5)
	block := wall("block", 12, 12, 10, 10)

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(block))

	require.Equal(t, 5.0, mover.Pos.X)
	require.InDelta(t, 2, mover.Pos.Y, 1e-9)
	require.InDelta(t, 4.5, mover.Vel.X, 1e-9, "Y contact applies friction to X velocity")
	require.Equal(t, "block", mover.Attached)
}

func TestResolveSnapsSmallVelocity(t *testing.T) {
	mover := box("mover", 3, 4, 10, 10)
	mover.Vel = geom.V(0.04, -0.049)

	NewEngine(DefaultSettings(), nil).Resolve(mover, Bodies{})

	require.Equal(t, geom.VecZero, mover.Vel)
	require.Equal(t, geom.V(3, 4), mover.Pos)
}

func TestResolveWithoutBoundsStillMoves(t *testing.T) {
	ghost := NewBody(geom.R(0, 0, 10, 10), geom.R(0, 0, 10, 10), nil)
	ghost.Name = "ghost"
	ghost.Vel = geom.V(4, 6)
	ghost.Collide = func(geom.Axis, *Body, *Body, geom.Rect) Outcome {
		t.Fatal("a body without bounds must never collide")
		return Continue()
	}

	NewEngine(DefaultSettings(), nil).Resolve(ghost, bodies(wall("wall", 0, 0, 50, 50)))
	require.Equal(t, geom.V(4, 6), ghost.Pos)

	// And bodies pass through it as an obstacle.
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(6, 0)
	ghost.Pos = geom.V(12, 0)
	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(ghost))
	require.Equal(t, 6.0, mover.Pos.X)
}

func TestResolveTieBreak(t *testing.T) {
	tests := []struct {
		name     string
		alphaX   float64
		betaX    float64
		expected string
	}{
		{name: "equal extents pick the later body", alphaX: 12, betaX: 12, expected: "beta"},
		{name: "smaller extent wins", alphaX: 13, betaX: 12, expected: "alpha"},
		{name: "smaller extent wins regardless of order", alphaX: 12, betaX: 13.5, expected: "beta"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var hitName string
			mover := box("mover", 0, 0, 10, 10)
			mover.Vel = geom.V(5, 0)
			mover.Collide = func(_ geom.Axis, _, b *Body, _ geom.Rect) Outcome {
				hitName = b.Name
				return DontPropagate(-1)
			}

			NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(
				wall("alpha", tc.alphaX, 0, 10, 10),
				wall("beta", tc.betaX, 0, 10, 10),
			))

			require.Equal(t, tc.expected, hitName)
		})
	}
}

func TestResolveContinueReversesRoles(t *testing.T) {
	var order []string
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(5, 0)
	mover.Collide = func(_ geom.Axis, a, b *Body, _ geom.Rect) Outcome {
		order = append(order, a.Name+">"+b.Name)
		return Continue()
	}
	obstacle := box("obstacle", 12, 0, 10, 10)
	obstacle.Collide = func(_ geom.Axis, a, b *Body, _ geom.Rect) Outcome {
		order = append(order, a.Name+">"+b.Name)
		return DontPropagate(1)
	}

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(obstacle))

	require.Equal(t, []string{"mover>obstacle", "obstacle>mover"}, order)
}

func TestResolveDetachesWhenLeavingSupport(t *testing.T) {
	floor := wall("floor", 0, 100, 50, 10)
	rider := box("rider", 0, 0, 10, 10)
	faller := box("faller", 20, 0, 10, 10)
	rider.AttachTo(floor)
	faller.AttachTo(floor)
	faller.Vel = geom.V(0, 3)

	NewEngine(DefaultSettings(), nil).Resolve(faller, bodies(floor, rider))

	require.False(t, faller.IsAttached())
	require.Equal(t, []string{"rider"}, floor.AttachedFrom)
	require.True(t, rider.RestsOn("floor"))
}

func TestResolveKeepsAttachmentWithoutVerticalMotion(t *testing.T) {
	floor := wall("floor", 0, 10, 50, 10)
	mover := box("mover", 0, 0, 10, 10)
	mover.AttachTo(floor)
	mover.Vel = geom.V(2, 0)

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(floor))

	require.True(t, mover.RestsOn("floor"))
	require.Equal(t, 2.0, mover.Pos.X)
}

func TestResolveIgnoresSelfInCollection(t *testing.T) {
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(3, 0)

	NewEngine(DefaultSettings(), nil).Resolve(mover, bodies(mover))

	require.Equal(t, 3.0, mover.Pos.X)
}

func TestSetSettings(t *testing.T) {
	e := NewEngine(DefaultSettings(), nil)
	s := e.Settings()
	s.EdgeEpsilon = 0
	e.SetSettings(s)
	require.Equal(t, 0.0, e.Settings().EdgeEpsilon)

	// Without the epsilon a shallow resting contact blocks sliding.
	blocked := false
	mover := box("mover", 0, 0, 10, 10)
	mover.Vel = geom.V(5, 0)
	mover.Collide = func(axis geom.Axis, _, _ *Body, _ geom.Rect) Outcome {
		if axis == geom.AxisX {
			blocked = true
		}
		return DontPropagate(-1)
	}

	e.Resolve(mover, bodies(wall("floor", -100, 9, 300, 10)))

	require.True(t, blocked)
}
