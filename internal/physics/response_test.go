package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

func TestOutcome(t *testing.T) {
	require.True(t, Continue().IsContinue())
	require.False(t, DontPropagate(3).IsContinue())
	require.Equal(t, 3, DontPropagate(3).Delta())
	require.Equal(t, -10, FlatOutcome.Delta())
	require.Equal(t, "Continue", Continue().String())
	require.Equal(t, "DontPropagate(-10)", FlatOutcome.String())
}

func TestElasticCollide(t *testing.T) {
	t.Run("unequal masses conserve momentum", func(t *testing.T) {
		a := box("a", 0, 0, 1, 1)
		a.Mass, a.Elasticity, a.Vel = 1, 1, geom.V(4, 7)
		b := box("b", 0, 0, 1, 1)
		b.Mass, b.Elasticity = 3, 1

		out := ElasticCollide(geom.AxisX, a, b, geom.Rect{})

		require.Equal(t, DontPropagate(1), out)
		require.InDelta(t, -2, a.Vel.X, 1e-9)
		require.InDelta(t, 2, b.Vel.X, 1e-9)
		require.InDelta(t, 4, a.Mass*a.Vel.X+b.Mass*b.Vel.X, 1e-9)
		require.Equal(t, 7.0, a.Vel.Y, "off-axis component is untouched")
	})

	t.Run("scaled by both elasticities", func(t *testing.T) {
		a := box("a", 0, 0, 1, 1)
		a.Elasticity, a.Vel = 0.5, geom.V(0, 6)
		b := box("b", 0, 0, 1, 1)
		b.Elasticity, b.Vel = 0.5, geom.V(0, -6)

		ElasticCollide(geom.AxisY, a, b, geom.Rect{})

		require.InDelta(t, -1.5, a.Vel.Y, 1e-9)
		require.InDelta(t, 1.5, b.Vel.Y, 1e-9)
	})

	t.Run("immovable obstacle reflects the mover", func(t *testing.T) {
		a := box("a", 0, 0, 1, 1)
		a.Elasticity, a.Vel = 0.5, geom.V(0, 10)
		b := wall("b", 0, 0, 1, 1)
		b.Elasticity = 1

		ElasticCollide(geom.AxisY, a, b, geom.Rect{})

		require.InDelta(t, -5, a.Vel.Y, 1e-9)
		require.Equal(t, geom.VecZero, b.Vel)
	})

	t.Run("immovable mover keeps its velocity", func(t *testing.T) {
		a := wall("a", 0, 0, 1, 1)
		a.Elasticity, a.Vel = 1, geom.V(3, 0)
		b := box("b", 0, 0, 1, 1)
		b.Elasticity, b.Vel = 0.5, geom.V(-4, 0)

		ElasticCollide(geom.AxisX, a, b, geom.Rect{})

		require.Equal(t, 3.0, a.Vel.X)
		require.InDelta(t, 2, b.Vel.X, 1e-9)
	})

	t.Run("two immovables are unchanged", func(t *testing.T) {
		a := wall("a", 0, 0, 1, 1)
		a.Vel = geom.V(3, 0)
		b := wall("b", 0, 0, 1, 1)
		b.Vel = geom.V(-1, 0)

		ElasticCollide(geom.AxisX, a, b, geom.Rect{})

		require.Equal(t, 3.0, a.Vel.X)
		require.Equal(t, -1.0, b.Vel.X)
	})

	t.Run("NaN becomes zero", func(t *testing.T) {
		a := box("a", 0, 0, 1, 1)
		a.Mass, a.Elasticity, a.Vel = 0, 1, geom.V(3, 0)
		b := box("b", 0, 0, 1, 1)
		b.Mass, b.Elasticity, b.Vel = 0, 1, geom.V(-3, 0)

		ElasticCollide(geom.AxisX, a, b, geom.Rect{})

		require.Equal(t, 0.0, a.Vel.X)
		require.Equal(t, 0.0, b.Vel.X)
	})
}

func TestFlatCollide(t *testing.T) {
	tests := []struct {
		name     string
		axis     geom.Axis
		moverPos geom.Vec
		vel      geom.Vec
		inter    geom.Rect
		expected geom.Vec
	}{
		{name: "x moving right", axis: geom.AxisX, vel: geom.V(5, 0), inter: geom.R(0, 0, 3, 10), expected: geom.V(2, 0)},
		{name: "x moving left", axis: geom.AxisX, vel: geom.V(-5, 0), inter: geom.R(0, 0, 3, 10), expected: geom.V(-2, 0)},
		{name: "x at rest pushes right", axis: geom.AxisX, vel: geom.V(0, 0), inter: geom.R(0, 0, 3, 10), expected: geom.V(3, 0)},
		{name: "y mover above", axis: geom.AxisY, moverPos: geom.V(0, -10), vel: geom.V(0, 10), inter: geom.R(0, 0, 10, 4), expected: geom.V(0, 6)},
		{name: "y mover below", axis: geom.AxisY, moverPos: geom.V(0, 10), vel: geom.V(0, -10), inter: geom.R(0, 0, 10, 4), expected: geom.V(0, -6)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := box("a", tc.moverPos.X, tc.moverPos.Y, 10, 10)
			a.Vel = tc.vel
			b := wall("b", 0, 0, 10, 10)

			out := FlatCollide(tc.axis, a, b, tc.inter)

			require.Equal(t, FlatOutcome, out)
			require.InDelta(t, tc.expected.X, a.Vel.X, 1e-9)
			require.InDelta(t, tc.expected.Y, a.Vel.Y, 1e-9)
			require.Equal(t, tc.moverPos, a.Pos, "position is never changed")
		})
	}

	t.Run("immovable mover is untouched", func(t *testing.T) {
		a := wall("a", 0, 0, 10, 10)
		a.Vel = geom.V(1, 1)
		out := FlatCollide(geom.AxisX, a, wall("b", 0, 0, 1, 1), geom.R(0, 0, 5, 5))
		require.Equal(t, FlatOutcome, out)
		require.Equal(t, geom.V(1, 1), a.Vel)
	})
}

func TestDefaultCollide(t *testing.T) {
	t.Run("landing attaches the upper body", func(t *testing.T) {
		a := box("a", 0, 0, 10, 10)
		a.Vel = geom.V(0, 10)
		floor := wall("floor", 0, 16, 100, 10)

		out := DefaultCollide(geom.AxisY, a, floor, geom.R(0, 16, 10, 4))

		require.Equal(t, FlatOutcome, out)
		require.InDelta(t, 6, a.Vel.Y, 1e-9)
		require.True(t, a.RestsOn("floor"))
		require.Equal(t, []string{"a"}, floor.AttachedFrom)
	})

	t.Run("mover below gets the obstacle as rider", func(t *testing.T) {
		a := box("a", 0, 20, 10, 10)
		a.Vel = geom.V(0, -4)
		b := box("b", 0, 12, 10, 10)

		out := DefaultCollide(geom.AxisY, a, b, geom.R(0, 16, 10, 2))

		require.Equal(t, DontPropagate(1), out, "finite obstacle resolves elastically")
		require.False(t, a.IsAttached())
		require.True(t, b.RestsOn("a"))
		require.Equal(t, []string{"b"}, a.AttachedFrom)
	})

	t.Run("horizontal contact never attaches", func(t *testing.T) {
		a := box("a", 0, 0, 10, 10)
		a.Vel = geom.V(5, 0)
		b := box("b", 12, 5, 10, 10)

		DefaultCollide(geom.AxisX, a, b, geom.R(12, 5, 3, 5))

		require.False(t, a.IsAttached())
		require.False(t, b.IsAttached())
	})
}
