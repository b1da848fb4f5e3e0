package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

func TestAttachToIsIdempotent(t *testing.T) {
	floor := wall("floor", 0, 10, 50, 10)
	crate := box("crate", 0, 0, 10, 10)

	crate.AttachTo(floor)
	crate.AttachTo(floor)

	require.Equal(t, "floor", crate.Attached)
	require.Equal(t, []string{"crate"}, floor.AttachedFrom)
}

func TestAttachByName(t *testing.T) {
	floor := wall("floor", 0, 10, 50, 10)
	crate := box("crate", 0, 0, 10, 10)
	others := bodies(floor)

	crate.Attach("floor", others)
	require.Equal(t, []string{"crate"}, floor.AttachedFrom)

	// A missing target still records the forward link.
	lone := box("lone", 0, 0, 10, 10)
	lone.Attach("nowhere", others)
	require.True(t, lone.RestsOn("nowhere"))
}

func TestDetachRemovesOnlyItself(t *testing.T) {
	floor := wall("floor", 0, 10, 50, 10)
	a := box("a", 0, 0, 10, 10)
	b := box("b", 10, 0, 10, 10)
	c := box("c", 20, 0, 10, 10)
	for _, r := range []*Body{a, b, c} {
		r.AttachTo(floor)
	}
	others := bodies(floor, a, b, c)

	b.Detach(others)

	require.False(t, b.IsAttached())
	require.Equal(t, []string{"a", "c"}, floor.AttachedFrom)

	// Detaching again is a no-op.
	b.Detach(others)
	require.Equal(t, []string{"a", "c"}, floor.AttachedFrom)
}

func TestDetachFrom(t *testing.T) {
	platform := wall("platform", 0, 10, 50, 10)
	other := wall("other", 60, 10, 50, 10)
	a := box("a", 0, 0, 10, 10)
	a.AttachTo(platform)
	platform.AttachedFrom = append(platform.AttachedFrom, "b")

	// Not attached to other, so the forward link survives.
	a.DetachFrom(other)
	require.True(t, a.RestsOn("platform"))

	a.DetachFrom(platform)
	require.False(t, a.IsAttached())
	require.Equal(t, []string{"b"}, platform.AttachedFrom)
}

func TestRiders(t *testing.T) {
	platform := wall("platform", 0, 10, 50, 10)
	a := box("a", 0, 0, 10, 10)
	b := box("b", 10, 0, 10, 10)
	a.AttachTo(platform)
	b.AttachTo(platform)
	// b moved on without the platform hearing about it.
	b.Attached = "elsewhere"

	riders := Riders(platform, bodies(platform, a, b))

	require.Len(t, riders, 1)
	require.Equal(t, "a", riders[0].Name)
}

func TestNewBodyDefaults(t *testing.T) {
	b := NewBody(geom.R(0, 0, 315, 480), geom.R(1700, -900, 90, 140), []geom.Rect{geom.R(25, 20, 45, 88)})

	require.Equal(t, DefaultName, b.Name)
	require.Equal(t, geom.V(1700, -900), b.Pos)
	require.Equal(t, geom.V(45, 70), b.CoG)
	require.Equal(t, geom.V(90, 140), b.Params.Size)
	require.Equal(t, DefaultMass, b.Mass)
	require.Equal(t, DefaultFriction, b.Friction)
	require.Equal(t, DefaultElasticity, b.Elasticity)
	require.False(t, b.IsImmovable())
	require.Equal(t, []geom.Rect{geom.R(1725, -880, 45, 88)}, b.WorldBounds())

	b.RefreshPivot()
	require.Equal(t, geom.V(1745, -830), b.Params.Pivot)
}

func TestScratch(t *testing.T) {
	b := &Body{}

	require.Equal(t, 0.001, b.ScratchOr("zoom", 0.001))
	b.SetScratch("zoom", 0.002)
	require.Equal(t, 0.002, b.ScratchOr("zoom", 0.001))
	require.Equal(t, 3.0, b.AddScratch("health", 3))
	require.Equal(t, 2.0, b.AddScratch("health", -1))
}
