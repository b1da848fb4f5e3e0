package sim

import (
	"math"
	"sort"
)

// BodyState is the physical state of one body.
type BodyState struct {
	Name     string
	X, Y     float64
	VX, VY   float64
	Attached string
	Destroy  bool
}

// Snapshot captures world state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Bodies []BodyState // sorted by name
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   w.tick,
		Bodies: make([]BodyState, 0, len(w.bodies)),
	}
	for _, b := range w.bodies {
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:     b.Name,
			X:        b.Pos.X,
			Y:        b.Pos.Y,
			VX:       b.Vel.X,
			VY:       b.Vel.Y,
			Attached: b.Attached,
			Destroy:  b.Destroy,
		})
	}
	sort.Slice(snap.Bodies, func(i, j int) bool {
		return snap.Bodies[i].Name < snap.Bodies[j].Name
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, b := range snap.Bodies {
		h = hashString(h, b.Name)
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VX)
		h = h*31 + math.Float64bits(b.VY)
		h = hashString(h, b.Attached)
		if b.Destroy {
			h = h*31 + 1
		}
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h*31 + uint64(len(s)) //#nosec G115 -- hash computation
}
