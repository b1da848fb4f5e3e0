// Package sim drives a collection of physics bodies one fixed step at a time.
package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/physics"
)

var (
	// ErrUnnamed is returned when inserting a body without a name.
	ErrUnnamed = errors.New("sim: body has no name")
	// ErrDuplicateName is returned when a body name is already taken.
	ErrDuplicateName = errors.New("sim: duplicate body name")
)

// Renderer receives each body whose draw hook did not veto default drawing.
type Renderer interface {
	DrawBody(b *physics.Body)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(b *physics.Body)

// DrawBody calls f(b).
func (f RendererFunc) DrawBody(b *physics.Body) {
	f(b)
}

// StepStats summarizes one step.
type StepStats struct {
	Tick      uint64
	Processed int // bodies ticked and resolved
	Skipped   int // bodies already flagged for destruction
	Drawn     int
	Pruned    []string
	Adopted   []string
	Rejected  []string // bodies hooks inserted under a name in use
}

// World owns the body collection and the order bodies are processed in.
type World struct {
	bodies Bodies
	order  []string
	engine *physics.Engine
	forces Forces
	logger *log.Logger
	tick   uint64
}

// Bodies aliases the physics collection so callers rarely need both imports.
type Bodies = physics.Bodies

// NewWorld creates an empty world. A nil logger disables logging.
func NewWorld(settings physics.Settings, forces Forces, logger *log.Logger) *World {
	return &World{
		bodies: make(Bodies),
		engine: physics.NewEngine(settings, logger),
		forces: forces,
		logger: logger,
	}
}

// Insert adds a body. Bodies are processed in insertion order.
func (w *World) Insert(b *physics.Body) error {
	if b.Name == "" {
		return ErrUnnamed
	}
	if _, exists := w.bodies[b.Name]; exists {
		if w.logger != nil {
			w.logger.Warn("duplicate body rejected", "name", b.Name)
		}
		return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
	}
	w.bodies[b.Name] = b
	w.order = append(w.order, b.Name)
	return nil
}

// Get returns the body called name.
func (w *World) Get(name string) (*physics.Body, bool) {
	b, ok := w.bodies[name]
	return b, ok
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Names returns body names in processing order.
func (w *World) Names() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// Bodies returns the live collection. Callers outside a step may mutate
// bodies but should add new ones through Insert.
func (w *World) Bodies() Bodies {
	return w.bodies
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Settings returns the engine settings.
func (w *World) Settings() physics.Settings {
	return w.engine.Settings()
}

// SetSettings replaces the engine settings from the next step on.
func (w *World) SetSettings(s physics.Settings) {
	w.engine.SetSettings(s)
}

// Forces returns the global forces.
func (w *World) Forces() Forces {
	return w.forces
}

// SetForces replaces the global forces from the next step on.
func (w *World) SetForces(f Forces) {
	w.forces = f
}

// Step advances every body once. Each body is checked out of the collection
// while it is ticked and resolved, so it sees the current state of bodies
// processed earlier in the pass and the previous state of later ones.
// A nil renderer skips drawing; draw hooks still run.
func (w *World) Step(r Renderer) StepStats {
	stats := StepStats{Tick: w.tick}

	for _, name := range w.order {
		b, ok := w.bodies[name]
		if !ok {
			continue
		}
		if b.Destroy {
			stats.Skipped++
			continue
		}

		delete(w.bodies, name)

		b.RefreshPivot()
		if !b.IsImmovable() {
			w.forces.Apply(b)
		}
		if b.Tick != nil {
			b.Tick(b, w.bodies)
		}
		w.engine.Resolve(b, w.bodies)

		if b.Draw == nil || b.Draw(b) {
			if r != nil {
				r.DrawBody(b)
				stats.Drawn++
			}
		}

		if intruder, taken := w.bodies[name]; taken && intruder != b {
			// A hook reused the checked-out name; the original keeps it.
			if intruder.Attached != b.Attached {
				intruder.Detach(w.bodies)
			}
			stats.Rejected = append(stats.Rejected, name)
			if w.logger != nil {
				w.logger.Warn("duplicate body rejected", "name", name, "tick", stats.Tick)
			}
		}
		w.bodies[name] = b
		stats.Processed++
	}

	stats.Pruned = w.prune()
	stats.Adopted = w.adopt()
	w.tick++

	if w.logger != nil && (len(stats.Pruned) > 0 || len(stats.Adopted) > 0) {
		w.logger.Debug("step", "tick", stats.Tick, "pruned", stats.Pruned, "adopted", stats.Adopted)
	}
	return stats
}

// prune removes destroyed bodies and bodies that hooks deleted from the map,
// unlinking them from the attachment graph in both directions.
func (w *World) prune() []string {
	var pruned []string
	kept := w.order[:0]
	for _, name := range w.order {
		b, ok := w.bodies[name]
		if !ok {
			pruned = append(pruned, name)
			continue
		}
		if b.Destroy {
			b.Detach(w.bodies)
			for _, rider := range physics.Riders(b, w.bodies) {
				rider.Attached = ""
			}
			delete(w.bodies, name)
			pruned = append(pruned, name)
			continue
		}
		kept = append(kept, name)
	}
	w.order = kept
	return pruned
}

// adopt appends bodies that hooks inserted into the map during the step.
func (w *World) adopt() []string {
	if len(w.bodies) == len(w.order) {
		return nil
	}
	known := make(map[string]struct{}, len(w.order))
	for _, name := range w.order {
		known[name] = struct{}{}
	}
	var adopted []string
	for name := range w.bodies {
		if _, ok := known[name]; !ok {
			adopted = append(adopted, name)
		}
	}
	sort.Strings(adopted)
	w.order = append(w.order, adopted...)
	return adopted
}
