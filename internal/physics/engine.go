package physics

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/geom"
)

// Settings tune the collision sweep.
type Settings struct {
	// IterationCap bounds the per-axis resolution loop.
	IterationCap int
	// SnapThreshold zeroes velocity components smaller than this in magnitude.
	SnapThreshold float64
	// EdgeEpsilon discards intersections whose extent across the resolved
	// axis is at most this large, so resting contacts don't block sliding.
	EdgeEpsilon float64
}

// DefaultSettings returns the stock engine settings.
func DefaultSettings() Settings {
	return Settings{
		IterationCap:  20,
		SnapThreshold: 0.05,
		EdgeEpsilon:   2.0,
	}
}

// Engine resolves one body's motion against the others.
type Engine struct {
	settings Settings
	logger   *log.Logger
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(settings Settings, logger *log.Logger) *Engine {
	return &Engine{settings: settings, logger: logger}
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// SetSettings replaces the settings; takes effect on the next Resolve.
func (e *Engine) SetSettings(s Settings) {
	e.settings = s
}

// hit is the selected contact for one iteration.
type hit struct {
	obstacle     *Body
	intersection geom.Rect
}

// Resolve moves self by its velocity, one axis at a time (X then Y),
// resolving contacts against others. self must not be a member of others;
// if it is, it is ignored as an obstacle.
func (e *Engine) Resolve(self *Body, others Bodies) {
	e.snap(self)

	names := others.Names()
	for _, axis := range geom.Axes {
		e.sweep(axis, self, others, names)
		self.Pos = self.Pos.Add(self.Vel.MulEach(axis.Unit()))
	}
}

func (e *Engine) snap(b *Body) {
	if math.Abs(b.Vel.X) < e.settings.SnapThreshold {
		b.Vel.X = 0
	}
	if math.Abs(b.Vel.Y) < e.settings.SnapThreshold {
		b.Vel.Y = 0
	}
}

func (e *Engine) sweep(axis geom.Axis, self *Body, others Bodies, names []string) {
	if !self.HasBounds() {
		return
	}

	// Hooks can hold the counter still; the index bounds the loop regardless.
	counter := 1
	i := 0
	for ; i < e.settings.IterationCap && counter > 0 && counter < e.settings.IterationCap; i++ {
		h, ok := e.scan(axis, self, others, names)
		if !ok {
			if axis == geom.AxisY && i == 0 && self.Vel.Y != 0 {
				self.Detach(others)
			}
			return
		}

		collide := self.Collide
		if collide == nil {
			collide = DefaultCollide
		}
		outcome := collide(axis, self, h.obstacle, h.intersection)
		if outcome.IsContinue() {
			counter = 0
			reverse := h.obstacle.Collide
			if reverse == nil {
				reverse = DefaultCollide
			}
			reverse(axis, h.obstacle, self, h.intersection)
		} else {
			counter += outcome.Delta()
		}

		// Friction acts on the cross-axis velocity.
		if axis == geom.AxisX {
			self.Vel.Y *= self.Friction
		} else {
			self.Vel.X *= self.Friction
		}
	}

	if (i >= e.settings.IterationCap || counter >= e.settings.IterationCap) && e.logger != nil {
		e.logger.Debug("iteration cap reached", "body", self.Name, "axis", axis, "vel", self.Vel)
	}
}

// scan finds the contact at the pending position along axis. Among the
// surviving intersections the one with the smallest extent on axis wins; a
// later candidate replaces an equal one.
func (e *Engine) scan(axis geom.Axis, self *Body, others Bodies, names []string) (hit, bool) {
	delta := self.Vel.MulEach(axis.Unit())
	if delta.IsZero() {
		return hit{}, false
	}

	var best hit
	found := false
	for _, bound := range self.Bounds {
		moved := bound.Offset(delta).Offset(self.Pos)
		for _, name := range names {
			other := others[name]
			if other == nil || other == self || !other.HasBounds() {
				continue
			}
			for _, ob := range other.Bounds {
				inter, ok := ob.Offset(other.Pos).Intersect(moved)
				if !ok {
					continue
				}
				if math.Abs(inter.Perpendicular(axis)) <= e.settings.EdgeEpsilon {
					continue
				}
				if found && best.intersection.Extent(axis) < inter.Extent(axis) {
					continue
				}
				best = hit{obstacle: other, intersection: inter}
				found = true
			}
		}
	}
	return best, found
}
