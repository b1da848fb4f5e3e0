// Package view projects world-space bodies onto the terminal cell grid.
package view

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/geom"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// trackFloor is the offset below which a decaying track component snaps to zero.
const trackFloor = 0.1

// Camera maps world coordinates to screen cells. Target is the world point
// shown at the center of the screen; 2/Zoom world units span the screen width.
type Camera struct {
	Target geom.Vec
	Track  geom.Vec
	Zoom   float64

	cfg config.CameraConfig
}

// NewCamera creates a camera at the origin with the configured default zoom.
func NewCamera(cfg config.CameraConfig) *Camera {
	return &Camera{Zoom: cfg.DefaultZoom, cfg: cfg}
}

// SetConfig replaces the camera tunables, keeping the current position.
func (c *Camera) SetConfig(cfg config.CameraConfig) {
	c.cfg = cfg
}

// Recenter drops the tracking offset and restores the default zoom.
func (c *Camera) Recenter() {
	c.Track = geom.Vec{}
	c.Zoom = c.cfg.DefaultZoom
}

// Follow moves the camera after b. The tracking offset accumulates b's
// velocity up to the configured bounds and decays every call.
func (c *Camera) Follow(b *physics.Body) {
	bounds := geom.V(c.cfg.TrackBoundsX, c.cfg.TrackBoundsY)
	next := c.Track.Add(b.Vel)
	clamped := geom.V(math.Copysign(bounds.X, c.Track.X), math.Copysign(bounds.Y, c.Track.Y))
	c.Track = geom.Select(next.Abs().GreaterThan(bounds), clamped, next).Mul(c.cfg.Decay)
	if math.Abs(c.Track.X) <= trackFloor {
		c.Track.X = 0
	}
	if math.Abs(c.Track.Y) <= trackFloor {
		c.Track.Y = 0
	}

	center := b.Pos.Add(b.CoG)
	c.Target = geom.V(center.X-c.Track.X+50, center.Y+c.Track.Y)
}

// unitsPerCell returns the world size of one cell on a screen w cells wide.
func (c *Camera) unitsPerCell(w int) geom.Vec {
	x := 2 / (c.Zoom * float64(max(w, 1)))
	aspect := c.cfg.CellAspect
	if aspect <= 0 {
		aspect = 1
	}
	return geom.V(x, x*aspect)
}

// ToCell converts a world point to fractional cell coordinates.
func (c *Camera) ToCell(p geom.Vec, w, h int) geom.Vec {
	u := c.unitsPerCell(w)
	return geom.V(
		(p.X-c.Target.X)/u.X+float64(w)/2,
		(p.Y-c.Target.Y)/u.Y+float64(h)/2,
	)
}

// ToWorld converts a cell position back to the world point at its corner.
func (c *Camera) ToWorld(x, y, w, h int) geom.Vec {
	u := c.unitsPerCell(w)
	return geom.V(
		(float64(x)-float64(w)/2)*u.X+c.Target.X,
		(float64(y)-float64(h)/2)*u.Y+c.Target.Y,
	)
}

// CellRect returns the cells covered by r, clipped to a w×h screen. Anything
// visible covers at least one cell.
func (c *Camera) CellRect(r geom.Rect, w, h int) core.Rect {
	screen := core.NewRect(0, 0, w, h)
	tl := c.ToCell(r.Pos(), w, h)
	br := c.ToCell(geom.V(r.Right(), r.Bottom()), w, h)

	// Keep far-off rects from overflowing int.
	limit := float64(4 * max(w, h))
	x0 := int(math.Floor(core.Clamp(tl.X, -limit, limit)))
	y0 := int(math.Floor(core.Clamp(tl.Y, -limit, limit)))
	x1 := int(math.Ceil(core.Clamp(br.X, -limit, limit)))
	y1 := int(math.Ceil(core.Clamp(br.Y, -limit, limit)))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0).Clip(screen)
}

// Fit centers r on a w×h screen and zooms out until all of it is visible.
func (c *Camera) Fit(r geom.Rect, w, h int) {
	aspect := c.cfg.CellAspect
	if aspect <= 0 {
		aspect = 1
	}
	upc := max(r.W/float64(max(w, 1)), r.H/(float64(max(h, 1))*aspect))
	if upc > 0 {
		c.Zoom = 2 / (upc * float64(max(w, 1)))
	}
	c.Target = r.Center()
}
