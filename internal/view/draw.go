package view

import (
	"math"
	"sort"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/geom"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Sprite is how a body looks on the cell grid. Bodies with a lower Layer are
// drawn first. Top, when set, replaces the glyph on the top row while that
// row is on screen.
type Sprite struct {
	Glyph rune
	Top   rune
	Color core.Color
	Layer int
}

// Styler picks the sprite for a body.
type Styler func(b *physics.Body) Sprite

// Collector is a sim.Renderer that remembers the bodies drawn in one step.
type Collector struct {
	bodies []*physics.Body
}

// DrawBody records b.
func (c *Collector) DrawBody(b *physics.Body) {
	c.bodies = append(c.bodies, b)
}

// Reset forgets the bodies collected so far.
func (c *Collector) Reset() {
	c.bodies = c.bodies[:0]
}

// Bodies returns the collected bodies in draw order.
func (c *Collector) Bodies() []*physics.Body {
	return c.bodies
}

// DrawBodies paints each body's collision rectangles, or its drawn rectangle
// when it has none, filled with its sprite glyph.
func DrawBodies(dst *core.Screen, cam *Camera, bodies []*physics.Body, style Styler) {
	type item struct {
		body   *physics.Body
		sprite Sprite
	}
	items := make([]item, 0, len(bodies))
	for _, b := range bodies {
		items = append(items, item{body: b, sprite: style(b)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].sprite.Layer < items[j].sprite.Layer
	})

	w, h := dst.Width(), dst.Height()
	for _, it := range items {
		rects := it.body.WorldBounds()
		if len(rects) == 0 {
			rects = []geom.Rect{it.body.Rect()}
		}
		for _, r := range rects {
			cells := cam.CellRect(r, w, h)
			if cells.Empty() {
				continue
			}
			dst.DrawRectColored(cells, it.sprite.Glyph, it.sprite.Color)
			if it.sprite.Top != 0 && cells.Y == int(math.Floor(cam.ToCell(r.Pos(), w, h).Y)) {
				for x := cells.X; x < cells.Right(); x++ {
					dst.SetColored(x, cells.Y, it.sprite.Top, it.sprite.Color)
				}
			}
		}
	}
}
