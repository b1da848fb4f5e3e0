// Package geom provides the small amount of 2D math the physics engine needs:
// a float vector, an axis selector and an axis-aligned rectangle.
// Coordinates follow screen conventions: Y grows downward.
package geom

import (
	"fmt"
	"math"
)

// Vec is a 2D vector in world units (pixels).
type Vec struct {
	X, Y float64
}

// Common vectors.
var (
	VecZero = Vec{}
	VecOne  = Vec{X: 1, Y: 1}
)

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + other.
func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

// Sub returns v - other.
func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

// Mul scales both components.
func (v Vec) Mul(scalar float64) Vec {
	v.X *= scalar
	v.Y *= scalar
	return v
}

// MulEach multiplies component-wise.
func (v Vec) MulEach(other Vec) Vec {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

// Dot returns the dot product.
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Abs returns the component-wise absolute value.
func (v Vec) Abs() Vec {
	return Vec{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Min returns the component-wise minimum.
func (v Vec) Min(other Vec) Vec {
	return Vec{X: math.Min(v.X, other.X), Y: math.Min(v.Y, other.Y)}
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}

// Mask selects components in Select.
type Mask struct {
	X, Y bool
}

// Select picks each component from a where the mask is set, otherwise from b.
func Select(mask Mask, a, b Vec) Vec {
	if mask.X {
		b.X = a.X
	}
	if mask.Y {
		b.Y = a.Y
	}
	return b
}

// GreaterThan returns a mask of components where v exceeds other.
func (v Vec) GreaterThan(other Vec) Mask {
	return Mask{X: v.X > other.X, Y: v.Y > other.Y}
}

// Axis selects one of the two coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axes lists the axes in resolution order.
var Axes = [2]Axis{AxisX, AxisY}

// Unit returns the unit vector along the axis.
func (a Axis) Unit() Vec {
	if a == AxisX {
		return Vec{X: 1}
	}
	return Vec{Y: 1}
}

// Component returns the component of v along the axis.
func (a Axis) Component(v Vec) float64 {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

// With returns v with its component along the axis replaced by value.
func (a Axis) With(v Vec, value float64) Vec {
	if a == AxisX {
		v.X = value
	} else {
		v.Y = value
	}
	return v
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Vec {
	return Vec{X: r.X, Y: r.Y}
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec {
	return Vec{X: r.W, Y: r.H}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Offset translates the rectangle by v.
func (r Rect) Offset(v Vec) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Intersect returns the overlapping region of r and other.
// Rectangles that only share an edge intersect with a zero extent;
// disjoint rectangles report false.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	left := math.Max(r.X, other.X)
	top := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())

	if right < left || bottom < top {
		return Rect{}, false
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}, true
}

// Extent returns the size along the axis: width for X, height for Y.
func (r Rect) Extent(axis Axis) float64 {
	if axis == AxisX {
		return r.W
	}
	return r.H
}

// Perpendicular returns the size across the axis: height for X, width for Y.
func (r Rect) Perpendicular(axis Axis) float64 {
	return r.Extent(axis.Other())
}

func (r Rect) String() string {
	return fmt.Sprintf("rect(x=%v, y=%v, w=%v, h=%v)", r.X, r.Y, r.W, r.H)
}
