package geom

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		ok       bool
	}{
		{
			name:     "overlapping rects",
			a:        R(0, 0, 10, 10),
			b:        R(5, 5, 10, 10),
			expected: R(5, 5, 5, 5),
			ok:       true,
		},
		{
			name: "disjoint horizontal",
			a:    R(0, 0, 10, 10),
			b:    R(15, 0, 10, 10),
			ok:   false,
		},
		{
			name: "disjoint vertical",
			a:    R(0, 0, 10, 10),
			b:    R(0, 15, 10, 10),
			ok:   false,
		},
		{
			name:     "touching edge has zero width",
			a:        R(0, 0, 10, 10),
			b:        R(10, 0, 10, 10),
			expected: R(10, 0, 0, 10),
			ok:       true,
		},
		{
			name:     "contained rect",
			a:        R(0, 0, 20, 20),
			b:        R(5, 5, 5, 5),
			expected: R(5, 5, 5, 5),
			ok:       true,
		},
		{
			name:     "fractional overlap",
			a:        R(0, 0, 10, 10),
			b:        R(9.5, 8, 10, 10),
			expected: R(9.5, 8, 0.5, 2),
			ok:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.a.Intersect(tc.b)
			if ok != tc.ok {
				t.Fatalf("Intersect() ok = %v, expected %v", ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Errorf("Intersect() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			gotReverse, okReverse := tc.b.Intersect(tc.a)
			if okReverse != ok || gotReverse != got {
				t.Errorf("Intersect() (reversed) = %v/%v, expected %v/%v", gotReverse, okReverse, got, ok)
			}
		})
	}
}

func TestRectOffsetAndEdges(t *testing.T) {
	r := R(5, 10, 20, 15).Offset(V(1, -2))

	if r.X != 6 || r.Y != 8 {
		t.Errorf("Offset() origin = (%v, %v), expected (6, 8)", r.X, r.Y)
	}
	if r.Right() != 26 {
		t.Errorf("Right() = %v, expected 26", r.Right())
	}
	if r.Bottom() != 23 {
		t.Errorf("Bottom() = %v, expected 23", r.Bottom())
	}
	if c := r.Center(); c != V(16, 15.5) {
		t.Errorf("Center() = %v, expected (16, 15.5)", c)
	}
	if r.Extent(AxisX) != 20 || r.Extent(AxisY) != 15 {
		t.Errorf("Extent() = (%v, %v), expected (20, 15)", r.Extent(AxisX), r.Extent(AxisY))
	}
}

func TestAxis(t *testing.T) {
	v := V(3, -4)

	if AxisX.Component(v) != 3 || AxisY.Component(v) != -4 {
		t.Error("Component() returned the wrong component")
	}
	if got := AxisX.With(v, 7); got != V(7, -4) {
		t.Errorf("AxisX.With() = %v", got)
	}
	if got := AxisY.With(v, 7); got != V(3, 7) {
		t.Errorf("AxisY.With() = %v", got)
	}
	if v.MulEach(AxisY.Unit()) != V(0, -4) {
		t.Error("MulEach(AxisY.Unit()) should isolate the y component")
	}
	if v.Dot(AxisX.Unit()) != 3 {
		t.Error("Dot(AxisX.Unit()) should return the x component")
	}
	if AxisX.Other() != AxisY || AxisY.Other() != AxisX {
		t.Error("Other() should swap axes")
	}
}

func TestVecHelpers(t *testing.T) {
	a := V(-2, 5)
	b := V(1, 3)

	if a.Abs() != V(2, 5) {
		t.Errorf("Abs() = %v", a.Abs())
	}
	if a.Min(b) != V(-2, 3) {
		t.Errorf("Min() = %v", a.Min(b))
	}
	if got := Select(Mask{X: true}, a, b); got != V(-2, 3) {
		t.Errorf("Select() = %v", got)
	}
	if got := Select(b.GreaterThan(a), b, a); got != V(1, 5) {
		t.Errorf("Select(GreaterThan) = %v", got)
	}
	if !VecZero.IsZero() || a.IsZero() {
		t.Error("IsZero() misreported")
	}
}
