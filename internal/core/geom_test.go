package core

import "testing"

func TestRectClip(t *testing.T) {
	screen := NewRect(0, 0, 80, 24)

	tests := []struct {
		name     string
		r        Rect
		expected Rect
	}{
		{
			name:     "fully inside",
			r:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 10, 10),
		},
		{
			name:     "hangs off the left",
			r:        NewRect(-4, 2, 10, 3),
			expected: NewRect(0, 2, 6, 3),
		},
		{
			name:     "hangs off the bottom right",
			r:        NewRect(75, 20, 10, 10),
			expected: NewRect(75, 20, 5, 4),
		},
		{
			name:     "fully outside",
			r:        NewRect(100, 5, 10, 10),
			expected: NewRect(100, 5, 0, 10),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Clip(screen)
			if got.Empty() != tc.expected.Empty() {
				t.Fatalf("Clip() empty = %v, expected %v", got.Empty(), tc.expected.Empty())
			}
			if !got.Empty() && got != tc.expected {
				t.Errorf("Clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}

	if got := Clamp(450.5, -100.0, 400.0); got != 400 {
		t.Errorf("Clamp(450.5, -100, 400) = %f, expected 400", got)
	}
}
