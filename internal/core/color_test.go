package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightWhite, "15"},
		{ColorOrange, "208"},
		{ColorGray, "245"},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.color.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tt.color, got, tt.want)
		}
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != int(ColorGray)+1 {
		t.Fatalf("len(Palette()) = %d, expected %d", len(p), ColorGray+1)
	}
	for i, c := range p {
		if c != Color(i) {
			t.Errorf("Palette()[%d] = %d", i, c)
		}
	}
}
