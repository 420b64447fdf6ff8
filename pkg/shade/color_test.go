package shade

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	black, white := Black(), White()
	tests := []struct {
		name string
		a, b Color
		t    float64
		want Color
	}{
		{"midpoint truncates", black, white, 0.5, New(127, 127, 127)},
		{"start", New(10, 20, 30), white, 0, New(10, 20, 30)},
		{"end", New(10, 20, 30), New(1, 2, 3), 1, New(1, 2, 3)},
		{"negative t clamps", New(10, 20, 30), white, -3, New(10, 20, 30)},
		{"large t clamps", black, New(9, 8, 7), 42, New(9, 8, 7)},
		{"nan t holds a", New(5, 6, 7), white, math.NaN(), New(5, 6, 7)},
		{"quarter", New(0, 100, 200), New(100, 0, 0), 0.25, New(25, 75, 150)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lerp(tc.a, tc.b, tc.t); got != tc.want {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		f    float64
		want Color
	}{
		{"identity", New(1, 2, 3), 1, New(1, 2, 3)},
		{"saturates", New(200, 100, 50), 2, New(255, 200, 100)},
		{"negative", New(200, 100, 50), -1, Black()},
		{"nan", New(200, 100, 50), math.NaN(), Black()},
		{"truncates", New(3, 3, 3), 0.5, New(1, 1, 1)},
		{"infinite", New(1, 0, 1), math.Inf(1), New(255, 0, 255)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Scale(tc.f); got != tc.want {
				t.Errorf("%v.Scale(%v) = %v, want %v", tc.c, tc.f, got, tc.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := New(18, 52, 86).Hex(); got != 0x123456 {
		t.Errorf("Hex() = %#x, want 0x123456", got)
	}
	if got := FromHex(0x123456); got != New(18, 52, 86) {
		t.Errorf("FromHex(0x123456) = %v", got)
	}
	if got := Invalid.Hex(); got != 0xff00ff {
		t.Errorf("Invalid.Hex() = %#x, want 0xff00ff", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#123456", New(18, 52, 86), false},
		{"123456", New(18, 52, 86), false},
		{"#000008", New(0, 0, 8), false},
		{"nothex", Color{}, true},
		{"", Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddSaturates(t *testing.T) {
	got := New(200, 10, 0).Add(New(100, 10, 0))
	if got != New(255, 20, 0) {
		t.Errorf("Add = %v", got)
	}
	if got := New(250, 0, 100).AddScalar(6.5); got != New(255, 6, 106) {
		t.Errorf("AddScalar = %v", got)
	}
}
