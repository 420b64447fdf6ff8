package shade

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

var light = math3d.V3(0, 0, -1)

// sphereSamples covers the unit sphere with unit normals equal to positions.
func sphereSamples() []Input {
	var out []Input
	for i := range 24 {
		theta := float64(i) / 24 * math.Pi
		for j := range 48 {
			phi := float64(j) / 48 * 2 * math.Pi
			p := math3d.V3(
				math.Sin(theta)*math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta)*math.Sin(phi),
			)
			out = append(out, Input{Position: p, Normal: p, Light: light})
		}
	}
	return out
}

func TestEveryArchetypeHasShader(t *testing.T) {
	all := Archetypes()
	if len(all) != int(archetypeCount) {
		t.Fatalf("Archetypes() returned %d, want %d", len(all), archetypeCount)
	}
	for _, a := range all {
		if shaders[a] == nil {
			t.Errorf("%v has no shader", a)
		}
		if archetypeNames[a] == "" {
			t.Errorf("archetype %d has no name", a)
		}
		parsed, err := ParseArchetype(a.String())
		if err != nil || parsed != a {
			t.Errorf("ParseArchetype(%q) = %v, %v", a.String(), parsed, err)
		}
	}
}

func TestUnknownArchetypeIsMagenta(t *testing.T) {
	for _, a := range []Archetype{archetypeCount, 42, 255} {
		if a.Valid() {
			t.Errorf("%d should be invalid", a)
		}
		in := Input{Position: math3d.V3(1, 0, 0), Normal: math3d.V3(0, 0, -1), Light: light}
		if got := a.Shade(in); got != Invalid {
			t.Errorf("Archetype(%d).Shade = %v, want %v", a, got, Invalid)
		}
	}
}

func TestParseArchetype(t *testing.T) {
	tests := []struct {
		in      string
		want    Archetype
		wantErr bool
	}{
		{"oceanic", Oceanic, false},
		{"Gas-Giant", GasGiant, false},
		{"ice_giant", IceGiant, false},
		{" moon ", Moon, false},
		{"comet", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseArchetype(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownArchetype) {
					t.Fatalf("error = %v, want ErrUnknownArchetype", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseArchetype(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestArchetypeText(t *testing.T) {
	var a Archetype
	if err := a.UnmarshalText([]byte("rocky")); err != nil || a != Rocky {
		t.Fatalf("UnmarshalText = %v, %v", a, err)
	}
	b, err := Hull.MarshalText()
	if err != nil || string(b) != "hull" {
		t.Errorf("MarshalText = %q, %v", b, err)
	}
	if _, err := Archetype(99).MarshalText(); !errors.Is(err, ErrUnknownArchetype) {
		t.Errorf("MarshalText(99) error = %v", err)
	}
}

// Shaders must be total and deterministic over the whole sphere and across
// time, and never fall back to the sentinel.
func TestShadersTotal(t *testing.T) {
	samples := sphereSamples()
	for _, a := range Archetypes() {
		t.Run(a.String(), func(t *testing.T) {
			for _, time := range []float64{0, 0.5, 17, 3600} {
				for _, in := range samples {
					in.Time = time
					c := a.Shade(in)
					if c != a.Shade(in) {
						t.Fatalf("not deterministic at %+v", in)
					}
					if c == Invalid {
						t.Fatalf("sentinel color at %+v", in)
					}
				}
			}
		})
	}
}

// A grazing or degenerate normal must not leak NaN into the color math.
func TestShadersDegenerateNormal(t *testing.T) {
	in := Input{Position: math3d.V3(0, 0, 0), Normal: math3d.Vec3{}, Light: light}
	for _, a := range Archetypes() {
		_ = a.Shade(in)
	}
}

func TestHull(t *testing.T) {
	tests := []struct {
		name   string
		normal math3d.Vec3
		want   Color
	}{
		// Lit from the front only, so diffuse is zero and ambient 0.4 remains.
		{"top is highlighted", math3d.V3(0, 1, 0), New(80, 88, 102)},
		{"bottom is base metal", math3d.V3(0, -1, 0), New(40, 60, 102)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Hull.Shade(Input{Normal: tc.normal, Light: light})
			if got != tc.want {
				t.Errorf("hull = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOceanicPoleIsIce(t *testing.T) {
	in := Input{Position: math3d.V3(0, 1, 0), Normal: light, Light: light}
	c := Oceanic.Shade(in)
	// 90% ice over ocean, possibly brightened further by clouds.
	if c.R < 229 || c.G < 234 || c.B < 244 {
		t.Errorf("pole = %v, want near white", c)
	}
}

func TestOceanicHasLandAndSea(t *testing.T) {
	var land, sea int
	for _, in := range sphereSamples() {
		if math.Abs(in.Position.Y) > 0.6 {
			continue
		}
		in.Normal = light
		c := Oceanic.Shade(in)
		if c.G > c.B || c.R > c.B {
			land++
		} else {
			sea++
		}
	}
	if land == 0 || sea == 0 {
		t.Errorf("land=%d sea=%d, want both present", land, sea)
	}
}

func TestPhotosphere(t *testing.T) {
	tests := []struct {
		turbulence float64
		want       Color
	}{
		{0, starCore},
		{0.29, starCore},
		{0.5, Lerp(starCore, starHot, (0.5-0.3)/0.4)},
		{0.7, starFlare},
		{1, starFlare},
	}

	for _, tc := range tests {
		if got := photosphere(tc.turbulence); got != tc.want {
			t.Errorf("photosphere(%v) = %v, want %v", tc.turbulence, got, tc.want)
		}
	}
}

func TestPulse(t *testing.T) {
	if got := Pulse(0); !near(got, 0.9, 1e-12) {
		t.Errorf("Pulse(0) = %v", got)
	}
	if got := Pulse(math.Pi / 6); !near(got, 1, 1e-12) {
		t.Errorf("Pulse(pi/6) = %v", got)
	}
	for i := range 100 {
		if p := Pulse(float64(i) * 0.37); p < 0.8-1e-12 || p > 1+1e-12 {
			t.Fatalf("Pulse out of [0.8,1]: %v", p)
		}
	}
}

func TestStarCoronaBrightensLimb(t *testing.T) {
	// Same surface point and time, different viewing angle: the additive rim
	// can only raise channels.
	p := math3d.V3(0.2, 0.4, 0.1)
	center := Star.Shade(Input{Position: p, Normal: math3d.V3(0, 0, 1), Light: light})
	limb := Star.Shade(Input{Position: p, Normal: math3d.V3(1, 0, 0), Light: light})
	if limb.R < center.R || limb.G < center.G || limb.B < center.B {
		t.Errorf("limb %v darker than center %v", limb, center)
	}
}

func TestMariaFactor(t *testing.T) {
	for _, m := range maria {
		f := MariaFactor(m.center)
		if f < m.strength || f > 1 {
			t.Errorf("MariaFactor(%v) = %v, want in [%v, 1]", m.center, f, m.strength)
		}
	}
	for _, in := range sphereSamples() {
		if f := MariaFactor(in.Position); f < 0 || f > 1 {
			t.Fatalf("MariaFactor out of range: %v", f)
		}
	}
}

func TestSpecularZeroHalfVector(t *testing.T) {
	// Light toward the viewer cancels the view vector.
	if s := specular(math3d.V3(0, 0, 1), math3d.V3(0, 0, -1)); s != 0 || math.IsNaN(s) {
		t.Errorf("specular = %v, want 0", s)
	}
}

func TestCrateredRamp(t *testing.T) {
	if got := crateredRamp(0.1); got != crateredDark {
		t.Errorf("ramp(0.1) = %v", got)
	}
	if got := crateredRamp(1); got != crateredYellow {
		t.Errorf("ramp(1) = %v", got)
	}
}

func BenchmarkShaders(b *testing.B) {
	in := Input{
		Position: math3d.V3(0.3, 0.5, 0.81).Normalize(),
		Normal:   math3d.V3(0.3, 0.5, 0.81).Normalize(),
		Light:    light,
		Time:     12.5,
	}
	for _, a := range Archetypes() {
		b.Run(a.String(), func(b *testing.B) {
			for b.Loop() {
				_ = a.Shade(in)
			}
		})
	}
}
