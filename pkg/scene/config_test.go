package scene

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/orrery/pkg/shade"
	"gopkg.in/yaml.v3"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDefault(t *testing.T) {
	s := Default()
	if len(s.Planets) != 8 {
		t.Fatalf("got %d planets, want 8", len(s.Planets))
	}
	if s.Background != 0x000008 || s.OrbitColor != 0x333333 {
		t.Errorf("background %06x orbit %06x", uint32(s.Background), uint32(s.OrbitColor))
	}
	if s.Sun.Archetype != shade.Star || s.Sun.Scale != 200 {
		t.Errorf("sun = %+v", s.Sun)
	}
	earth := s.Planets[2]
	if earth.Name != "earth" || earth.Archetype != shade.Oceanic || !earth.Moon {
		t.Errorf("earth = %+v", earth)
	}
	if s.Planets[1].Archetype != shade.GasGiant || s.Planets[7].Archetype != shade.IceGiant {
		t.Error("archetype names not decoded")
	}
	if s.Stars != DefaultStars || s.SphereSegments != 20 {
		t.Errorf("stars %+v segments %d", s.Stars, s.SphereSegments)
	}
}

func TestParseStarsKeepsDefaultMix(t *testing.T) {
	s, err := Parse([]byte("sun: {archetype: star, scale: 10}\nstars: {count: 5, red_percent: 30}\n"), discard())
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultStars
	want.Count, want.Red = 5, 30
	if s.Stars != want {
		t.Errorf("stars = %+v, want %+v", s.Stars, want)
	}
}

func TestParseErrors(t *testing.T) {
	base := "sun: {archetype: star, scale: 10}\n"
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown archetype", "sun: {archetype: plasma, scale: 10}\n", ErrUnknownArchetype},
		{"zero sun", "sun: {archetype: star}\n", ErrInvalidConfig},
		{"negative planet scale", base + "planets: [{name: x, scale: -1}]\n", ErrInvalidConfig},
		{"negative orbit", base + "planets: [{name: x, scale: 1, orbit_radius: -5}]\n", ErrInvalidConfig},
		{"few segments", base + "sphere_segments: 2\n", ErrInvalidConfig},
		{"negative stars", base + "stars: {count: -1}\n", ErrInvalidConfig},
		{"tints over 100", base + "stars: {blue_percent: 60, red_percent: 50}\n", ErrInvalidConfig},
		{"negative tint", base + "stars: {red_percent: -1}\n", ErrInvalidConfig},
		{"large over 100", base + "stars: {large_percent: 101}\n", ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), discard())
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	t.Run("bad colour", func(t *testing.T) {
		if _, err := Parse([]byte(base+"background: \"#zz\"\n"), discard()); err == nil {
			t.Error("expected an error")
		}
	})
	t.Run("type mismatch", func(t *testing.T) {
		if _, err := Parse([]byte(base+"planets: 7\n"), discard()); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestParseUnknownKeysWarn(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	doc := "sun: {archetype: star, scale: 10}\ncomets: 4\n"
	s, err := Parse([]byte(doc), log)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Sun.Scale != 10 {
		t.Errorf("sun scale %v", s.Sun.Scale)
	}
	if !strings.Contains(buf.String(), "comets") {
		t.Errorf("no warning for unknown key, log: %q", buf.String())
	}
}

func TestColorYAML(t *testing.T) {
	var v struct {
		C Color `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("c: \"1a2B3c\"\n"), &v); err != nil {
		t.Fatal(err)
	}
	if v.C != 0x1A2B3C {
		t.Errorf("Color = %06x", uint32(v.C))
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "#1a2b3c") {
		t.Errorf("Marshal = %q", out)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	doc := "sun: {archetype: star, scale: 5}\nplanets:\n  - {name: rock, archetype: rocky, scale: 1, orbit_radius: 20}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path, discard())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Planets) != 1 || s.Planets[0].Archetype != shade.Rocky {
		t.Errorf("planets = %+v", s.Planets)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), discard()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}
