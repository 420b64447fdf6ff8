// Package scene describes the solar system: the YAML layout of the sun and
// planets, where every body is at a given time, and the background starfield
// and orbit rings drawn behind them.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/taigrr/orrery/pkg/shade"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrUnknownArchetype is returned for a body with an unrecognized
	// archetype name.
	ErrUnknownArchetype = shade.ErrUnknownArchetype
	// ErrInvalidConfig is returned for values no scene can use.
	ErrInvalidConfig = errors.New("invalid scene config")
)

// Color is a packed 0xRRGGBB colour written as a hex string in YAML.
type Color uint32

// UnmarshalYAML accepts "#rrggbb", "rrggbb" and the other forms
// shade.ParseHex understands.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := shade.ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed.Hex())
	return nil
}

// MarshalYAML writes the colour as "#rrggbb".
func (c Color) MarshalYAML() (any, error) {
	return shade.FromHex(uint32(c)).String(), nil
}

// Sun is the body at the origin.
type Sun struct {
	Archetype     shade.Archetype `yaml:"archetype"`
	Scale         float64         `yaml:"scale"`
	RotationSpeed float64         `yaml:"rotation_speed"`
}

// Planet is a body on a circular orbit around the sun in the XZ plane.
type Planet struct {
	Name          string          `yaml:"name"`
	Archetype     shade.Archetype `yaml:"archetype"`
	Scale         float64         `yaml:"scale"`
	OrbitRadius   float64         `yaml:"orbit_radius"`
	OrbitSpeed    float64         `yaml:"orbit_speed"`
	RotationSpeed float64         `yaml:"rotation_speed"`
	Moon          bool            `yaml:"moon"`
}

// Stars configures the background starfield. The percentages pick how many
// stars are tinted blue or red and how many are drawn two pixels wide; the
// rest are white.
type Stars struct {
	Count int    `yaml:"count"`
	Seed  uint32 `yaml:"seed"`
	Blue  int    `yaml:"blue_percent"`
	Red   int    `yaml:"red_percent"`
	Large int    `yaml:"large_percent"`
}

// DefaultStars is the colour mix used when a scene leaves it out.
var DefaultStars = Stars{Count: 800, Seed: 12345, Blue: 10, Red: 10, Large: 5}

func newSystem() *System {
	return &System{Stars: DefaultStars}
}

// System is a whole scene.
type System struct {
	Background     Color    `yaml:"background"`
	OrbitColor     Color    `yaml:"orbit_color"`
	SphereSegments int      `yaml:"sphere_segments"`
	Sun            Sun      `yaml:"sun"`
	Planets        []Planet `yaml:"planets"`
	Stars          Stars    `yaml:"stars"`
}

// Default returns the built-in solar system.
func Default() *System {
	s, err := Parse(defaultYAML, slog.Default())
	if err != nil {
		panic(fmt.Sprintf("scene: embedded default: %v", err))
	}
	return s
}

// Load reads a scene file.
func Load(path string, log *slog.Logger) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("loaded scene", "path", path, "planets", len(s.Planets))
	return s, nil
}

// Parse decodes a scene document. Unknown keys are logged and skipped rather
// than rejected.
func Parse(data []byte, log *slog.Logger) (*System, error) {
	s := newSystem()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(s)

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			log.Warn("scene config", "problem", msg)
		}
		// Retry without the strict key check; real type errors fail again.
		s = newSystem()
		err = yaml.Unmarshal(data, s)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	if s.SphereSegments == 0 {
		s.SphereSegments = 20
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects values that would produce a broken scene.
func (s *System) Validate() error {
	if s.SphereSegments < 3 {
		return fmt.Errorf("%w: sphere_segments %d, need at least 3", ErrInvalidConfig, s.SphereSegments)
	}
	if !(s.Sun.Scale > 0) {
		return fmt.Errorf("%w: sun scale %v", ErrInvalidConfig, s.Sun.Scale)
	}
	if !s.Sun.Archetype.Valid() {
		return fmt.Errorf("sun: %w", ErrUnknownArchetype)
	}
	for i, p := range s.Planets {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("planets[%d]", i)
		}
		switch {
		case !(p.Scale > 0):
			return fmt.Errorf("%w: %s scale %v", ErrInvalidConfig, name, p.Scale)
		case p.OrbitRadius < 0:
			return fmt.Errorf("%w: %s orbit_radius %v", ErrInvalidConfig, name, p.OrbitRadius)
		case !p.Archetype.Valid():
			return fmt.Errorf("%s: %w", name, ErrUnknownArchetype)
		}
	}
	st := s.Stars
	switch {
	case st.Count < 0:
		return fmt.Errorf("%w: stars count %d", ErrInvalidConfig, st.Count)
	case st.Blue < 0 || st.Red < 0 || st.Blue+st.Red > 100:
		return fmt.Errorf("%w: stars blue %d%% red %d%%", ErrInvalidConfig, st.Blue, st.Red)
	case st.Large < 0 || st.Large > 100:
		return fmt.Errorf("%w: stars large %d%%", ErrInvalidConfig, st.Large)
	}
	return nil
}
