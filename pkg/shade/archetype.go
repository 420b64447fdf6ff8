package shade

import (
	"errors"
	"fmt"
	"strings"
)

// Archetype selects the surface recipe for a body.
type Archetype uint8

const (
	Oceanic  Archetype = iota // earthlike: oceans, continents, ice, clouds
	Star                      // turbulent photosphere with corona
	GasGiant                  // banded atmosphere with a great spot
	Rocky                     // Mars-like desert with ice, canyons, volcanoes
	Cratered                  // Mercury-like airless body
	Moon                      // bright body with dark maria
	IceGiant                  // Neptune-like banded blue giant
	Hull                      // spaceship metal

	archetypeCount
)

// ErrUnknownArchetype is returned by ParseArchetype for an unrecognized name.
var ErrUnknownArchetype = errors.New("unknown archetype")

var archetypeNames = [archetypeCount]string{
	Oceanic:  "oceanic",
	Star:     "star",
	GasGiant: "gas-giant",
	Rocky:    "rocky",
	Cratered: "cratered",
	Moon:     "moon",
	IceGiant: "ice-giant",
	Hull:     "hull",
}

// shaders is indexed by Archetype. Every defined archetype must have an entry.
var shaders = [archetypeCount]Shader{
	Oceanic:  oceanic,
	Star:     star,
	GasGiant: gasGiant,
	Rocky:    rocky,
	Cratered: cratered,
	Moon:     moon,
	IceGiant: iceGiant,
	Hull:     hull,
}

// Archetypes lists every defined archetype in declaration order.
func Archetypes() []Archetype {
	all := make([]Archetype, archetypeCount)
	for i := range all {
		all[i] = Archetype(i)
	}
	return all
}

// Valid reports whether a names a defined archetype.
func (a Archetype) Valid() bool {
	return a < archetypeCount
}

// Shader returns the shading function for a. An undefined archetype gets a
// shader that paints Invalid everywhere so the mistake is visible on screen.
func (a Archetype) Shader() Shader {
	if !a.Valid() || shaders[a] == nil {
		return invalid
	}
	return shaders[a]
}

// Shade evaluates the archetype's shader.
func (a Archetype) Shade(in Input) Color {
	return a.Shader()(in)
}

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("archetype(%d)", uint8(a))
	}
	return archetypeNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArchetype, uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Archetype) UnmarshalText(text []byte) error {
	v, err := ParseArchetype(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseArchetype resolves a configuration name such as "gas-giant".
func ParseArchetype(name string) (Archetype, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	for i, s := range archetypeNames {
		if s == n {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
}

func invalid(Input) Color {
	return Invalid
}
