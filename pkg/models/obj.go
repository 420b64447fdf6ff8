package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// ErrOBJSyntax marks a malformed OBJ statement.
var ErrOBJSyntax = errors.New("obj syntax error")

// defaultNormal is used for face corners without a vn reference.
var defaultNormal = math3d.V3(0, 1, 0)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, filepath.Base(path))
}

// ParseOBJ reads v, vn, vt and f statements; everything else is ignored.
// Polygons are fan-triangulated and every face corner becomes its own vertex.
// Indices may be negative, counting back from the latest element.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		normals   []math3d.Vec3
		uvs       []math3d.Vec2
	)
	mesh := NewMesh(name)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var v math3d.Vec3
			v, err = parseVec3(fields)
			positions = append(positions, v)
		case "vn":
			var v math3d.Vec3
			v, err = parseVec3(fields)
			normals = append(normals, v)
		case "vt":
			var v math3d.Vec2
			v, err = parseVec2(fields)
			uvs = append(uvs, v)
		case "f":
			err = mesh.addOBJFace(fields[1:], positions, normals, uvs)
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n+1 {
		return nil, fmt.Errorf("%w: %q needs %d components", ErrOBJSyntax, fields[0], n)
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOBJSyntax, err)
		}
		out[i] = f
	}
	return out, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(f[0], f[1], f[2]), nil
}

func parseVec2(fields []string) (math3d.Vec2, error) {
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math3d.Vec2{}, err
	}
	return math3d.V2(f[0], f[1]), nil
}

// objIndex resolves a 1-based or negative OBJ reference against n elements.
// An empty reference returns -1.
func objIndex(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	switch {
	case err != nil:
		return 0, fmt.Errorf("%w: %v", ErrOBJSyntax, err)
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("%w: reference %d with %d defined", ErrOBJSyntax, i, n)
	}
}

func (m *Mesh) addOBJFace(corners []string, positions, normals []math3d.Vec3, uvs []math3d.Vec2) error {
	if len(corners) < 3 {
		return fmt.Errorf("%w: face with %d corners", ErrOBJSyntax, len(corners))
	}

	verts := make([]render.Vertex, len(corners))
	for i, c := range corners {
		parts := strings.Split(c, "/")
		pi, err := objIndex(parts[0], len(positions))
		if err != nil {
			return err
		}
		if pi < 0 {
			return fmt.Errorf("%w: corner %q has no position", ErrOBJSyntax, c)
		}
		v := render.Vertex{Position: positions[pi], Normal: defaultNormal}

		if len(parts) > 1 {
			ti, err := objIndex(parts[1], len(uvs))
			if err != nil {
				return err
			}
			if ti >= 0 {
				v.TexCoord = uvs[ti]
			}
		}
		if len(parts) > 2 {
			ni, err := objIndex(parts[2], len(normals))
			if err != nil {
				return err
			}
			if ni >= 0 {
				v.Normal = normals[ni]
			}
		}
		verts[i] = v
	}

	// Fan: 0-1-2, 0-2-3, ...
	for i := 1; i+1 < len(verts); i++ {
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, verts[0], verts[i], verts[i+1])
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return nil
}
