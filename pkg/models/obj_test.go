package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
vn 0 0 1
o quad
f 1/1/1 2/2/1 3//1 4
`

func TestParseOBJ(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ), "quad")
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 || m.VertexCount() != 6 {
		t.Fatalf("%d triangles, %d vertices; want 2 and 6", m.TriangleCount(), m.VertexCount())
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}

	// Fan: (1,2,3) then (1,3,4).
	wantPos := []math3d.Vec3{
		math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 1, 0),
		math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0),
	}
	for i, want := range wantPos {
		if got := m.Vertices[m.Indices[i]].Position; got != want {
			t.Errorf("corner %d at %v, want %v", i, got, want)
		}
	}

	if m.Vertices[1].TexCoord != math3d.V2(1, 1) {
		t.Errorf("texcoord = %v", m.Vertices[1].TexCoord)
	}
	if m.Vertices[2].Normal != math3d.V3(0, 0, 1) {
		t.Errorf("explicit normal = %v", m.Vertices[2].Normal)
	}
	if m.Vertices[5].Normal != defaultNormal {
		t.Errorf("corner without vn has normal %v, want %v", m.Vertices[5].Normal, defaultNormal)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 2 0 0\nv 0 2 0\nf -3 -2 -1\n"
	m, err := ParseOBJ(strings.NewReader(src), "neg")
	if err != nil {
		t.Fatal(err)
	}
	if m.Vertices[1].Position != math3d.V3(2, 0, 0) {
		t.Errorf("vertex 1 = %v", m.Vertices[1].Position)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 x 3\n"},
		{"reference past end", "v 0 0 0\nf 1 2 3\n"},
		{"zero reference", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad normal ref", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//4 2 3\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src), "bad")
			if !errors.Is(err, ErrOBJSyntax) {
				t.Errorf("err = %v, want ErrOBJSyntax", err)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "quad.obj" || m.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("name %q bounds max %v", m.Name, m.BoundsMax)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}
