package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// GLTFLoader loads glTF and GLB files into a single Mesh.
type GLTFLoader struct {
	// SmoothNormals fills in averaged normals when the file has none.
	SmoothNormals bool
}

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{SmoothNormals: true}
}

// LoadGLB loads a glTF or binary glTF file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load merges every triangle primitive of every mesh in the file. glTF front
// faces are counter-clockwise, which is what the rasterizer expects, so
// winding is kept as stored.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument builds a mesh from an already decoded document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := addPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}

	if l.SmoothNormals && !mesh.hasNormals() {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func addPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	base := uint32(len(mesh.Vertices))
	for i, p := range positions {
		v := render.Vertex{Position: vec3(p)}
		if i < len(normals) {
			v.Normal = vec3(normals[i])
		}
		if i < len(uvs) {
			// glTF puts V=0 at the top of the image.
			v.TexCoord = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if prim.Indices == nil {
		for i := 0; i+2 < len(positions); i += 3 {
			n := uint32(i)
			mesh.Indices = append(mesh.Indices, base+n, base+n+1, base+n+2)
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("read indices: %w", err)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		for _, idx := range indices[i : i+3] {
			if int(idx) >= len(positions) {
				return fmt.Errorf("%w: index %d with %d positions", render.ErrIndexRange, idx, len(positions))
			}
			mesh.Indices = append(mesh.Indices, base+idx)
		}
	}
	return nil
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}
