package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/shade"
)

// shipScale is the ship's largest extent in world units.
const shipScale = 10.0

// World is everything drawn each frame apart from the framebuffer itself.
type World struct {
	System *scene.System
	Camera *render.Camera

	sphere   *models.Mesh
	ship     *models.Mesh
	stars    []scene.Star
	orbits   [][]math3d.Vec3
	pipeline *render.Pipeline

	ShowOrbits bool
}

// NewWorld prepares meshes and overlays for sys. shipMesh may be nil.
func NewWorld(sys *scene.System, shipMesh *models.Mesh, workers int) *World {
	if shipMesh == nil {
		shipMesh = models.Cube(1)
	}
	w := &World{
		System:     sys,
		Camera:     render.NewCamera(),
		sphere:     models.Sphere(1, sys.SphereSegments),
		ship:       shipMesh,
		stars:      scene.Starfield(sys.Stars),
		pipeline:   render.NewPipeline(workers),
		ShowOrbits: true,
	}
	w.Camera.SetClipPlanes(1, 10000)
	for _, r := range sys.Orbits() {
		w.orbits = append(w.orbits, scene.OrbitRing(r, scene.OrbitSegments))
	}
	return w
}

// LoadShip reads a ship model by extension and fits it into a unit cube
// centred on the origin.
func LoadShip(path string) (*models.Mesh, error) {
	var (
		mesh *models.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, err = models.LoadGLB(path)
	case ".obj":
		mesh, err = models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load ship: %w", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("load ship: %w", err)
	}

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	if maxDim := math.Max(size.X, math.Max(size.Y, size.Z)); maxDim > 0 {
		s := 1 / maxDim
		mesh.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Negate())))
	}
	return mesh, nil
}

// Draw renders the scene at simulation time t into fb, seen from the chase
// camera behind ship.
func (w *World) Draw(ctx context.Context, fb *render.Framebuffer, t float64, ship *Ship, eye math3d.Vec3) (render.Stats, error) {
	width, height := fb.Width(), fb.Height()
	cam := w.Camera
	cam.SetAspectRatio(float64(width) / float64(max(height, 1)))
	cam.SetView(eye, ship.Position, ship.Up())

	fb.SetBackground(uint32(w.System.Background))
	fb.Clear()
	overlay := render.NewOverlay(cam, fb)

	sky := scene.NewSky(cam.Forward(), cam.FOV, width, height)
	for _, st := range w.stars {
		if x, y, ok := sky.Project(st); ok {
			overlay.DrawSquare(x, y, st.Size, render.StarDepth, st.Color)
		}
	}

	if w.ShowOrbits {
		for _, ring := range w.orbits {
			overlay.DrawLoop(ring, render.OrbitDepth, uint32(w.System.OrbitColor))
		}
	}

	vp := cam.ViewProjectionMatrix()
	frustum := cam.Frustum()
	var total render.Stats
	for _, b := range w.System.Bodies(t) {
		if !frustum.Visible(b.Model, math3d.Zero3(), w.sphere.Radius()) {
			continue
		}
		s, err := w.pipeline.DrawParallel(ctx, fb, b.Uniforms(vp, t, width, height), w.sphere.Vertices, w.sphere.Indices)
		if err != nil {
			return total, fmt.Errorf("draw %s: %w", b.Name, err)
		}
		total.Add(s)
	}

	u := render.Uniforms{
		Model:          ship.Model(shipScale),
		ViewProjection: vp,
		Time:           t,
		Shader:         shade.Hull,
		ScreenWidth:    width,
		ScreenHeight:   height,
	}
	s, err := w.pipeline.DrawParallel(ctx, fb, u, w.ship.Vertices, w.ship.Indices)
	if err != nil {
		return total, fmt.Errorf("draw ship: %w", err)
	}
	total.Add(s)

	render.Logger().Debug("frame",
		slog.Float64("t", t),
		slog.Int("triangles", total.Triangles),
		slog.Int("written", total.Written))
	return total, nil
}
