package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Depths used for screen-space decorations. Both lose to any triangle in
// front of them.
const (
	StarDepth  = 1.0
	OrbitDepth = 0.999
)

// Overlay draws lines and points projected through a camera at a fixed depth.
type Overlay struct {
	camera *Camera
	fb     *Framebuffer
}

// NewOverlay creates an overlay drawing into fb through camera.
func NewOverlay(camera *Camera, fb *Framebuffer) *Overlay {
	return &Overlay{camera: camera, fb: fb}
}

// DrawLine3D draws a world-space segment. A segment with an endpoint off
// screen or behind the eye is skipped rather than clipped.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, depth float64, c uint32) bool {
	x1, y1, _, vis1 := o.camera.WorldToScreen(p1, o.fb.width, o.fb.height)
	x2, y2, _, vis2 := o.camera.WorldToScreen(p2, o.fb.width, o.fb.height)
	if !vis1 || !vis2 {
		return false
	}
	o.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), depth, c)
	return true
}

// DrawLoop draws a closed polyline through points and returns how many
// segments were drawn.
func (o *Overlay) DrawLoop(points []math3d.Vec3, depth float64, c uint32) int {
	n := 0
	for i := range points {
		if o.DrawLine3D(points[i], points[(i+1)%len(points)], depth, c) {
			n++
		}
	}
	return n
}

// DrawSquare fills a size x size block with its top-left corner at (x, y).
func (o *Overlay) DrawSquare(x, y, size int, depth float64, c uint32) {
	for dy := range size {
		for dx := range size {
			o.fb.Point(x+dx, y+dy, depth, c)
		}
	}
}
