package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Camera is a look-at perspective camera.
type Camera struct {
	Eye    math3d.Vec3
	Target math3d.Vec3
	Up     math3d.Vec3

	FOV         float64 // vertical, radians
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera returns a camera at (0, 0, 10) looking at the origin with a 60
// degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Eye:         math3d.V3(0, 0, 10),
		Up:          math3d.Up(),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        1,
		Far:         10000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetView places the camera.
func (c *Camera) SetView(eye, target, up math3d.Vec3) {
	c.Eye, c.Target, c.Up = eye, target, up
	c.viewDirty = true
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) {
		return
	}
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ChaseOffset is where a chase camera sits relative to its subject, in the
// subject's forward and up units.
type ChaseOffset struct {
	Behind float64
	Above  float64
}

// DefaultChase trails 100 units behind and 40 above.
var DefaultChase = ChaseOffset{Behind: 100, Above: 40}

// ChaseEye is the eye position for following a subject at pos facing forward.
func (o ChaseOffset) ChaseEye(pos, forward, up math3d.Vec3) math3d.Vec3 {
	return pos.Sub(forward.Normalize().Scale(o.Behind)).Add(up.Normalize().Scale(o.Above))
}

// Follow points the camera at pos from the chase offset o.
func (c *Camera) Follow(pos, forward, up math3d.Vec3, o ChaseOffset) {
	c.SetView(o.ChaseEye(pos, forward, up), pos, up)
}

// Forward is the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Eye).Normalize()
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Eye, c.Target, c.Up)
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewDirty || c.projDirty {
		view := c.ViewMatrix()
		c.viewProjMatrix = c.ProjectionMatrix().Mul(view)
	}
	return c.viewProjMatrix
}

// Frustum returns the camera's view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen projects a world point to pixel coordinates and depth in
// [0, 1]. visible is false for points behind the eye or outside the frustum.
func (c *Camera) WorldToScreen(p math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.DivideW(minClipW)
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	depth = (ndc.Z + 1) * 0.5
	return x, y, depth, true
}
