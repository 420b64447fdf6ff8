package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orrery/pkg/math3d"
)

// Axis is one steering angle. Input pushes Velocity and a critically damped
// spring brings it back to rest, so turns ease in and out.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewAxis creates an axis whose velocity decays at the given frame rate.
func NewAxis(fps int) Axis {
	return Axis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Update advances the axis by one frame.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Ship is the player's craft. The chase camera follows it.
type Ship struct {
	Position         math3d.Vec3
	Yaw, Pitch, Roll Axis

	// Throttle is the commanded speed; Speed follows it through a spring.
	Throttle    float64
	Speed       float64
	speedVel    float64
	speedSpring harmonica.Spring
}

const (
	maxThrottle = 600.0 // world units per second
	maxPitch    = math.Pi/2 - 0.05
)

// NewShip places a ship at pos facing -Z.
func NewShip(pos math3d.Vec3, fps int) *Ship {
	return &Ship{
		Position:    pos,
		Yaw:         NewAxis(fps),
		Pitch:       NewAxis(fps),
		Roll:        NewAxis(fps),
		speedSpring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0),
	}
}

// AddThrottle nudges the commanded speed, clamped to [-max/4, max].
func (s *Ship) AddThrottle(d float64) {
	s.Throttle = math.Max(-maxThrottle/4, math.Min(maxThrottle, s.Throttle+d))
}

// Steer applies a turn impulse in radians per frame.
func (s *Ship) Steer(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// Update advances the ship by dt seconds.
func (s *Ship) Update(dt float64) {
	s.Yaw.Update()
	s.Pitch.Update()
	s.Roll.Update()
	s.Pitch.Position = math.Max(-maxPitch, math.Min(maxPitch, s.Pitch.Position))

	s.Speed, s.speedVel = s.speedSpring.Update(s.Speed, s.speedVel, s.Throttle)
	s.Position = s.Position.Add(s.Forward().Scale(s.Speed * dt))
}

func (s *Ship) orientation() math3d.Mat4 {
	return math3d.RotateY(s.Yaw.Position).
		Mul(math3d.RotateX(s.Pitch.Position)).
		Mul(math3d.RotateZ(s.Roll.Position))
}

// Forward is the unit direction of travel.
func (s *Ship) Forward() math3d.Vec3 {
	return s.orientation().MulVec3Dir(math3d.V3(0, 0, -1)).Normalize()
}

// Up is the ship's unit up vector.
func (s *Ship) Up() math3d.Vec3 {
	return s.orientation().MulVec3Dir(math3d.Up()).Normalize()
}

// Model places a mesh of unit size at the ship.
func (s *Ship) Model(scale float64) math3d.Mat4 {
	return math3d.Translate(s.Position).
		Mul(s.orientation()).
		Mul(math3d.Scale(math3d.V3(scale, scale, scale)))
}

// Chase smooths the camera eye toward its target with one spring per axis.
type Chase struct {
	Eye     math3d.Vec3
	vel     math3d.Vec3
	spring  harmonica.Spring
	started bool
}

// NewChase creates a chase smoother for the given frame rate.
func NewChase(fps int) *Chase {
	return &Chase{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.9)}
}

// Update moves Eye one frame toward target. The first call snaps.
func (c *Chase) Update(target math3d.Vec3) math3d.Vec3 {
	if !c.started {
		c.Eye, c.started = target, true
		return c.Eye
	}
	c.Eye.X, c.vel.X = c.spring.Update(c.Eye.X, c.vel.X, target.X)
	c.Eye.Y, c.vel.Y = c.spring.Update(c.Eye.Y, c.vel.Y, target.Y)
	c.Eye.Z, c.vel.Z = c.spring.Update(c.Eye.Z, c.vel.Z, target.Z)
	return c.Eye
}
