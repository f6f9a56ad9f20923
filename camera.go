package luminal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera defaults.
const (
	DefaultMoveSpeed float32 = 0.5
	DefaultTurnSpeed float32 = 2.0 // Degrees per turn call
)

// Camera is a yaw-only first-person camera. Pitch is fixed at zero, so the
// camera can look around but never up or down.
type Camera struct {
	position  mgl32.Vec3
	forward   mgl32.Vec3
	up        mgl32.Vec3
	yaw       float32 // Degrees
	speed     float32
	turnSpeed float32
}

// NewCamera returns a camera at (0,0,3) looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		position:  mgl32.Vec3{0, 0, 3},
		forward:   mgl32.Vec3{0, 0, -1},
		up:        mgl32.Vec3{0, 1, 0},
		yaw:       -90,
		speed:     DefaultMoveSpeed,
		turnSpeed: DefaultTurnSpeed,
	}
}

// MoveForward moves along the forward vector.
func (c *Camera) MoveForward() {
	c.position = c.position.Add(c.forward.Mul(c.speed))
}

// MoveBackward moves against the forward vector.
func (c *Camera) MoveBackward() {
	c.position = c.position.Sub(c.forward.Mul(c.speed))
}

// MoveLeft strafes left in the horizontal plane, along
// (forward.z, 0, -forward.x). That is -X for the default -Z view. The
// opposite sign, (-forward.z, 0, forward.x), points right; MoveRight uses it.
func (c *Camera) MoveLeft() {
	c.position[0] += c.forward.Z() * c.speed
	c.position[2] -= c.forward.X() * c.speed
}

// MoveRight strafes right in the horizontal plane.
func (c *Camera) MoveRight() {
	c.position[0] -= c.forward.Z() * c.speed
	c.position[2] += c.forward.X() * c.speed
}

// TurnLeft rotates the view by -turnSpeed degrees of yaw.
func (c *Camera) TurnLeft() {
	c.yaw -= c.turnSpeed
	c.updateForward()
}

// TurnRight rotates the view by +turnSpeed degrees of yaw.
func (c *Camera) TurnRight() {
	c.yaw += c.turnSpeed
	c.updateForward()
}

func (c *Camera) updateForward() {
	sin, cos := math.Sincos(float64(mgl32.DegToRad(c.yaw)))
	c.forward = mgl32.Vec3{float32(cos), 0, float32(sin)}.Normalize()
}

// ViewMatrix returns the look-at matrix for the current pose.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
}

// Matrices pairs the view matrix with projection for a draw call.
func (c *Camera) Matrices(projection mgl32.Mat4) CameraMatrices {
	return CameraMatrices{Projection: projection, View: c.ViewMatrix()}
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Forward() mgl32.Vec3  { return c.forward }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Speed() float32       { return c.speed }

// SetPosition moves the camera without changing its orientation.
func (c *Camera) SetPosition(p mgl32.Vec3) { c.position = p }

// SetSpeed sets the distance covered by a single move call.
func (c *Camera) SetSpeed(s float32) { c.speed = s }

// SetTurnSpeed sets the yaw change of a single turn call, in degrees.
func (c *Camera) SetTurnSpeed(deg float32) { c.turnSpeed = deg }

// CameraMatrices are the per-frame camera uniforms shared by 3D draws.
type CameraMatrices struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// Perspective returns a perspective projection for a width×height surface.
// A zero height is treated as one to keep the aspect finite.
func Perspective(fovDeg float32, width, height int, near, far float32) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), float32(width)/float32(height), near, far)
}
