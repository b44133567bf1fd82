package scene

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is the single viewpoint of a scene.
// Rotation is applied yaw (Y) first, then pitch (X), then roll (Z); with zero
// rotation the camera looks down -Z.
type PerspectiveCamera struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Rotation mgl32.Vec3
}

// NewPerspectiveCamera creates a camera at the origin.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// Projection returns the perspective projection matrix.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// orientation returns Ry * Rx * Rz.
func (c *PerspectiveCamera) orientation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(c.Rotation[1]).
		Mul4(mgl32.HomogRotate3DX(c.Rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(c.Rotation[2]))
}

// World returns the camera's world transform.
func (c *PerspectiveCamera) World() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position[0], c.Position[1], c.Position[2]).Mul4(c.orientation())
}

// View returns the view matrix (inverse of the world transform).
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	// Rigid transform: inverse is R^T * -T.
	rt := c.orientation().Transpose()
	return rt.Mul4(mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
}

// Forward returns the unit direction the camera looks along.
func (c *PerspectiveCamera) Forward() mgl32.Vec3 {
	return c.orientation().Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

// LookAt turns the camera toward target. Roll is reset to zero.
// Looking at its own position leaves the rotation unchanged.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Rotation = mgl32.Vec3{
		float32(gomath.Asin(float64(mgl32.Clamp(d[1], -1, 1)))),
		float32(gomath.Atan2(float64(-d[0]), float64(-d[2]))),
		0,
	}
}

// SetViewport updates the aspect ratio from a viewport size.
func (c *PerspectiveCamera) SetViewport(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}
