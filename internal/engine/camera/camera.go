// Package camera provides interactive camera controllers.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

// polarEpsilon keeps the orbit off the poles where yaw is undefined.
const polarEpsilon = 1e-3

// OrbitControls orbits a camera around a target point.
//
// Pointer input only accumulates; the camera moves when Update is called,
// once per frame. Update with nothing pending leaves the camera untouched.
type OrbitControls struct {
	camera *scene.PerspectiveCamera

	// Target is the point the camera orbits and looks at.
	Target mgl32.Vec3

	Enabled bool

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	RotateSpeed float32 // radians per pixel dragged
	ZoomSpeed   float32 // exponent applied per wheel notch

	dragging     bool
	lastX, lastY int32

	pendingYaw   float32
	pendingPitch float32
	pendingZoom  float32
}

// NewOrbitControls creates controls for cam with default settings.
func NewOrbitControls(cam *scene.PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		camera:      cam,
		Enabled:     true,
		MinDistance: 1,
		MaxDistance: 500,
		RotateSpeed: 0.005,
		ZoomSpeed:   1,
	}
}

// PointerDown starts a drag at the given window position.
func (o *OrbitControls) PointerDown(x, y int32) {
	o.dragging = true
	o.lastX, o.lastY = x, y
}

// PointerMove continues a drag. Moves without a pressed pointer are ignored.
func (o *OrbitControls) PointerMove(x, y int32) {
	if !o.dragging {
		return
	}
	o.HandleDrag(float32(x-o.lastX), float32(y-o.lastY))
	o.lastX, o.lastY = x, y
}

// PointerUp ends a drag.
func (o *OrbitControls) PointerUp() {
	o.dragging = false
}

// Dragging reports whether a drag is in progress.
func (o *OrbitControls) Dragging() bool {
	return o.dragging
}

// HandleDrag queues rotation from a pointer delta in pixels.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	if !o.Enabled {
		return
	}
	o.pendingYaw += deltaX * o.RotateSpeed
	o.pendingPitch += deltaY * o.RotateSpeed
}

// HandleZoom queues a zoom. Positive delta moves toward the target.
func (o *OrbitControls) HandleZoom(delta float32) {
	if !o.Enabled {
		return
	}
	o.pendingZoom += delta
}

// Pending reports whether Update would move the camera.
func (o *OrbitControls) Pending() bool {
	return o.pendingYaw != 0 || o.pendingPitch != 0 || o.pendingZoom != 0
}

// Update applies queued input to the camera and aims it at the target.
// It returns false, without touching the camera, when nothing is queued.
func (o *OrbitControls) Update() bool {
	if !o.Pending() {
		return false
	}
	defer o.clear()

	offset := o.camera.Position.Sub(o.Target)
	radius := float64(offset.Len())
	if radius == 0 {
		return false
	}

	// Spherical coordinates: theta around +Y measured from +Z, phi down from +Y.
	theta := gomath.Atan2(float64(offset[0]), float64(offset[2]))
	phi := gomath.Acos(clamp(float64(offset[1])/radius, -1, 1))

	theta -= float64(o.pendingYaw)
	phi -= float64(o.pendingPitch)
	phi = clamp(phi, polarEpsilon, gomath.Pi-polarEpsilon)

	radius *= gomath.Pow(0.95, float64(o.pendingZoom*o.ZoomSpeed))
	radius = clamp(radius, float64(o.MinDistance), float64(o.MaxDistance))

	sinPhi := gomath.Sin(phi)
	offset = mgl32.Vec3{
		float32(radius * sinPhi * gomath.Sin(theta)),
		float32(radius * gomath.Cos(phi)),
		float32(radius * sinPhi * gomath.Cos(theta)),
	}

	o.camera.Position = o.Target.Add(offset)
	o.camera.LookAt(o.Target)
	return true
}

// Reset drops queued input and any drag in progress.
func (o *OrbitControls) Reset() {
	o.clear()
	o.dragging = false
}

func (o *OrbitControls) clear() {
	o.pendingYaw, o.pendingPitch, o.pendingZoom = 0, 0, 0
}

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(hi, v))
}
