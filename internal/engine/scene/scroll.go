package scene

import "github.com/go-gl/mathgl/mgl32"

// Page is the virtual document being scrolled. Offset is in pixels from the top.
type Page struct {
	Offset float32
	Step   float32 // pixels per wheel notch
	Length float32 // largest reachable offset
}

// Scroll moves the page by notches (positive scrolls down) and returns the
// new offset, clamped to [0, Length].
func (p *Page) Scroll(notches float32) float32 {
	p.Offset = mgl32.Clamp(p.Offset+notches*p.Step, 0, p.Length)
	return p.Offset
}

// ScrollMapping holds per-pixel camera coefficients.
type ScrollMapping struct {
	CameraX    float32
	CameraZ    float32
	CameraRotY float32
}

// ScrollTarget rotates a mesh by PerPixel radians for every scrolled pixel.
type ScrollTarget struct {
	Mesh     *Mesh
	PerPixel mgl32.Vec3

	base mgl32.Vec3
}

// ScrollBinding maps a page offset onto the camera and a set of meshes.
// Apply is a pure function of the offset: the transforms it writes depend
// only on the offset and the values captured when the binding was created.
type ScrollBinding struct {
	camera   *PerspectiveCamera
	mapping  ScrollMapping
	basePos  mgl32.Vec3
	baseRotY float32
	targets  []ScrollTarget
}

// NewScrollBinding captures the current camera and target transforms as the
// offset-zero state.
func NewScrollBinding(cam *PerspectiveCamera, mapping ScrollMapping, targets ...ScrollTarget) *ScrollBinding {
	b := &ScrollBinding{
		camera:   cam,
		mapping:  mapping,
		basePos:  cam.Position,
		baseRotY: cam.Rotation[1],
	}
	for _, t := range targets {
		if t.Mesh == nil {
			continue
		}
		t.base = t.Mesh.Rotation
		b.targets = append(b.targets, t)
	}
	return b
}

// Apply positions the camera and rotates the targets for the given offset.
func (b *ScrollBinding) Apply(offset float32) {
	b.camera.Position[0] = b.basePos[0] + offset*b.mapping.CameraX
	b.camera.Position[2] = b.basePos[2] + offset*b.mapping.CameraZ
	b.camera.Rotation[1] = b.baseRotY + offset*b.mapping.CameraRotY

	for _, t := range b.targets {
		t.Mesh.Rotation = t.base.Add(t.PerPixel.Mul(offset))
	}
}

// Targets returns the number of bound meshes.
func (b *ScrollBinding) Targets() int {
	return len(b.targets)
}
