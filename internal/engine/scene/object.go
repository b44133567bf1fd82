package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/geometry"
)

// ObjectID identifies an object within one Scene.
type ObjectID uint32

// Object is anything that can be added to a Scene.
type Object interface {
	ID() ObjectID
	Name() string
	base() *node
}

type node struct {
	id   ObjectID
	name string
}

func (n *node) base() *node { return n }

// ID returns the identifier assigned when the object was added to a scene.
// Zero means the object has not been added yet.
func (n *node) ID() ObjectID { return n.id }

// Name returns the object's label.
func (n *node) Name() string { return n.name }

// Transform holds position, Euler rotation (radians, X then Y then Z) and scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns the model matrix T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation[0]))
	m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation[1]))
	m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation[2]))
	return m.Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	// MaterialBasic is unlit flat colour.
	MaterialBasic MaterialKind = iota
	// MaterialStandard is lit by the scene's point and ambient lights.
	MaterialStandard
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialBasic:
		return "basic"
	case MaterialStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Material describes how a mesh is shaded. Map and NormalMap are asset paths;
// an empty path or a texture that has not finished loading renders untextured.
type Material struct {
	Kind      MaterialKind
	Color     mgl32.Vec3
	Wireframe bool
	Map       string
	NormalMap string
}

// Textures lists the non-empty texture paths the material references.
func (m Material) Textures() []string {
	var paths []string
	if m.Map != "" {
		paths = append(paths, m.Map)
	}
	if m.NormalMap != "" {
		paths = append(paths, m.NormalMap)
	}
	return paths
}

// Mesh pairs a geometry with a material.
type Mesh struct {
	node
	Transform
	Geometry *geometry.Geometry
	Material Material

	// Spin is added to Rotation once per frame.
	Spin mgl32.Vec3
}

// NewMesh creates a mesh at the origin.
func NewMesh(name string, geom *geometry.Geometry, mat Material) *Mesh {
	return &Mesh{
		node:      node{name: name},
		Transform: IdentityTransform(),
		Geometry:  geom,
		Material:  mat,
	}
}

// LightKind distinguishes light sources.
type LightKind int

const (
	PointLight LightKind = iota
	AmbientLight
)

// Light contributes to the shading of standard-material meshes.
// Position is ignored for ambient lights.
type Light struct {
	node
	Kind      LightKind
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
}

// NewPointLight creates a point light at the origin.
func NewPointLight(name string, color mgl32.Vec3) *Light {
	return &Light{node: node{name: name}, Kind: PointLight, Color: color, Intensity: 1}
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(name string, color mgl32.Vec3) *Light {
	return &Light{node: node{name: name}, Kind: AmbientLight, Color: color, Intensity: 1}
}

// HelperKind distinguishes debug gizmos.
type HelperKind int

const (
	GridHelper HelperKind = iota
	PointLightHelper
)

// Helper is a line-drawn debug gizmo.
type Helper struct {
	node
	Kind HelperKind

	// Grid: total Size split into Divisions cells on the XZ plane.
	Size      float32
	Divisions int

	// Light helpers follow this light.
	Light *Light
}

// NewGridHelper creates a size x size grid with the given divisions.
func NewGridHelper(name string, size float32, divisions int) *Helper {
	return &Helper{node: node{name: name}, Kind: GridHelper, Size: size, Divisions: divisions}
}

// NewPointLightHelper creates a gizmo drawn at the light's position.
func NewPointLightHelper(name string, light *Light, size float32) *Helper {
	return &Helper{node: node{name: name}, Kind: PointLightHelper, Light: light, Size: size}
}

// HexColor converts 0xRRGGBB into linear 0-1 components.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(hex>>16&0xFF) / 255,
		float32(hex>>8&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}
