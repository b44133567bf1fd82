package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/geometry"
)

// Asset file names, resolved by the texture loader against its directory.
const (
	SpaceTexture  = "space.png"
	AvatarTexture = "avatar.jpg"
	PlanetTexture = "planet.jpg"
	NormalTexture = "normal.jpg"
)

// Fixed scene layout.
var (
	TorusColor     = HexColor(0xFF6347)
	White          = HexColor(0xFFFFFF)
	LightPosition  = mgl32.Vec3{5, 5, 5}
	AvatarPosition = mgl32.Vec3{2, 0, -5}
	PlanetPosition = mgl32.Vec3{-10, 0, 30}

	AvatarScroll = mgl32.Vec3{0, 0.001, 0.001}
	PlanetScroll = mgl32.Vec3{0.0005, 0.00075, 0.0005}
)

// ErrNoSurface is returned when there is nothing to render into.
var ErrNoSurface = errors.New("scene: no drawable surface")

// Renderer draws a scene from a camera's point of view.
type Renderer interface {
	Render(s *Scene, cam *PerspectiveCamera) error
}

// Controls is per-frame interaction state that may move the camera.
type Controls interface {
	// Update applies pending input and reports whether the camera moved.
	Update() bool
}

// TextureRequester starts loading an image without waiting for it.
type TextureRequester interface {
	Request(path string)
}

// CameraSettings configures the perspective camera.
type CameraSettings struct {
	FOV  float32
	Near float32
	Far  float32
	Z    float32
}

// Config drives NewContext and Populate.
type Config struct {
	Width        int
	Height       int
	Capabilities Capabilities
	Camera       CameraSettings
	Stars        int
	Spread       float32
	Spin         mgl32.Vec3
	Scroll       ScrollMapping
}

// Context owns the scene, its camera and the renderer bound to them.
type Context struct {
	Scene    *Scene
	Camera   *PerspectiveCamera
	Renderer Renderer

	// Controls is advanced every tick when set.
	Controls Controls
	// Scroll is set by Populate when scroll binding is enabled.
	Scroll *ScrollBinding

	Torus  *Mesh
	Avatar *Mesh
	Planet *Mesh
	Stars  []*Mesh
	Point  *Light

	config Config
	frames uint64
}

// NewContext creates the scene, camera and renderer binding, then renders
// once so the surface is cleared before any content exists.
func NewContext(cfg Config, r Renderer) (*Context, error) {
	if r == nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w (renderer %v, viewport %dx%d)", ErrNoSurface, r != nil, cfg.Width, cfg.Height)
	}

	cam := NewPerspectiveCamera(cfg.Camera.FOV, float32(cfg.Width)/float32(cfg.Height), cfg.Camera.Near, cfg.Camera.Far)
	cam.Position[2] = cfg.Camera.Z

	c := &Context{
		Scene:    New(),
		Camera:   cam,
		Renderer: r,
		config:   cfg,
	}
	if err := c.render(); err != nil {
		return nil, fmt.Errorf("first paint: %w", err)
	}
	return c, nil
}

// Populate builds the meshes, lights and helpers selected by the capability
// set. Star positions come from rng. Textures are requested, never awaited.
func (c *Context) Populate(rng *rand.Rand, textures TextureRequester) error {
	caps := c.config.Capabilities

	torusMat := Material{Kind: MaterialBasic, Color: TorusColor, Wireframe: true}
	if caps.Lighting {
		torusMat = Material{Kind: MaterialStandard, Color: TorusColor}
	}
	c.Torus = NewMesh("torus", geometry.Torus(10, 3, 16, 100), torusMat)
	c.Torus.Spin = c.config.Spin
	if err := c.Scene.Add(c.Torus); err != nil {
		return err
	}

	if caps.Lighting {
		c.Point = NewPointLight("point-light", White)
		c.Point.Position = LightPosition
		if err := c.Scene.Add(c.Point, NewAmbientLight("ambient-light", White)); err != nil {
			return err
		}
	}

	if caps.DebugHelpers {
		if c.Point != nil {
			if err := c.Scene.Add(NewPointLightHelper("light-helper", c.Point, 1)); err != nil {
				return err
			}
		}
		if err := c.Scene.Add(NewGridHelper("grid-helper", 200, 50)); err != nil {
			return err
		}
	}

	if err := c.addStars(rng, caps.Lighting); err != nil {
		return err
	}

	if caps.Textures {
		if err := c.addTextured(caps.Lighting); err != nil {
			return err
		}
		if textures != nil {
			textures.Request(c.Scene.Background)
			for _, m := range c.Scene.Meshes() {
				for _, path := range m.Material.Textures() {
					textures.Request(path)
				}
			}
		}
	}

	if caps.ScrollBinding {
		c.Scroll = NewScrollBinding(c.Camera, c.config.Scroll,
			ScrollTarget{Mesh: c.Avatar, PerPixel: AvatarScroll},
			ScrollTarget{Mesh: c.Planet, PerPixel: PlanetScroll},
		)
	}
	return nil
}

func (c *Context) addStars(rng *rand.Rand, lit bool) error {
	if c.config.Stars <= 0 {
		return nil
	}
	kind := MaterialBasic
	if lit {
		kind = MaterialStandard
	}
	// All stars share one geometry.
	geom := geometry.Sphere(0.25, 24, 24)
	for i, pos := range PlaceStars(rng, c.config.Stars, c.config.Spread) {
		star := NewMesh(fmt.Sprintf("star-%d", i), geom, Material{Kind: kind, Color: White})
		star.Position = pos
		if err := c.Scene.Add(star); err != nil {
			return err
		}
		c.Stars = append(c.Stars, star)
	}
	return nil
}

func (c *Context) addTextured(lit bool) error {
	c.Scene.Background = SpaceTexture

	c.Avatar = NewMesh("avatar", geometry.Box(3, 3, 3), Material{Kind: MaterialBasic, Color: White, Map: AvatarTexture})
	c.Avatar.Position = AvatarPosition

	planetMat := Material{Kind: MaterialBasic, Color: White, Map: PlanetTexture}
	if lit {
		planetMat = Material{Kind: MaterialStandard, Color: White, Map: PlanetTexture, NormalMap: NormalTexture}
	}
	c.Planet = NewMesh("planet", geometry.Sphere(3, 32, 32), planetMat)
	c.Planet.Position = PlanetPosition

	return c.Scene.Add(c.Avatar, c.Planet)
}

// PlaceStars draws n positions with every coordinate independently uniform in
// [-spread/2, spread/2]. Overlaps are allowed.
func PlaceStars(rng *rand.Rand, n int, spread float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, n)
	for i := range out {
		out[i] = mgl32.Vec3{
			randFloatSpread(rng, spread),
			randFloatSpread(rng, spread),
			randFloatSpread(rng, spread),
		}
	}
	return out
}

func randFloatSpread(rng *rand.Rand, spread float32) float32 {
	return spread * (0.5 - rng.Float32())
}

// Tick advances one frame: spin, then controls, then exactly one render.
func (c *Context) Tick() error {
	for _, m := range c.Scene.meshes {
		if m.Spin != (mgl32.Vec3{}) {
			m.Rotation = m.Rotation.Add(m.Spin)
		}
	}
	if c.Controls != nil {
		c.Controls.Update()
	}
	return c.render()
}

// ScrollTo applies the scroll binding for a page offset. No-op when unbound.
func (c *Context) ScrollTo(offset float32) {
	if c.Scroll != nil {
		c.Scroll.Apply(offset)
	}
}

// Resize updates the camera aspect for a new viewport.
func (c *Context) Resize(width, height int) {
	c.Camera.SetViewport(width, height)
}

// Frames returns the number of render calls issued, including the first paint.
func (c *Context) Frames() uint64 {
	return c.frames
}

// Capabilities returns the capability set the context was built with.
func (c *Context) Capabilities() Capabilities {
	return c.config.Capabilities
}

func (c *Context) render() error {
	if err := c.Renderer.Render(c.Scene, c.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", c.frames, err)
	}
	c.frames++
	return nil
}
