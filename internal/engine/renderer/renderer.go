// Package renderer draws scenes with OpenGL.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/spacefolio/internal/engine/debug"
	"github.com/Faultbox/spacefolio/internal/engine/lighting"
	"github.com/Faultbox/spacefolio/internal/engine/scene"
	"github.com/Faultbox/spacefolio/internal/engine/shader"
	"github.com/Faultbox/spacefolio/internal/engine/texture"
	"github.com/Faultbox/spacefolio/internal/logger"
)

// Texture units.
const (
	unitMap       = 0
	unitNormalMap = 1
)

// TextureSource resolves material texture paths to GPU handles.
type TextureSource interface {
	// Poll uploads textures that finished decoding since the last call.
	Poll(upload texture.UploadFunc) int
	// ID returns the handle for path, or 0 if it is not ready.
	ID(path string) uint32
}

// Config holds renderer configuration.
type Config struct {
	// Width and Height are the window size in screen coordinates.
	Width  int
	Height int
	// PixelRatio is drawable pixels per screen coordinate.
	PixelRatio float32

	ClearColor mgl32.Vec3
	Textures   TextureSource
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	basic      *shader.Program
	standard   *shader.Program
	line       *shader.Program
	background *shader.Program

	meshes      *meshCache
	lines       *lineBuffer
	emptyVAO    uint32
	lights      *lighting.PointLightBuffer
	lineScratch []float32

	droppedLights int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: newMeshCache(),
		lights: lighting.NewPointLightBuffer(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Float32("pixel_ratio", cfg.PixelRatio),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	programs := map[string]**shader.Program{
		shader.Basic.Name:      &r.basic,
		shader.Standard.Name:   &r.standard,
		shader.Line.Name:       &r.line,
		shader.Background.Name: &r.background,
	}
	for _, src := range shader.All() {
		dst, ok := programs[src.Name]
		if !ok {
			continue
		}
		prog, err := shader.Build(src)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to create shader program: %w", err)
		}
		*dst = prog
		r.log.Debug("shader program created", zap.String("name", prog.Name), zap.Uint32("program", prog.ID))
	}

	r.lines = newLineBuffer()
	gl.GenVertexArrays(1, &r.emptyVAO)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", r.meshes.Len()))
	r.meshes.Release()
	if r.lines != nil {
		r.lines.Release()
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
		r.emptyVAO = 0
	}
	for _, p := range []*shader.Program{r.basic, r.standard, r.line, r.background} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize. Sizes are in screen coordinates.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	w, h := r.DrawableSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("drawable_width", w),
		zap.Int("drawable_height", h),
	)
}

// DrawableSize returns the framebuffer size in pixels.
func (r *Renderer) DrawableSize() (int, int) {
	return drawableSize(r.config.Width, r.config.Height, r.config.PixelRatio)
}

func drawableSize(width, height int, ratio float32) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	return int(float32(width)*ratio + 0.5), int(float32(height)*ratio + 0.5)
}

// Render draws s as seen from cam. Textures that finished loading are
// uploaded first, so a mesh picks up its map on the frame after it arrives.
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	if r.config.Textures != nil {
		r.config.Textures.Poll(texture.Upload)
	}

	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.drawBackground(s.Background)

	view := cam.View()
	projection := cam.Projection()

	if dropped := r.lights.SetScene(s.Lights()); dropped != r.droppedLights {
		if dropped > 0 {
			r.log.Warn("too many point lights, extra lights ignored",
				zap.Int("dropped", dropped),
				zap.Int("max", lighting.MaxPointLights),
			)
		}
		r.droppedLights = dropped
	}

	for _, m := range s.Meshes() {
		if err := r.drawMesh(m, view, projection, cam.Position); err != nil {
			return fmt.Errorf("mesh %q: %w", m.Name(), err)
		}
	}

	r.drawHelpers(s.Helpers(), projection.Mul4(view))

	return glError()
}

func (r *Renderer) drawBackground(path string) {
	if path == "" || r.config.Textures == nil {
		return
	}
	id := r.config.Textures.ID(path)
	if id == 0 {
		return
	}

	gl.DepthMask(false)
	gl.Disable(gl.DEPTH_TEST)
	r.background.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	r.background.SetInt("uBackground", 0)
	gl.BindVertexArray(r.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
}

func (r *Renderer) drawMesh(m *scene.Mesh, view, projection mgl32.Mat4, cameraPos mgl32.Vec3) error {
	if m.Geometry == nil {
		return nil
	}
	gm, err := r.meshes.Get(m.Geometry)
	if err != nil {
		return err
	}

	prog := r.basic
	if m.Material.Kind == scene.MaterialStandard {
		prog = r.standard
	}
	prog.Use()
	prog.SetMat4("uModel", m.Matrix())
	prog.SetMat4("uView", view)
	prog.SetMat4("uProjection", projection)
	prog.SetVec3("uColor", m.Material.Color)

	mapID := r.textureID(m.Material.Map)
	prog.SetBool("uHasMap", mapID != 0)
	prog.SetInt("uMap", unitMap)
	bindTexture(unitMap, mapID)

	if prog == r.standard {
		normalID := r.textureID(m.Material.NormalMap)
		prog.SetBool("uHasNormalMap", normalID != 0)
		prog.SetInt("uNormalMap", unitNormalMap)
		bindTexture(unitNormalMap, normalID)

		prog.SetVec3("uCameraPos", cameraPos)
		prog.SetVec3("uAmbient", r.lights.Ambient)
		prog.SetInt("uPointLightCount", int32(r.lights.Count))
		prog.SetVec3Array("uPointLightPositions", r.lights.Positions())
		prog.SetVec3Array("uPointLightColors", r.lights.Colors())
		prog.SetFloatArray("uPointLightRanges", r.lights.Ranges())
	}

	if m.Material.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Disable(gl.CULL_FACE)
	}
	gm.Draw()
	if m.Material.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.Enable(gl.CULL_FACE)
	}
	return nil
}

func (r *Renderer) drawHelpers(helpers []*scene.Helper, viewProjection mgl32.Mat4) {
	if len(helpers) == 0 {
		return
	}
	r.lineScratch = r.lineScratch[:0]
	for _, h := range helpers {
		r.lineScratch = debug.AppendFloats(r.lineScratch, debug.HelperLines(h))
	}
	if len(r.lineScratch) == 0 {
		return
	}

	r.line.Use()
	r.line.SetMat4("uViewProjection", viewProjection)
	r.lines.Draw(r.lineScratch)
}

func (r *Renderer) textureID(path string) uint32 {
	if path == "" || r.config.Textures == nil {
		return 0
	}
	return r.config.Textures.ID(path)
}

func bindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.DrawableSize()
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// ErrGL wraps errors reported by glGetError.
var ErrGL = errors.New("opengl error")

func glError() error {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
		if len(codes) > 8 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrGL, glErrorNames(codes))
}
