// Package app wires the window, renderer and scene into a running program.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spacefolio/internal/config"
	"github.com/Faultbox/spacefolio/internal/engine/camera"
	"github.com/Faultbox/spacefolio/internal/engine/debug"
	"github.com/Faultbox/spacefolio/internal/engine/input"
	"github.com/Faultbox/spacefolio/internal/engine/loop"
	"github.com/Faultbox/spacefolio/internal/engine/renderer"
	"github.com/Faultbox/spacefolio/internal/engine/scene"
	"github.com/Faultbox/spacefolio/internal/engine/texture"
	"github.com/Faultbox/spacefolio/internal/engine/window"
	"github.com/Faultbox/spacefolio/internal/logger"
)

// App is the running program.
type App struct {
	config *config.Config
	log    *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	textures *texture.Loader

	scene       *scene.Context
	controller  *controller
	loop        *loop.Loop
	screenshots *debug.ScreenshotCapture

	pendingShot bool
	frameBudget time.Duration
	lastFrame   time.Time

	title      string
	fpsFrames  int
	fpsStarted time.Time
}

// New creates the window, renderer and scene. A window or GL context that
// cannot be created is returned as an error; there is no fallback surface.
func New(cfg *config.Config) (*App, error) {
	sceneCfg, err := SceneConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:      cfg,
		log:         logger.Named("app"),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "spacefolio"),
		title:       windowTitle(cfg.Scene.Variant, sceneCfg.Capabilities),
	}
	if cfg.Graphics.FPSLimit > 0 {
		a.frameBudget = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	a.log.Info("initializing",
		zap.String("variant", cfg.Scene.Variant),
		zap.Stringer("capabilities", sceneCfg.Capabilities),
		zap.Int("stars", sceneCfg.Stars),
	)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      a.title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Resizable:  cfg.Graphics.TrackResize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scene.ErrNoSurface, err)
	}

	a.textures = texture.NewLoader(cfg.Assets.Dir, cfg.Assets.Workers, cfg.Assets.MaxTextureSize)

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		PixelRatio: a.window.PixelRatio(),
		Textures:   a.textures,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("%w: %w", scene.ErrNoSurface, err)
	}

	sceneCfg.Width, sceneCfg.Height = width, height
	a.scene, err = scene.NewContext(sceneCfg, a.renderer)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.window.SwapBuffers()

	seed := starSeed(cfg.Scene.Stars.Seed, time.Now)
	if err := a.scene.Populate(newRNG(seed), a.textures); err != nil {
		a.Close()
		return nil, fmt.Errorf("populate scene: %w", err)
	}
	a.log.Info("scene populated",
		zap.Int("objects", a.scene.Scene.Len()),
		zap.Int64("seed", seed),
		logger.Vec3("camera", a.scene.Camera.Position),
	)

	a.controller = &controller{
		scene:       a.scene,
		page:        scene.Page{Step: cfg.Scroll.Step, Length: cfg.Scroll.PageLength},
		trackResize: cfg.Graphics.TrackResize,
		resize:      a.renderer.Resize,
	}
	if sceneCfg.Capabilities.OrbitControl {
		orbit := camera.NewOrbitControls(a.scene.Camera)
		orbit.RotateSpeed = cfg.Scene.Orbit.RotateSpeed
		orbit.ZoomSpeed = cfg.Scene.Orbit.ZoomSpeed
		orbit.MinDistance = cfg.Scene.Orbit.MinDistance
		orbit.MaxDistance = cfg.Scene.Orbit.MaxDistance
		a.scene.Controls = orbit
		a.controller.orbit = orbit
	}

	a.input = input.New()
	a.loop = loop.New(a.scene.Tick, a)

	a.log.Info("initialized successfully")
	return a, nil
}

// Run drives the render loop until the window closes, Stop is called or
// ctx is cancelled. Must be called from the main goroutine.
func (a *App) Run(ctx context.Context) error {
	a.lastFrame = time.Now()
	a.fpsStarted = a.lastFrame
	return a.loop.Run(ctx)
}

// Stop ends the render loop. Safe from any goroutine.
func (a *App) Stop() {
	a.loop.Stop()
}

// Next presents the frame just rendered and processes input until the next
// one is due. It implements loop.FrameSource.
func (a *App) Next(ctx context.Context) error {
	if a.pendingShot {
		a.pendingShot = false
		a.screenshot()
	}

	a.window.SwapBuffers()
	a.throttle()
	a.updateFPS()

	quit := a.input.Update()
	for _, e := range a.input.Events() {
		switch a.controller.handle(e) {
		case actionQuit:
			quit = true
		case actionScreenshot:
			a.pendingShot = true
		}
	}
	if quit {
		return loop.ErrClosed
	}
	return ctx.Err()
}

// throttle sleeps off the rest of the frame budget when an FPS limit is set.
func (a *App) throttle() {
	if a.frameBudget <= 0 {
		return
	}
	if wait := a.frameBudget - time.Since(a.lastFrame); wait > 0 {
		time.Sleep(wait)
	}
	a.lastFrame = time.Now()
}

func (a *App) updateFPS() {
	if !a.config.Debug.ShowFPS {
		return
	}
	a.fpsFrames++
	if elapsed := time.Since(a.fpsStarted); elapsed >= time.Second {
		fps := float64(a.fpsFrames) / elapsed.Seconds()
		a.window.SetTitle(fmt.Sprintf("%s %.0f fps", a.title, fps))
		a.fpsFrames = 0
		a.fpsStarted = time.Now()
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.textures != nil {
		if err := a.textures.Wait(); err != nil {
			a.log.Warn("texture workers", zap.Error(err))
		}
	}
	if a.renderer != nil {
		if a.textures != nil {
			a.textures.Release()
		}
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
