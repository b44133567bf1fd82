// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all program settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Scroll   ScrollConfig   `yaml:"scroll"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	FPSLimit    int  `yaml:"fps_limit"`
	TrackResize bool `yaml:"track_resize"` // off: viewport and aspect stay at startup values
}

// SceneConfig selects what gets built and how it moves.
type SceneConfig struct {
	Variant      string              `yaml:"variant"` // ring, lit or portfolio
	Capabilities CapabilityOverrides `yaml:"capabilities"`
	Camera       CameraConfig        `yaml:"camera"`
	Stars        StarsConfig         `yaml:"stars"`
	Spin         [3]float32          `yaml:"spin"` // torus rotation per frame, radians
	Orbit        OrbitConfig         `yaml:"orbit"`
}

// CapabilityOverrides replace single toggles of the variant preset. Nil keeps the preset.
type CapabilityOverrides struct {
	Lighting      *bool `yaml:"lighting,omitempty"`
	Textures      *bool `yaml:"textures,omitempty"`
	OrbitControl  *bool `yaml:"orbit_control,omitempty"`
	ScrollBinding *bool `yaml:"scroll_binding,omitempty"`
	DebugHelpers  *bool `yaml:"debug_helpers,omitempty"`
}

// CameraConfig holds perspective camera parameters.
type CameraConfig struct {
	FOV  float32 `yaml:"fov"` // vertical, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	Z    float32 `yaml:"z"`
}

// StarsConfig controls the scattered decorative spheres.
type StarsConfig struct {
	Count  int     `yaml:"count"` // -1 uses the variant's count
	Spread float32 `yaml:"spread"`
	Seed   int64   `yaml:"seed"` // 0 seeds from the clock
}

// OrbitConfig holds mouse orbit sensitivity.
type OrbitConfig struct {
	RotateSpeed float32 `yaml:"rotate_speed"` // radians per pixel dragged
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
}

// ScrollConfig maps the virtual page scroll onto the camera.
type ScrollConfig struct {
	Step       float32 `yaml:"step"`        // pixels per wheel notch
	PageLength float32 `yaml:"page_length"` // maximum offset in pixels
	CameraX    float32 `yaml:"camera_x"`
	CameraZ    float32 `yaml:"camera_z"`
	CameraRotY float32 `yaml:"camera_rot_y"`
}

// AssetsConfig locates image resources.
type AssetsConfig struct {
	Dir            string `yaml:"dir"`
	Workers        int    `yaml:"workers"`
	MaxTextureSize int    `yaml:"max_texture_size"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			Variant: "portfolio",
			Camera: CameraConfig{
				FOV:  75,
				Near: 0.1,
				Far:  1000,
				Z:    30,
			},
			Stars: StarsConfig{
				Count:  -1,
				Spread: 100,
			},
			Spin: [3]float32{0.01, 0.005, 0.01},
			Orbit: OrbitConfig{
				RotateSpeed: 0.005,
				ZoomSpeed:   1,
				MinDistance: 1,
				MaxDistance: 500,
			},
		},
		Scroll: ScrollConfig{
			Step:       100,
			PageLength: 5000,
			CameraX:    0.0002,
			CameraZ:    0.01,
			CameraRotY: 0.0002,
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Workers:        4,
			MaxTextureSize: 4096,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var knownVariants = map[string]bool{"ring": true, "lit": true, "portfolio": true}

// Validate reports settings that cannot produce a working scene.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if !knownVariants[c.Scene.Variant] {
		errs = append(errs, fmt.Errorf("scene: unknown variant %q", c.Scene.Variant))
	}
	if c.Scene.Camera.Near <= 0 || c.Scene.Camera.Near >= c.Scene.Camera.Far {
		errs = append(errs, fmt.Errorf("scene.camera: need 0 < near (%g) < far (%g)", c.Scene.Camera.Near, c.Scene.Camera.Far))
	}
	if c.Scene.Camera.FOV <= 0 || c.Scene.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("scene.camera: fov %g out of range", c.Scene.Camera.FOV))
	}
	if c.Scene.Stars.Spread < 0 {
		errs = append(errs, fmt.Errorf("scene.stars: negative spread %g", c.Scene.Stars.Spread))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit))
	}
	if o := c.Scene.Orbit; o.MinDistance > o.MaxDistance {
		errs = append(errs, fmt.Errorf("scene.orbit: min_distance %g above max_distance %g", o.MinDistance, o.MaxDistance))
	}
	if c.Scroll.Step <= 0 {
		errs = append(errs, fmt.Errorf("scroll: step %g must be positive", c.Scroll.Step))
	}
	if c.Scroll.PageLength < 0 {
		errs = append(errs, fmt.Errorf("scroll: negative page_length %g", c.Scroll.PageLength))
	}
	if c.Assets.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("assets: negative max_texture_size %d", c.Assets.MaxTextureSize))
	}
	return errors.Join(errs...)
}
