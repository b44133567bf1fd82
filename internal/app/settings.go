package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/config"
	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

// SceneConfig maps the program configuration onto the scene construction
// settings: the variant preset, then per-capability overrides, then an
// explicit star count. The viewport is filled in once the window exists.
func SceneConfig(cfg *config.Config) (scene.Config, error) {
	variant, err := scene.ParseVariant(cfg.Scene.Variant)
	if err != nil {
		return scene.Config{}, err
	}
	preset := variant.Preset()

	caps := preset.Capabilities
	o := cfg.Scene.Capabilities
	override(&caps.Lighting, o.Lighting)
	override(&caps.Textures, o.Textures)
	override(&caps.OrbitControl, o.OrbitControl)
	override(&caps.ScrollBinding, o.ScrollBinding)
	override(&caps.DebugHelpers, o.DebugHelpers)

	stars := preset.Stars
	if cfg.Scene.Stars.Count >= 0 {
		stars = cfg.Scene.Stars.Count
	}

	return scene.Config{
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Capabilities: caps,
		Camera: scene.CameraSettings{
			FOV:  cfg.Scene.Camera.FOV,
			Near: cfg.Scene.Camera.Near,
			Far:  cfg.Scene.Camera.Far,
			Z:    cfg.Scene.Camera.Z,
		},
		Stars:  stars,
		Spread: cfg.Scene.Stars.Spread,
		Spin:   mgl32.Vec3(cfg.Scene.Spin),
		Scroll: scene.ScrollMapping{
			CameraX:    cfg.Scroll.CameraX,
			CameraZ:    cfg.Scroll.CameraZ,
			CameraRotY: cfg.Scroll.CameraRotY,
		},
	}, nil
}

func override(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// starSeed returns the configured seed, or a clock-derived one when unset.
func starSeed(configured int64, now func() time.Time) int64 {
	if configured != 0 {
		return configured
	}
	return now().UnixNano()
}

// newRNG builds the star placement generator for seed.
func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1^0x9E3779B97F4A7C15))
}

func windowTitle(variant string, caps scene.Capabilities) string {
	return fmt.Sprintf("spacefolio (%s: %s)", variant, caps)
}
