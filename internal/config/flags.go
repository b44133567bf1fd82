package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagVariant     = flag.String("variant", "", "Scene variant: ring, lit or portfolio")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagTrackResize = flag.Bool("track-resize", false, "Follow window resizes (viewport and camera aspect)")
	flagSeed        = flag.Int64("seed", 0, "Star placement seed")
	flagStars       = flag.Int("stars", -1, "Star count override")
	flagAssets      = flag.String("assets", "", "Directory holding texture images")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagVariant != "" {
		cfg.Scene.Variant = *flagVariant
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagTrackResize {
		cfg.Graphics.TrackResize = true
	}
	if *flagSeed != 0 {
		cfg.Scene.Stars.Seed = *flagSeed
	}
	if *flagStars >= 0 {
		cfg.Scene.Stars.Count = *flagStars
	}
	if *flagAssets != "" {
		cfg.Assets.Dir = *flagAssets
	}
}
