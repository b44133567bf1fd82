package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.TrackResize {
		t.Error("expected track_resize to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.Variant != "portfolio" {
		t.Errorf("expected variant portfolio, got %s", cfg.Scene.Variant)
	}
	if cfg.Scene.Camera.Z != 30 {
		t.Errorf("expected camera z 30, got %f", cfg.Scene.Camera.Z)
	}
	if cfg.Scene.Camera.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Scene.Camera.FOV)
	}
	if cfg.Scene.Stars.Count != -1 {
		t.Errorf("expected star count -1 (variant default), got %d", cfg.Scene.Stars.Count)
	}
	if cfg.Scene.Stars.Spread != 100 {
		t.Errorf("expected spread 100, got %f", cfg.Scene.Stars.Spread)
	}
	if cfg.Scene.Spin != [3]float32{0.01, 0.005, 0.01} {
		t.Errorf("unexpected spin %v", cfg.Scene.Spin)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144
  track_resize: true

scene:
  variant: lit
  capabilities:
    orbit_control: false
  camera:
    fov: 60
  stars:
    count: 42
    spread: 80
    seed: 7
  spin: [0.02, 0, 0]

scroll:
  step: 50

assets:
  dir: /srv/textures

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}
	if !cfg.Graphics.TrackResize {
		t.Error("expected track_resize to be true")
	}

	if cfg.Scene.Variant != "lit" {
		t.Errorf("expected variant lit, got %s", cfg.Scene.Variant)
	}
	if cfg.Scene.Capabilities.OrbitControl == nil || *cfg.Scene.Capabilities.OrbitControl {
		t.Error("expected orbit_control override to be false")
	}
	if cfg.Scene.Capabilities.Lighting != nil {
		t.Error("expected lighting override to stay unset")
	}
	if cfg.Scene.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Scene.Camera.FOV)
	}
	// Unset keys keep their defaults.
	if cfg.Scene.Camera.Z != 30 {
		t.Errorf("expected camera z to stay 30, got %f", cfg.Scene.Camera.Z)
	}
	if cfg.Scene.Stars.Count != 42 || cfg.Scene.Stars.Spread != 80 || cfg.Scene.Stars.Seed != 7 {
		t.Errorf("unexpected stars %+v", cfg.Scene.Stars)
	}
	if cfg.Scene.Spin != [3]float32{0.02, 0, 0} {
		t.Errorf("unexpected spin %v", cfg.Scene.Spin)
	}
	if cfg.Scroll.Step != 50 {
		t.Errorf("expected scroll step 50, got %f", cfg.Scroll.Step)
	}
	if cfg.Scroll.CameraZ != 0.01 {
		t.Errorf("expected scroll camera_z to stay 0.01, got %f", cfg.Scroll.CameraZ)
	}
	if cfg.Assets.Dir != "/srv/textures" {
		t.Errorf("expected assets dir /srv/textures, got %s", cfg.Assets.Dir)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  varaint: ring\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected defaults to survive, got width %d", cfg.Graphics.Width)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "zero width", mutate: func(c *Config) { c.Graphics.Width = 0 }, wantErr: "graphics"},
		{name: "unknown variant", mutate: func(c *Config) { c.Scene.Variant = "nebula" }, wantErr: "unknown variant"},
		{name: "near beyond far", mutate: func(c *Config) { c.Scene.Camera.Near = 2000 }, wantErr: "near"},
		{name: "fov", mutate: func(c *Config) { c.Scene.Camera.FOV = 190 }, wantErr: "fov"},
		{name: "spread", mutate: func(c *Config) { c.Scene.Stars.Spread = -1 }, wantErr: "spread"},
		{name: "page length", mutate: func(c *Config) { c.Scroll.PageLength = -5 }, wantErr: "page_length"},
		{name: "fps limit", mutate: func(c *Config) { c.Graphics.FPSLimit = -1 }, wantErr: "fps_limit"},
		{name: "orbit range", mutate: func(c *Config) { c.Scene.Orbit.MinDistance = 600 }, wantErr: "min_distance"},
		{name: "zero step", mutate: func(c *Config) { c.Scroll.Step = 0 }, wantErr: "step"},
		{name: "negative step", mutate: func(c *Config) { c.Scroll.Step = -100 }, wantErr: "step"},
		{name: "texture size", mutate: func(c *Config) { c.Assets.MaxTextureSize = -1 }, wantErr: "max_texture_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "variant flag",
			setup: func() { *flagVariant = "ring" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Variant != "ring" {
					t.Errorf("expected variant ring, got %s", cfg.Scene.Variant)
				}
			},
			teardown: func() { *flagVariant = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
					t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagTrackResize = true
				*flagSeed = 99
				*flagStars = 0
				*flagAssets = "/tmp/img"
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.TrackResize {
					t.Error("expected track_resize")
				}
				if cfg.Scene.Stars.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Scene.Stars.Seed)
				}
				if cfg.Scene.Stars.Count != 0 {
					t.Errorf("expected zero stars, got %d", cfg.Scene.Stars.Count)
				}
				if cfg.Assets.Dir != "/tmp/img" {
					t.Errorf("expected assets /tmp/img, got %s", cfg.Assets.Dir)
				}
			},
			teardown: func() {
				*flagTrackResize = false
				*flagSeed = 0
				*flagStars = -1
				*flagAssets = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	t.Chdir(t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  variant: nebula\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Variant = "ring"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scene.Variant != "ring" {
		t.Errorf("expected variant ring after reload, got %s", loaded.Scene.Variant)
	}
}
