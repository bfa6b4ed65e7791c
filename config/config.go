// Package config holds the YAML configuration for the backdrop binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvSeed overrides Backdrop.Seed when set.
const EnvSeed = "OXY_BACKDROP_SEED"

// Config is the root configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Loop     LoopConfig     `yaml:"loop"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Page     PageConfig     `yaml:"page"`
	Logging  LoggingConfig  `yaml:"logging"`
	Headless HeadlessConfig `yaml:"headless"`
}

// WindowConfig configures the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoopConfig configures the frame loop.
type LoopConfig struct {
	FPS            float64 `yaml:"fps"`
	FrameLimit     uint64  `yaml:"frame_limit"`
	VSync          bool    `yaml:"vsync"`
	SoftwareRender bool    `yaml:"software_render"`
	Workers        int     `yaml:"workers"`
	Profile        bool    `yaml:"profile"`
}

// BackdropConfig configures scene generation. A zero seed picks a random one per run.
type BackdropConfig struct {
	Seed        uint64 `yaml:"seed"`
	TraceCount  int    `yaml:"trace_count"`
	StreakCount int    `yaml:"streak_count"`
}

// PageConfig configures the scrollable page.
type PageConfig struct {
	Screens   float64 `yaml:"screens"`
	WheelStep float64 `yaml:"wheel_step"`
	LineStep  float64 `yaml:"line_step"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HeadlessConfig configures offscreen rendering.
type HeadlessConfig struct {
	OutputDir string    `yaml:"output_dir"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Frames    int       `yaml:"frames"`
	Progress  []float64 `yaml:"progress"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy backdrop",
			Width:  1280,
			Height: 720,
		},
		Loop: LoopConfig{
			FPS:   60,
			VSync: true,
		},
		Backdrop: BackdropConfig{
			TraceCount:  50,
			StreakCount: 250,
		},
		Page: PageConfig{
			Screens:   3,
			WheelStep: 100,
			LineStep:  40,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Headless: HeadlessConfig{
			OutputDir: "frames",
			Width:     1280,
			Height:    720,
			Frames:    60,
			Progress:  []float64{0, 0.25, 0.5},
		},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// A missing file yields the defaults.
//
// Parameters:
//   - path: the config file path, empty for defaults only
//
// Returns:
//   - *Config: the loaded configuration
//   - error: a read, parse, override or validation error
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.fps must be positive, got %v", c.Loop.FPS))
	}
	if c.Loop.Workers < 0 {
		errs = append(errs, fmt.Errorf("loop.workers must not be negative, got %d", c.Loop.Workers))
	}
	if c.Backdrop.TraceCount < 0 || c.Backdrop.StreakCount < 0 {
		errs = append(errs, fmt.Errorf("backdrop counts must not be negative"))
	}
	if c.Page.Screens < 1 {
		errs = append(errs, fmt.Errorf("page.screens must be at least 1, got %v", c.Page.Screens))
	}
	if c.Headless.Width <= 0 || c.Headless.Height <= 0 {
		errs = append(errs, fmt.Errorf("headless size must be positive, got %dx%d", c.Headless.Width, c.Headless.Height))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, fmt.Errorf("headless.frames must not be negative, got %d", c.Headless.Frames))
	}
	for _, p := range c.Headless.Progress {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("headless.progress values must be within [0, 1], got %v", p))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Backdrop.Seed = seed
	}
	return nil
}
