package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/trail"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFPS       = 60
	DefaultViewWidth = 400
	DefaultFrames    = 200
	DefaultGIFDelay  = 2
	DefaultTheme     = "phosphor"
)

// Control ranges for interactive adjustment.
const (
	MinAcceleration = 100.0
	MaxAcceleration = 5000.0
	MaxDeflection   = 500.0
)

type Config struct {
	Simulation crt.Configuration `yaml:"simulation"`
	Trail      TrailConfig       `yaml:"trail"`
	Window     WindowConfig      `yaml:"window"`
	Render     RenderConfig      `yaml:"render"`
}

type TrailConfig struct {
	Capacity int    `yaml:"capacity"`
	MaxAge   int    `yaml:"max_age"`
	Expiry   string `yaml:"expiry"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Theme  string `yaml:"theme"`
}

type RenderConfig struct {
	ViewWidth int `yaml:"view_width"`
	Frames    int `yaml:"frames"`
	GIFDelay  int `yaml:"gif_delay"` // hundredths of a second
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: crt.DefaultConfiguration(),
		Trail: TrailConfig{
			Capacity: trail.DefaultCapacity,
			MaxAge:   trail.DefaultMaxAge,
			Expiry:   trail.ExpireEager.String(),
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Theme:  DefaultTheme,
		},
		Render: RenderConfig{
			ViewWidth: DefaultViewWidth,
			Frames:    DefaultFrames,
			GIFDelay:  DefaultGIFDelay,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if _, err := trail.ParsePolicy(c.Trail.Expiry); err != nil {
		return fmt.Errorf("%w: %v", crt.ErrInvalidConfig, err)
	}
	switch {
	case c.Trail.Capacity < 0 || c.Trail.MaxAge < 0:
		return fmt.Errorf("%w: trail sizes must not be negative", crt.ErrInvalidConfig)
	case c.Window.FPS < 0:
		return fmt.Errorf("%w: fps must not be negative", crt.ErrInvalidConfig)
	case c.Render.ViewWidth < 0 || c.Render.Frames < 0 || c.Render.GIFDelay < 0:
		return fmt.Errorf("%w: render settings must not be negative", crt.ErrInvalidConfig)
	}
	return nil
}

// NewTrail builds the trail buffer described by the trail section.
func (c *Config) NewTrail() (*trail.Buffer, error) {
	policy, err := trail.ParsePolicy(c.Trail.Expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crt.ErrInvalidConfig, err)
	}
	return trail.New(c.Trail.Capacity, c.Trail.MaxAge, policy), nil
}

// Clamp keeps interactively adjusted voltages inside the control ranges.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
