package config

import (
	"fmt"
	"os"

	"github.com/san-kum/limbshift/internal/blend"
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/solver"
	"github.com/san-kum/limbshift/internal/trial"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHandLengthScale = 1.2
	DefaultDt              = 1.0 / 90
	DefaultDuration        = 1.5
	DefaultLogLevel        = "info"
)

type Config struct {
	DominantHand      trial.DominantHand `yaml:"dominant_hand"`
	Mode              solver.Mode        `yaml:"mode"`
	UpAxis            geom.Vec3          `yaml:"up_axis"`
	HandLengthScale   float64            `yaml:"hand_length_scale"`
	MinTargetDistance float64            `yaml:"min_target_distance"`
	MirrorLayout      bool               `yaml:"mirror_layout"`
	LogLevel          string             `yaml:"log_level"`
	Layout            *layout.Layout     `yaml:"layout,omitempty"`
	Reach             ReachConfig        `yaml:"reach"`
}

// ReachConfig drives the simulated reaches used by the CLI.
type ReachConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	// Overshoot extends the reach past the target, as a fraction of the path.
	Overshoot float64 `yaml:"overshoot"`
}

func DefaultConfig() *Config {
	return &Config{
		DominantHand:      trial.Right,
		Mode:              solver.TableTarget,
		UpAxis:            geom.Up,
		HandLengthScale:   DefaultHandLengthScale,
		MinTargetDistance: blend.DefaultMinTargetDistance,
		LogLevel:          DefaultLogLevel,
		Reach: ReachConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
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
		return nil, err
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
	if c.HandLengthScale <= 0 {
		return fmt.Errorf("hand_length_scale must be positive, got %f", c.HandLengthScale)
	}
	if c.MinTargetDistance < 0 {
		return fmt.Errorf("min_target_distance must not be negative, got %f", c.MinTargetDistance)
	}
	if _, ok := geom.SafeUnit(c.UpAxis); !ok {
		return fmt.Errorf("up_axis %v has no direction", c.UpAxis)
	}
	if c.Reach.Dt <= 0 {
		return fmt.Errorf("reach.dt must be positive, got %f", c.Reach.Dt)
	}
	if c.Reach.Duration <= 0 {
		return fmt.Errorf("reach.duration must be positive, got %f", c.Reach.Duration)
	}
	if c.Reach.Overshoot < 0 {
		return fmt.Errorf("reach.overshoot must not be negative, got %f", c.Reach.Overshoot)
	}
	if c.Layout != nil {
		if err := c.Layout.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLayout returns the configured layout, or the default one, mirrored for a
// left-handed participant when MirrorLayout is set.
func (c *Config) GetLayout() *layout.Layout {
	l := c.Layout
	if l == nil {
		l = layout.Default()
	}
	if c.MirrorLayout && c.DominantHand == trial.Left {
		l = l.Mirror()
	}
	return l
}

func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Dominant: c.DominantHand,
		Mode:     c.Mode,
		Solver: solver.Options{
			Up:              c.UpAxis,
			HandLengthScale: c.HandLengthScale,
		},
		MinTargetDistance: c.MinTargetDistance,
	}
}
