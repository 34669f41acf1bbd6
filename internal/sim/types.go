package sim

import (
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/trial"
)

type Observer interface {
	OnFrame(f engine.Frame)
}

// Reach is one simulated trial: the targets, the offsets and the motion.
type Reach struct {
	Selection trial.Selection
	Trial     trial.Trial
}

type Config struct {
	Dt       float64
	Duration float64
	// Overshoot extends the path past the target as a fraction of its length.
	Overshoot float64
	// Forward is the facing direction reported for every joint.
	Forward geom.Vec3
}

func DefaultConfig() Config {
	return Config{
		Dt:       1.0 / 90,
		Duration: 1.5,
		Forward:  geom.Vec3{0, 0, 1},
	}
}

type Result struct {
	Frames     []engine.Frame
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}
