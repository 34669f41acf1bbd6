// Package metrics summarises a run of engine frames.
package metrics

import "github.com/san-kum/limbshift/internal/engine"

type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

// Defaults returns the metrics reported for every simulated reach.
func Defaults() []Metric {
	return []Metric{
		NewPeakOffset("peak_hand_offset", HandOffset),
		NewPeakOffset("peak_elbow_offset", ElbowOffset),
		NewFinalProgress("final_hand_progress", HandProgress),
		NewFinalProgress("final_elbow_progress", ElbowProgress),
		NewMonotonic(),
	}
}
