// Package sim is a host loop for the offset engine: it moves a synthetic limb
// from the centers to the selected targets and ticks the engine at a fixed
// rate, the way the VR runtime does every frame.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/metrics"
	"github.com/san-kum/limbshift/internal/solver"
	"github.com/san-kum/limbshift/internal/trial"
)

type Simulator struct {
	eng       *engine.Engine
	metrics   []metrics.Metric
	observers []Observer
}

func New(eng *engine.Engine) *Simulator {
	return &Simulator{
		eng:       eng,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

// Run selects the reach's trial on the engine and plays the reach through it.
func (s *Simulator) Run(ctx context.Context, r Reach, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	path, err := PlanPath(s.eng.Layout(), r.Selection, cfg.Overshoot)
	if err != nil {
		return nil, err
	}
	if err := s.eng.SelectTrial(r.Selection, r.Trial, path.Pose(0, cfg.Forward)); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]engine.Frame, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		dt := cfg.Dt
		if i == 0 {
			dt = 0
		}
		tau := float64(i) / float64(steps)
		f := s.eng.Tick(dt, path.Inputs(MinimumJerk(tau), s.eng.Config().Dominant))

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}

		result.Frames = append(result.Frames, f)
		result.Times = append(result.Times, float64(i)*cfg.Dt)
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback plays the reach and stops early when callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, r Reach, cfg Config, callback func(engine.Frame) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	path, err := PlanPath(s.eng.Layout(), r.Selection, cfg.Overshoot)
	if err != nil {
		return err
	}
	if err := s.eng.SelectTrial(r.Selection, r.Trial, path.Pose(0, cfg.Forward)); err != nil {
		return err
	}

	t := 0.0
	for t <= cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := s.eng.Tick(cfg.Dt, path.Inputs(MinimumJerk(t/cfg.Duration), s.eng.Config().Dominant))
		if !callback(f) {
			return nil
		}
		t += cfg.Dt
	}

	return nil
}

// PlanPath lays a straight reach from the layout centers to the selected
// targets, extended by overshoot.
func PlanPath(l *layout.Layout, sel trial.Selection, overshoot float64) (Path, error) {
	hand, err := l.HandTarget(sel.Hand)
	if err != nil {
		return Path{}, err
	}
	elbow, err := l.ElbowTarget(sel.Elbow)
	if err != nil {
		return Path{}, err
	}

	reach := 1 + overshoot
	return Path{
		Shoulder:  l.Shoulder,
		HandFrom:  l.HandCenter,
		HandTo:    geom.Lerp(l.HandCenter, hand, reach),
		ElbowFrom: l.ElbowCenter,
		ElbowTo:   geom.Lerp(l.ElbowCenter, elbow, reach),
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Overshoot < 0 {
		return fmt.Errorf("overshoot must not be negative, got %f", cfg.Overshoot)
	}
	return nil
}

// Path is a straight-line reach for the hand and the elbow.
type Path struct {
	Shoulder  geom.Vec3
	HandFrom  geom.Vec3
	HandTo    geom.Vec3
	ElbowFrom geom.Vec3
	ElbowTo   geom.Vec3
}

// Inputs places the dominant hand and the elbow at fraction s of the path. The
// other hand rests at the start.
func (p Path) Inputs(s float64, dominant trial.DominantHand) engine.Inputs {
	hand := geom.Lerp(p.HandFrom, p.HandTo, s)
	in := engine.Inputs{
		LeftHand:  p.HandFrom,
		RightHand: p.HandFrom,
		Elbow:     geom.Lerp(p.ElbowFrom, p.ElbowTo, s),
	}
	if dominant == trial.Left {
		in.LeftHand = hand
	} else {
		in.RightHand = hand
	}
	return in
}

func (p Path) Pose(s float64, forward geom.Vec3) solver.Pose {
	return solver.Pose{
		Shoulder: solver.Joint{Position: p.Shoulder, Forward: forward},
		Elbow:    solver.Joint{Position: geom.Lerp(p.ElbowFrom, p.ElbowTo, s), Forward: forward},
		Hand:     solver.Joint{Position: geom.Lerp(p.HandFrom, p.HandTo, s), Forward: forward},
	}
}

// MinimumJerk maps normalized time to normalized distance along a reach.
func MinimumJerk(tau float64) float64 {
	tau = geom.Clamp01(tau)
	t3 := tau * tau * tau
	return t3 * (10 - 15*tau + 6*tau*tau)
}
