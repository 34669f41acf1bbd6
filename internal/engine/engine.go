package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/limbshift/internal/blend"
	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/solver"
	"github.com/san-kum/limbshift/internal/trial"
)

type Config struct {
	Dominant          trial.DominantHand
	Mode              solver.Mode
	Solver            solver.Options
	MinTargetDistance float64
}

func DefaultConfig() Config {
	return Config{
		Dominant:          trial.Right,
		Mode:              solver.TableTarget,
		Solver:            solver.DefaultOptions(),
		MinTargetDistance: blend.DefaultMinTargetDistance,
	}
}

type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Inputs are the live real-limb positions for one tick. Only the dominant
// side's hand is read.
type Inputs struct {
	LeftHand  geom.Vec3
	RightHand geom.Vec3
	Elbow     geom.Vec3
}

// RealHand returns the hand input for the dominant side.
func (in Inputs) RealHand(h trial.DominantHand) geom.Vec3 {
	if h == trial.Left {
		return in.LeftHand
	}
	return in.RightHand
}

// Frame is what the host writes back to its display representation.
type Frame struct {
	Time          float64
	Phase         blend.Phase
	RealHand      geom.Vec3
	RealElbow     geom.Vec3
	VirtualHand   geom.Vec3
	VirtualElbow  geom.Vec3
	HandAnchor    geom.Vec3
	ElbowAnchor   geom.Vec3
	HandProgress  float64
	ElbowProgress float64
}

type Engine struct {
	cfg    Config
	layout *layout.Layout
	solver *solver.Solver
	logger *slog.Logger

	selected   bool
	selection  trial.Selection
	trial      trial.Trial
	anchors    solver.Anchors
	hasAnchors bool
	elapsed    float64
}

// New validates cfg and the layout and returns an Idle engine.
func New(cfg Config, l *layout.Layout, opts ...Option) (*Engine, error) {
	if l == nil {
		return nil, ErrNoLayout
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("engine layout: %w", err)
	}
	if cfg.MinTargetDistance < 0 || math.IsNaN(cfg.MinTargetDistance) {
		return nil, fmt.Errorf("%w: min target distance %f", ErrInvalidConfig, cfg.MinTargetDistance)
	}
	if cfg.Dominant != trial.Right && cfg.Dominant != trial.Left {
		return nil, fmt.Errorf("%w: dominant hand %d", ErrInvalidConfig, int(cfg.Dominant))
	}

	s, err := solver.New(cfg.Mode, l, cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := &Engine{
		cfg:    cfg,
		layout: l,
		solver: s,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config         { return e.cfg }
func (e *Engine) Layout() *layout.Layout { return e.layout }

// SelectTrial starts a trial: it records the selection and parameters and
// solves the anchors from the pose. An elbow target without an offset in the
// active mode is not an error; the previous anchors stay in place.
func (e *Engine) SelectTrial(sel trial.Selection, tr trial.Trial, pose solver.Pose) error {
	if err := tr.Validate(); err != nil {
		return &SelectionError{Selection: sel, Trial: tr, Wrapped: err}
	}

	anchors, err := e.solver.Solve(e.anchors, solver.Input{
		Selection: sel,
		Trial:     tr,
		Dominant:  e.cfg.Dominant,
		Pose:      pose,
	})
	switch {
	case errors.Is(err, solver.ErrUnsupportedTarget):
		e.logger.Warn("target has no offset, keeping previous anchors",
			"mode", e.cfg.Mode, "elbow", sel.Elbow, "hand", sel.Hand)
	case err != nil:
		return &SelectionError{Selection: sel, Trial: tr, Wrapped: err}
	default:
		e.anchors = anchors
		e.hasAnchors = true
	}

	e.selected = true
	e.selection = sel
	e.trial = tr

	e.logger.Info("trial selected",
		"selection", sel.String(),
		"condition", tr.Condition,
		"shoulder_deg", tr.ShoulderAngleOffset,
		"elbow_deg", tr.ElbowAngleOffset,
		"phase", e.Phase())
	e.logger.Debug("anchors solved",
		"elbow", e.anchors.Elbow, "hand", e.anchors.Hand, "pinned", e.anchors.Pinned)
	return nil
}

// ClearSelection returns the engine to Idle. Anchors are kept until the next
// trial replaces them.
func (e *Engine) ClearSelection() {
	e.selected = false
	e.logger.Debug("selection cleared")
}

func (e *Engine) Phase() blend.Phase {
	switch {
	case !e.selected || !e.hasAnchors:
		return blend.Idle
	case e.trial.Condition == trial.Congruent:
		return blend.Disabled
	default:
		return blend.Tracking
	}
}

func (e *Engine) Selection() (trial.Selection, trial.Trial, bool) {
	return e.selection, e.trial, e.selected
}

// Anchors returns the anchors as last solved.
func (e *Engine) Anchors() solver.Anchors { return e.anchors }

// Tick produces the virtual positions for one frame. It never fails: any
// state that cannot blend passes the real positions through.
func (e *Engine) Tick(dt float64, in Inputs) Frame {
	if dt > 0 && !math.IsInf(dt, 1) {
		e.elapsed += dt
	}

	realHand := in.RealHand(e.cfg.Dominant)
	f := Frame{
		Time:         e.elapsed,
		Phase:        e.Phase(),
		RealHand:     realHand,
		RealElbow:    in.Elbow,
		VirtualHand:  realHand,
		VirtualElbow: in.Elbow,
		HandAnchor:   realHand,
		ElbowAnchor:  in.Elbow,
	}
	if f.Phase != blend.Tracking {
		return f
	}

	handTarget, err := e.layout.HandTarget(e.selection.Hand)
	if err != nil {
		f.Phase = blend.Idle
		return f
	}
	elbowTarget, err := e.layout.ElbowTarget(e.selection.Elbow)
	if err != nil {
		f.Phase = blend.Idle
		return f
	}

	f.HandAnchor = e.anchors.Hand
	f.ElbowAnchor = e.anchors.Elbow
	f.VirtualHand, f.HandProgress = blend.Blend(realHand, e.anchors.Hand, handTarget, e.layout.HandCenter, e.cfg.MinTargetDistance)
	f.VirtualElbow, f.ElbowProgress = blend.Blend(in.Elbow, e.anchors.Elbow, elbowTarget, e.layout.ElbowCenter, e.cfg.MinTargetDistance)
	return f
}

// Reset clears the trial, anchors and clock.
func (e *Engine) Reset() {
	e.selected = false
	e.selection = trial.Selection{}
	e.trial = trial.Trial{}
	e.anchors = solver.Anchors{}
	e.hasAnchors = false
	e.elapsed = 0
}
