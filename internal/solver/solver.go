package solver

import (
	"errors"
	"fmt"

	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/trial"
)

// ErrUnsupportedTarget is returned with the previous anchors unchanged when the
// elbow target has no offset in the active mode.
var ErrUnsupportedTarget = errors.New("limbshift: target has no offset in this mode")

type Mode int

const (
	TableTarget Mode = iota
	BoneRelative
)

func (m Mode) String() string {
	if m == BoneRelative {
		return "bone"
	}
	return "table"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "table":
		return TableTarget, nil
	case "bone":
		return BoneRelative, nil
	}
	return TableTarget, fmt.Errorf("%w: mode %q", trial.ErrUnknownValue, s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Joint is a tracked skeletal joint. Forward is the joint's facing direction.
type Joint struct {
	Position geom.Vec3
	Forward  geom.Vec3
}

// Pose is the live limb at the moment a trial starts.
type Pose struct {
	Shoulder Joint
	Elbow    Joint
	Hand     Joint
}

// Anchors are meaningful only for the trial that produced them. Pinned anchors
// follow the real limb.
type Anchors struct {
	Elbow  geom.Vec3
	Hand   geom.Vec3
	Pinned bool
}

type Input struct {
	Selection trial.Selection
	Trial     trial.Trial
	Dominant  trial.DominantHand
	Pose      Pose
}

type Options struct {
	// Up is the rotation axis in table-target mode.
	Up geom.Vec3
	// HandLengthScale stretches the rotated forearm in bone-relative mode.
	HandLengthScale float64
}

func DefaultOptions() Options {
	return Options{
		Up:              geom.Up,
		HandLengthScale: 1.2,
	}
}

type Solver struct {
	mode   Mode
	layout *layout.Layout
	axis   AxisStrategy
	scale  float64
}

func New(mode Mode, l *layout.Layout, opts Options) (*Solver, error) {
	if l == nil {
		return nil, errors.New("limbshift: solver needs a layout")
	}
	if opts.HandLengthScale <= 0 {
		return nil, fmt.Errorf("limbshift: hand length scale must be positive, got %f", opts.HandLengthScale)
	}

	s := &Solver{mode: mode, layout: l, scale: 1}
	switch mode {
	case TableTarget:
		if _, ok := geom.SafeUnit(opts.Up); !ok {
			return nil, fmt.Errorf("limbshift: up axis %v has no direction", opts.Up)
		}
		s.axis = FixedAxis(opts.Up)
	case BoneRelative:
		s.axis = CrossAxis{}
		s.scale = opts.HandLengthScale
	default:
		return nil, fmt.Errorf("%w: mode %d", trial.ErrUnknownValue, int(mode))
	}
	return s, nil
}

func (s *Solver) Mode() Mode { return s.mode }

// Solve computes the anchors for in. On ErrUnsupportedTarget prev is returned.
func (s *Solver) Solve(prev Anchors, in Input) (Anchors, error) {
	if s.mode == TableTarget && in.Selection.Elbow == trial.ElbowR {
		return prev, fmt.Errorf("%w: elbow %s", ErrUnsupportedTarget, in.Selection.Elbow)
	}

	if in.Trial.Condition == trial.Congruent {
		return Anchors{
			Elbow:  in.Pose.Elbow.Position,
			Hand:   in.Pose.Hand.Position,
			Pinned: true,
		}, nil
	}

	shoulder, elbow, hand, err := s.segment(in)
	if err != nil {
		return prev, err
	}

	dominant := in.Dominant.Sign()

	upperArm := elbow.Position.Sub(shoulder.Position)
	elbowDeg := trial.ElbowSign(in.Trial.Condition, in.Selection.Elbow) * dominant * in.Trial.ShoulderAngleOffset
	elbowAnchor := shoulder.Position.Add(geom.Rotate(upperArm, s.axis.Axis(upperArm, shoulder.Forward), elbowDeg))

	forearm := hand.Position.Sub(elbow.Position)
	handDeg := trial.HandSign(in.Trial.Condition, in.Selection.Hand) * dominant * in.Trial.ElbowAngleOffset
	rotated := geom.Rotate(forearm, s.axis.Axis(forearm, hand.Forward), handDeg)
	handAnchor := elbow.Position.Add(rotated.Mul(s.scale))

	return Anchors{Elbow: elbowAnchor, Hand: handAnchor}, nil
}

// segment picks the three points the directions are measured between.
func (s *Solver) segment(in Input) (shoulder, elbow, hand Joint, err error) {
	if s.mode == BoneRelative {
		return in.Pose.Shoulder, in.Pose.Elbow, in.Pose.Hand, nil
	}

	e, err := s.layout.ElbowTarget(in.Selection.Elbow)
	if err != nil {
		return
	}
	h, err := s.layout.HandTarget(in.Selection.Hand)
	if err != nil {
		return
	}
	return Joint{Position: s.layout.Shoulder}, Joint{Position: e}, Joint{Position: h}, nil
}
