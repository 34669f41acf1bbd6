// Package layout describes the fixed calibration targets on the table: the
// hand and elbow targets a participant reaches for, the shoulder reference
// and the two center points reaches start from.
package layout

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/limbshift/internal/geom"
	"github.com/san-kum/limbshift/internal/trial"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingTarget = errors.New("limbshift: target missing from layout")
	ErrInvalidPoint  = errors.New("limbshift: layout point is not finite")
)

// Layout positions are in the host's world frame.
type Layout struct {
	Shoulder    geom.Vec3                       `yaml:"shoulder"`
	HandCenter  geom.Vec3                       `yaml:"hand_center"`
	ElbowCenter geom.Vec3                       `yaml:"elbow_center"`
	Hands       map[trial.TargetHand]geom.Vec3  `yaml:"hands"`
	Elbows      map[trial.TargetElbow]geom.Vec3 `yaml:"elbows"`
}

// Default is the right-handed table layout used by the lab rig, in metres.
// The participant faces +Z with the table top at y=0.75.
func Default() *Layout {
	return &Layout{
		Shoulder:    geom.Vec3{0.20, 0.75, -0.05},
		HandCenter:  geom.Vec3{0.20, 0.75, 0.35},
		ElbowCenter: geom.Vec3{0.25, 0.75, 0.15},
		Hands: map[trial.TargetHand]geom.Vec3{
			trial.HandMM: {0.30, 0.75, 0.60},
			trial.HandMP: {0.10, 0.75, 0.58},
			trial.HandPM: {0.38, 0.75, 0.48},
			trial.HandPP: {0.05, 0.75, 0.45},
		},
		Elbows: map[trial.TargetElbow]geom.Vec3{
			trial.ElbowMMMP: {0.30, 0.75, 0.28},
			trial.ElbowPMPP: {0.18, 0.75, 0.24},
			trial.ElbowR:    {0.42, 0.75, 0.20},
		},
	}
}

func (l *Layout) HandTarget(t trial.TargetHand) (geom.Vec3, error) {
	p, ok := l.Hands[t]
	if !ok {
		return geom.Zero, fmt.Errorf("%w: hand %s", ErrMissingTarget, t)
	}
	return p, nil
}

func (l *Layout) ElbowTarget(t trial.TargetElbow) (geom.Vec3, error) {
	p, ok := l.Elbows[t]
	if !ok {
		return geom.Zero, fmt.Errorf("%w: elbow %s", ErrMissingTarget, t)
	}
	return p, nil
}

// Validate checks that every named target exists and every point is finite.
func (l *Layout) Validate() error {
	for name, p := range map[string]geom.Vec3{
		"shoulder":     l.Shoulder,
		"hand_center":  l.HandCenter,
		"elbow_center": l.ElbowCenter,
	} {
		if !geom.IsFinite(p) {
			return fmt.Errorf("%w: %s", ErrInvalidPoint, name)
		}
	}
	for _, t := range trial.TargetHands() {
		p, err := l.HandTarget(t)
		if err != nil {
			return err
		}
		if !geom.IsFinite(p) {
			return fmt.Errorf("%w: hand %s", ErrInvalidPoint, t)
		}
	}
	for _, t := range trial.TargetElbows() {
		p, err := l.ElbowTarget(t)
		if err != nil {
			return err
		}
		if !geom.IsFinite(p) {
			return fmt.Errorf("%w: elbow %s", ErrInvalidPoint, t)
		}
	}
	return nil
}

// Mirror reflects the layout across the x=0 plane for left-handed participants.
func (l *Layout) Mirror() *Layout {
	flip := func(v geom.Vec3) geom.Vec3 { return geom.Vec3{-v[0], v[1], v[2]} }
	m := &Layout{
		Shoulder:    flip(l.Shoulder),
		HandCenter:  flip(l.HandCenter),
		ElbowCenter: flip(l.ElbowCenter),
		Hands:       make(map[trial.TargetHand]geom.Vec3, len(l.Hands)),
		Elbows:      make(map[trial.TargetElbow]geom.Vec3, len(l.Elbows)),
	}
	for k, v := range l.Hands {
		m.Hands[k] = flip(v)
	}
	for k, v := range l.Elbows {
		m.Elbows[k] = flip(v)
	}
	return m
}

func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := &Layout{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func Save(path string, l *Layout) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
