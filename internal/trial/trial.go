// Package trial holds the per-trial experimental parameters and the fixed
// lookup tables that turn a condition and a target into a rotation sign.
package trial

import (
	"fmt"
	"math"
)

type Condition int

const (
	Congruent Condition = iota
	Shortened
	Lengthened
)

var conditionNames = map[Condition]string{
	Congruent:  "congruent",
	Shortened:  "shortened",
	Lengthened: "lengthened",
}

func (c Condition) String() string {
	if s, ok := conditionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("condition(%d)", int(c))
}

func ParseCondition(s string) (Condition, error) {
	for c, name := range conditionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: condition %q", ErrUnknownValue, s)
}

func (c Condition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Condition) UnmarshalText(b []byte) error {
	v, err := ParseCondition(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// DominantHand selects the real/virtual limb pair and the sign of every
// angular offset.
type DominantHand int

const (
	Right DominantHand = iota
	Left
)

func (h DominantHand) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Sign is +1 for the right hand and -1 for the left.
func (h DominantHand) Sign() float64 {
	if h == Left {
		return -1
	}
	return 1
}

func ParseDominantHand(s string) (DominantHand, error) {
	switch s {
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	}
	return Right, fmt.Errorf("%w: dominant hand %q", ErrUnknownValue, s)
}

func (h DominantHand) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *DominantHand) UnmarshalText(b []byte) error {
	v, err := ParseDominantHand(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Trial is immutable for the duration of one trial. Angles are in degrees.
type Trial struct {
	Condition           Condition `yaml:"condition"`
	ShoulderAngleOffset float64   `yaml:"shoulder_angle_offset"`
	ElbowAngleOffset    float64   `yaml:"elbow_angle_offset"`
}

func (t Trial) Validate() error {
	if _, ok := conditionNames[t.Condition]; !ok {
		return fmt.Errorf("%w: condition %d", ErrUnknownValue, int(t.Condition))
	}
	for name, v := range map[string]float64{
		"shoulder_angle_offset": t.ShoulderAngleOffset,
		"elbow_angle_offset":    t.ElbowAngleOffset,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidAngle, name, v)
		}
	}
	return nil
}

func (t Trial) String() string {
	return fmt.Sprintf("%s shoulder=%.1f° elbow=%.1f°", t.Condition, t.ShoulderAngleOffset, t.ElbowAngleOffset)
}
