package trial

import "fmt"

// TargetHand names a hand calibration target. The first letter is the
// elbow-target row, the second the hand column.
type TargetHand int

const (
	HandMM TargetHand = iota
	HandMP
	HandPM
	HandPP
)

// TargetElbow names an elbow calibration target. ElbowR is the right-only
// position that has no table-target offset.
type TargetElbow int

const (
	ElbowMMMP TargetElbow = iota
	ElbowPMPP
	ElbowR
)

var handNames = []string{"MM", "MP", "PM", "PP"}

var elbowNames = []string{"MM_MP", "PM_PP", "R"}

func TargetHands() []TargetHand { return []TargetHand{HandMM, HandMP, HandPM, HandPP} }

func TargetElbows() []TargetElbow { return []TargetElbow{ElbowMMMP, ElbowPMPP, ElbowR} }

func (t TargetHand) String() string {
	if t < 0 || int(t) >= len(handNames) {
		return fmt.Sprintf("hand(%d)", int(t))
	}
	return handNames[t]
}

func (t TargetElbow) String() string {
	if t < 0 || int(t) >= len(elbowNames) {
		return fmt.Sprintf("elbow(%d)", int(t))
	}
	return elbowNames[t]
}

func ParseTargetHand(s string) (TargetHand, error) {
	for i, name := range handNames {
		if name == s {
			return TargetHand(i), nil
		}
	}
	return 0, fmt.Errorf("%w: hand target %q", ErrUnknownValue, s)
}

func ParseTargetElbow(s string) (TargetElbow, error) {
	for i, name := range elbowNames {
		if name == s {
			return TargetElbow(i), nil
		}
	}
	return 0, fmt.Errorf("%w: elbow target %q", ErrUnknownValue, s)
}

func (t TargetHand) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TargetHand) UnmarshalText(b []byte) error {
	v, err := ParseTargetHand(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t TargetElbow) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TargetElbow) UnmarshalText(b []byte) error {
	v, err := ParseTargetElbow(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Selection is the pair of targets chosen for a trial.
type Selection struct {
	Hand  TargetHand  `yaml:"hand"`
	Elbow TargetElbow `yaml:"elbow"`
}

func (s Selection) String() string {
	return fmt.Sprintf("hand=%s elbow=%s", s.Hand, s.Elbow)
}
