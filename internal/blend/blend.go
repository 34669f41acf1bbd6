// Package blend moves a displayed limb point from the real position toward its
// anchor in proportion to how far the real limb has travelled from the
// center toward the target.
package blend

import (
	"github.com/san-kum/limbshift/internal/geom"
)

// DefaultMinTargetDistance guards the progress denominator.
const DefaultMinTargetDistance = 1e-6

// Phase is the per limb pair blending state.
type Phase int

const (
	// Idle has no target or trial selected: pass-through.
	Idle Phase = iota
	// Tracking blends toward the anchors.
	Tracking
	// Disabled is a congruent trial: pass-through with anchors pinned to the real limb.
	Disabled
)

func (p Phase) String() string {
	switch p {
	case Tracking:
		return "tracking"
	case Disabled:
		return "disabled"
	default:
		return "idle"
	}
}

// Progress is clamp01(|real-center| / |target-center|). It is 0 when the target
// sits within minDist of the center.
func Progress(real, target, center geom.Vec3, minDist float64) float64 {
	span := geom.Distance(target, center)
	if !(span >= minDist) || span == 0 {
		return 0
	}
	return geom.Clamp01(geom.Distance(real, center) / span)
}

// Blend returns the displayed position and the progress used to produce it.
func Blend(real, anchor, target, center geom.Vec3, minDist float64) (geom.Vec3, float64) {
	t := Progress(real, target, center, minDist)
	v := geom.Lerp(real, anchor, t)
	if !geom.IsFinite(v) {
		return real, 0
	}
	return v, t
}
