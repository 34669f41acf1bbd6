package solver

import "github.com/san-kum/limbshift/internal/geom"

// AxisStrategy picks the rotation axis for a limb segment. A zero axis means
// no rotation.
type AxisStrategy interface {
	Axis(segment, forward geom.Vec3) geom.Vec3
}

// FixedAxis ignores the segment and always rotates about itself.
type FixedAxis geom.Vec3

func (a FixedAxis) Axis(_, _ geom.Vec3) geom.Vec3 {
	u, _ := geom.SafeUnit(geom.Vec3(a))
	return u
}

// CrossAxis rotates about unit(segment x forward): the normal of the plane
// holding the segment and the joint's facing direction.
type CrossAxis struct{}

func (CrossAxis) Axis(segment, forward geom.Vec3) geom.Vec3 {
	u, ok := geom.CrossAxis(segment, forward)
	if !ok {
		return geom.Zero
	}
	return u
}
