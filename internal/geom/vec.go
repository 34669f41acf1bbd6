package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec3 = mgl64.Vec3

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

var (
	Zero = Vec3{0, 0, 0}
	Up   = Vec3{0, 1, 0}
)

func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Lerp interpolates component-wise: t=0 gives a, t=1 gives b. t is not clamped.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, 0, 1)
}

// SafeUnit normalizes v. ok is false when v is shorter than Epsilon or not finite.
func SafeUnit(v Vec3) (u Vec3, ok bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero, false
	}
	return v.Mul(1 / l), true
}

// CrossAxis returns unit(a x b), or ok=false when a and b are parallel or zero.
func CrossAxis(a, b Vec3) (Vec3, bool) {
	return SafeUnit(a.Cross(b))
}

// Rotate turns v about axis by degrees. A degenerate axis leaves v unchanged.
func Rotate(v Vec3, axis Vec3, degrees float64) Vec3 {
	unit, ok := SafeUnit(axis)
	if !ok || degrees == 0 {
		return v
	}
	q := mgl64.QuatRotate(mgl64.DegToRad(degrees), unit)
	return q.Rotate(v)
}

func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
