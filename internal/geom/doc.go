// Package geom provides the small set of 3D operations the offset engine needs
// on top of [mgl64.Vec3]:
//
//   - [Distance] and [Lerp] for per-frame blending
//   - [Clamp01] for the progress parameter
//   - [Rotate] for axis-angle rotation expressed in degrees
//   - [SafeUnit] and [CrossAxis] for axes that may degenerate
//
// # Rotation convention
//
// Rotations are right-handed: a positive angle turns counter-clockwise when
// looking down the axis toward the origin. Rotating (1,0,0) about +Y by +90°
// gives (0,0,-1).
package geom
