// Package solver computes the offset anchors for a trial: the points the
// elbow and hand would occupy if the limb were fully redirected.
//
// One [Solver] serves both solving modes:
//
//   - [TableTarget]: directions run between the fixed calibration targets
//     and are rotated about a fixed up axis.
//   - [BoneRelative]: directions run between the live shoulder, elbow and
//     hand joints and are rotated about unit(segment x joint forward). The
//     forearm anchor is stretched by HandLengthScale.
//
// A Congruent trial pins the anchors to the real limb without any rotation.
package solver
