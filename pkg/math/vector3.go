// pkg/math/vector3.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Vector3 is a minimal 3-D point/velocity representation used at the
// boundary between the kinematic bands core and its 3-D conflict
// detector collaborator. It deliberately carries no notion of a
// coordinate frame (ENU, NED, lat/long-relative, ...); that is a
// decision for the host application's Ownship/TrafficAircraft
// implementations.
type Vector3 struct {
	X, Y, Z float32
}

func AddVec3(a, b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func ScaleVec3(a Vector3, s float32) Vector3 {
	return Vector3{a.X * s, a.Y * s, a.Z * s}
}

// Project returns the position reached after dt seconds of travel at
// constant velocity v starting from p: the linear forward-projection
// that spec.md 6 requires of both Ownship and TrafficAircraft.
func Project(p, v Vector3, dt float32) Vector3 {
	return AddVec3(p, ScaleVec3(v, dt))
}
