// pkg/kinematic/oracle.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematic

import (
	"github.com/rugby110/icarous/pkg/bands"
	"github.com/rugby110/icarous/pkg/math"
)

// Maneuver produces the Ownship state that results from flying maneuver
// index n against the unmaneuvered own, given the scale that converts an
// index to a control-variable delta. A track-angle Maneuver turns by
// n*scale degrees before projecting forward at the same speed; a
// ground-speed Maneuver scales speed by (1 + n*scale) before projecting.
// This package ships TrackManeuver (the one cmd/banddump uses) and
// SpeedManeuver, but the oracle accepts any implementation so a host can
// drive vertical-speed or altitude bands the same way.
type Maneuver func(own bands.Ownship, n int, scale float32) bands.Ownship

// BruteForceOracle is a brute-force bands.IntegerBandOracle: it evaluates
// every maneuver index in a requested range by actually constructing the
// maneuvered trajectory via Maneuver and running it through a
// bands.Detector. It makes no claim to the efficiency of a production
// DAIDALUS-style closed-form band generator; it exists to give
// cmd/banddump something real to drive pkg/bands with (spec.md 6's
// IntegerBandOracle is explicitly a host-supplied abstraction).
type BruteForceOracle struct {
	Maneuver Maneuver
	Scale    float32
}

// fixedState is a bands.Ownship/bands.TrafficAircraft fixed at a given
// 3-D position and velocity, used to represent both a maneuvered ownship
// track and a linearly-projected traffic aircraft.
type fixedState struct {
	val, timeStep float32
	pos, vel      math.Vector3
}

func (f fixedState) OwnVal() float32                       { return f.val }
func (f fixedState) TimeStep() float32                      { return f.timeStep }
func (f fixedState) Position() math.Vector3                 { return f.pos }
func (f fixedState) Velocity() math.Vector3                 { return f.vel }
func (f fixedState) ProjectPosition(dt float32) math.Vector3 { return math.Project(f.pos, f.vel, dt) }

func (o *BruteForceOracle) redAt(detector bands.Detector, n int, b, t float32, own bands.Ownship,
	traffic []bands.TrafficAircraft) bool {

	maneuvered := o.Maneuver(own, n, o.Scale)
	sOwn, vOwn := maneuvered.Position(), maneuvered.Velocity()
	for _, ac := range traffic {
		sAc, vAc := ac.Position(), ac.Velocity()
		if detector.ConflictDetection(sOwn, vOwn, sAc, vAc, b, t).Conflict {
			return true
		}
	}
	return false
}

// KinematicBandsCombine returns the conflict-free maneuver-index ranges
// within [maxdown,maxup]: an index is conflict-free when it is clear over
// both [b,t] and [b2,t2]. Both windows are checked against detector, or
// against recoveryDetector instead when it is non-nil (spec.md 4.5, 4.6).
func (o *BruteForceOracle) KinematicBandsCombine(detector, recoveryDetector bands.Detector, dt float32,
	b, t, b2, t2 float32, maxdown, maxup int, own bands.Ownship, traffic []bands.TrafficAircraft,
	criteriaAc bands.TrafficAircraft, epsH, epsV float32) []bands.IntRange {

	det := detector
	if recoveryDetector != nil {
		det = recoveryDetector
	}

	var out []bands.IntRange
	inGreen := false
	start := 0
	for n := maxdown; n <= maxup; n++ {
		red := o.redAt(det, n, b, t, own, traffic) || o.redAt(det, n, b2, t2, own, traffic)
		switch {
		case !red && !inGreen:
			inGreen, start = true, n
		case red && inGreen:
			out = append(out, bands.IntRange{Lb: start, Ub: n - 1})
			inGreen = false
		}
	}
	if inGreen {
		out = append(out, bands.IntRange{Lb: start, Ub: maxup})
	}
	return out
}

// AnyIntRed reports whether any maneuver index in [maxdown,maxup]
// produces a conflict against traffic within [b,t].
func (o *BruteForceOracle) AnyIntRed(detector bands.Detector, dt, b, t float32, maxdown, maxup int,
	own bands.Ownship, traffic []bands.TrafficAircraft, epsH, epsV float32) bool {
	for n := maxdown; n <= maxup; n++ {
		if o.redAt(detector, n, b, t, own, traffic) {
			return true
		}
	}
	return false
}

// AllIntRed reports whether every maneuver index in [maxdown,maxup]
// produces a conflict against traffic within [b,t].
func (o *BruteForceOracle) AllIntRed(detector bands.Detector, dt, b, t float32, maxdown, maxup int,
	own bands.Ownship, traffic []bands.TrafficAircraft, epsH, epsV float32) bool {
	for n := maxdown; n <= maxup; n++ {
		if !o.redAt(detector, n, b, t, own, traffic) {
			return false
		}
	}
	return true
}

// FirstGreen scans maneuver indices 0..maxn in the given direction and
// returns the first conflict-free index, or -1 if every index up to maxn
// is red.
func (o *BruteForceOracle) FirstGreen(dir bands.Direction, detector bands.Detector, dt, b, t float32, maxn int,
	own bands.Ownship, traffic []bands.TrafficAircraft, epsH, epsV float32) int {
	for k := 0; k <= maxn; k++ {
		n := k
		if dir == bands.Down {
			n = -k
		}
		if !o.redAt(detector, n, b, t, own, traffic) {
			return k
		}
	}
	return -1
}

var _ bands.IntegerBandOracle = (*BruteForceOracle)(nil)

// TrackManeuver turns ownship's heading by n*scaleDeg degrees (about the
// Z axis, holding ground speed fixed) and projects the result forward
// from its current position. scale is the control variable's step in
// degrees, matching the DomainParams the oracle is driven with.
func TrackManeuver(own bands.Ownship, n int, scaleDeg float32) bands.Ownship {
	pos, vel := own.Position(), own.Velocity()
	speed := math.Sqrt(vel.X*vel.X + vel.Y*vel.Y)
	heading := math.Atan2(vel.Y, vel.X) + math.Radians(float32(n)*scaleDeg)
	turned := math.Vector3{X: speed * math.Cos(heading), Y: speed * math.Sin(heading), Z: vel.Z}
	return fixedState{
		val:      math.Degrees(heading),
		timeStep: own.TimeStep(),
		pos:      pos,
		vel:      turned,
	}
}

// SpeedManeuver scales ownship's ground speed by (1 + n*scaleFrac),
// holding heading fixed.
func SpeedManeuver(own bands.Ownship, n int, scaleFrac float32) bands.Ownship {
	pos, vel := own.Position(), own.Velocity()
	factor := math.Clamp(1+float32(n)*scaleFrac, 0, math.Infinity)
	scaled := math.Vector3{X: vel.X * factor, Y: vel.Y * factor, Z: vel.Z}
	speed := math.Sqrt(scaled.X*scaled.X + scaled.Y*scaled.Y)
	return fixedState{
		val:      speed,
		timeStep: own.TimeStep(),
		pos:      pos,
		vel:      scaled,
	}
}

// NewTrafficAircraft wraps a fixed 3-D state as a bands.TrafficAircraft.
func NewTrafficAircraft(pos, vel math.Vector3) bands.TrafficAircraft {
	return fixedState{pos: pos, vel: vel}
}

// NewOwnship wraps a control value and 3-D state as a bands.Ownship.
func NewOwnship(val, timeStep float32, pos, vel math.Vector3) bands.Ownship {
	return fixedState{val: val, timeStep: timeStep, pos: pos, vel: vel}
}
