// pkg/bands/resolution.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "github.com/rugby110/icarous/pkg/math"

// ComputeResolution queries the integer-band oracle's first_green in the
// given direction and converts the result to a control-variable value
// (spec.md 4.8).
//
// Open question (spec.md 9): the original docstring for this operation
// mentions 1 <= alert_level <= alertor.size(), but the implementation
// below, like the system it was distilled from, only ever queries the
// conflict alert level. That behavior is preserved as-is; the stale
// docstring's intent is not guessed at here.
func (b *Bands) ComputeResolution(dir Direction) float32 {
	b.ensureFresh()
	if b.invalidReason != "" {
		return math.NaN
	}

	ownVal := b.own.OwnVal()
	el := b.domain.CheckInput(ownVal)
	if el.HaveErrors() {
		return math.NaN
	}

	maxdown, maxup := b.domain.Maxdown(ownVal), b.domain.Maxup(ownVal)
	maxn := maxup
	if dir == Down {
		maxn = -maxdown
	}

	level := b.alertor.ConflictAlertLevel()
	al := b.alertor.Level(level)
	conflictAcs := b.params.ConflictAircraft(level)

	k := b.oracle.FirstGreen(dir, al.Detector, b.own.TimeStep(), 0, al.LateAlertingTime, maxn,
		b.own, conflictAcs, b.params.EpsilonH, b.params.EpsilonV)

	switch {
	case k == 0:
		return math.NaN
	case k < 0:
		return dir.sign() * math.Infinity
	default:
		v := ownVal + dir.sign()*float32(k)*b.domain.Step()
		if b.domain.Mod() > 0 {
			v = math.Modulo(v, b.domain.Mod())
		}
		return v
	}
}

// LastTimeToManeuver bisects, with 0.5s precision, the latest time
// ownship can begin a maneuver against ac's current conflict before no
// conflict-free maneuver remains (spec.md 4.8).
func (b *Bands) LastTimeToManeuver(ac TrafficAircraft) float32 {
	b.ensureFresh()
	if b.invalidReason != "" {
		return math.NaN
	}

	level := b.alertor.ConflictAlertLevel()
	al := b.alertor.Level(level)

	sOwn, vOwn := b.own.Position(), b.own.Velocity()
	sAc, vAc := ac.Position(), ac.Velocity()
	cd := al.Detector.ConflictDetection(sOwn, vOwn, sAc, vAc, 0, al.LateAlertingTime)
	if !cd.Conflict {
		return math.NaN
	}
	tIn := cd.TimeIn
	if math.AlmostEquals(tIn, 0, math.DefaultTolerance) {
		return -math.Infinity
	}

	ownVal := b.own.OwnVal()
	maxdown, maxup := b.domain.Maxdown(ownVal), b.domain.Maxup(ownVal)

	allRedAt := func(pivot float32) bool {
		pOwn := b.own.ProjectPosition(pivot)
		pAc := ac.ProjectPosition(pivot)
		projectedOwn := projectedOwnship{Ownship: b.own, pos: pOwn, vel: vOwn}
		projectedAc := projectedTraffic{pos: pAc, vel: vAc}
		return b.oracle.AllIntRed(al.Detector, b.own.TimeStep(), 0, al.LateAlertingTime, maxdown, maxup,
			projectedOwn, []TrafficAircraft{projectedAc}, b.params.EpsilonH, b.params.EpsilonV)
	}

	pivotGreen, pivotRed := float32(0), tIn
	if allRedAt(0) {
		return -math.Infinity
	}
	if allRedAt(tIn) {
		for pivotRed-pivotGreen > bisectPrecision {
			mid := (pivotGreen + pivotRed) / 2
			if allRedAt(mid) {
				pivotRed = mid
			} else {
				pivotGreen = mid
			}
		}
	} else {
		pivotGreen = tIn
	}

	if math.AlmostEquals(pivotGreen, 0, math.DefaultTolerance) {
		return -math.Infinity
	}
	return pivotGreen
}

// projectedOwnship overrides Position/Velocity with a fixed linear
// projection of the ownship at a bisection pivot, reusing every other
// Ownship accessor (OwnVal, TimeStep) from the live ownship unchanged.
type projectedOwnship struct {
	Ownship
	pos, vel math.Vector3
}

func (p projectedOwnship) Position() math.Vector3 { return p.pos }
func (p projectedOwnship) Velocity() math.Vector3 { return p.vel }
func (p projectedOwnship) ProjectPosition(dt float32) math.Vector3 {
	return math.Project(p.pos, p.vel, dt)
}

// projectedTraffic is a TrafficAircraft fixed at a linear projection of
// a real aircraft at a bisection pivot.
type projectedTraffic struct {
	pos, vel math.Vector3
}

func (p projectedTraffic) Position() math.Vector3 { return p.pos }
func (p projectedTraffic) Velocity() math.Vector3 { return p.vel }
func (p projectedTraffic) ProjectPosition(dt float32) math.Vector3 {
	return math.Project(p.pos, p.vel, dt)
}
