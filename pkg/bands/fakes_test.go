// pkg/bands/fakes_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "github.com/rugby110/icarous/pkg/math"

// fakeOwnship is a hand-rolled Ownship satisfying interfaces.go, in the
// style of mmp-vice's sim package fakes for control tests: a fixed
// control value and a constant-velocity 3-D track.
type fakeOwnship struct {
	val      float32
	timeStep float32
	pos, vel math.Vector3
}

func (f *fakeOwnship) OwnVal() float32   { return f.val }
func (f *fakeOwnship) TimeStep() float32 { return f.timeStep }
func (f *fakeOwnship) Position() math.Vector3 { return f.pos }
func (f *fakeOwnship) Velocity() math.Vector3 { return f.vel }
func (f *fakeOwnship) ProjectPosition(dt float32) math.Vector3 {
	return math.Project(f.pos, f.vel, dt)
}

// fakeTraffic is a stationary or constant-velocity TrafficAircraft.
type fakeTraffic struct {
	pos, vel math.Vector3
}

func (f *fakeTraffic) Position() math.Vector3 { return f.pos }
func (f *fakeTraffic) Velocity() math.Vector3 { return f.vel }
func (f *fakeTraffic) ProjectPosition(dt float32) math.Vector3 {
	return math.Project(f.pos, f.vel, dt)
}

// fakeDetector reports conflict iff the separation between the two
// supplied tracks (projected forward by up to t) ever falls within the
// configured cylinder, sampled densely enough for test purposes.
type fakeDetector struct {
	d, h float32
}

func (f *fakeDetector) ConflictDetection(sOwn, vOwn, sAc, vAc math.Vector3, b, t float32) ConflictData {
	const samples = 64
	for i := 0; i <= samples; i++ {
		dt := b + (t-b)*float32(i)/float32(samples)
		pOwn := math.Project(sOwn, vOwn, dt)
		pAc := math.Project(sAc, vAc, dt)
		if f.intrudes(pOwn, pAc) {
			return ConflictData{Conflict: true, TimeIn: dt, TimeOut: t}
		}
	}
	return ConflictData{}
}

func (f *fakeDetector) intrudes(a, b math.Vector3) bool {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	horiz := math.Sqrt(dx*dx + dy*dy)
	return horiz < f.d && math.Abs(dz) < f.h
}

func (f *fakeDetector) SetHorizontalSeparation(d float32) { f.d = d }
func (f *fakeDetector) SetVerticalSeparation(h float32)   { f.h = h }
func (f *fakeDetector) HorizontalSeparation() float32     { return f.d }
func (f *fakeDetector) VerticalSeparation() float32       { return f.h }

func fakeMakeCylinder(d, h float32) CylinderDetector {
	return &fakeDetector{d: d, h: h}
}

// fakeAlertor is a minimal 1-level (plus a terminal "recovery region")
// Alertor: level 1 is both the most severe and the conflict level, its
// region is RegionNear, and lastGuidanceLevel paints RegionRecovery.
type fakeAlertor struct {
	detector         Detector
	alertingTime     float32
	lateAlertingTime float32
}

func (f *fakeAlertor) MostSevereAlertLevel() int { return 1 }
func (f *fakeAlertor) ConflictAlertLevel() int   { return 1 }
func (f *fakeAlertor) LastGuidanceLevel() int    { return 0 }

func (f *fakeAlertor) Level(i int) AlertLevel {
	if i == 0 {
		return AlertLevel{Region: RegionRecovery}
	}
	return AlertLevel{
		Region:           RegionNear,
		Detector:         f.detector,
		AlertingTime:     f.alertingTime,
		LateAlertingTime: f.lateAlertingTime,
	}
}

// fakeOracle is a brute-force IntegerBandOracle: for a maneuver index n,
// ownship's track value becomes own_val + n*step (approximated here as a
// lateral offset along X per unit index), and conflict-freedom is
// whatever detector (or recoveryDetector, when supplied) reports against
// each traffic aircraft over [b,t] unioned with [b2,t2].
type fakeOracle struct {
	step float32
}

// maneuverOwn approximates a maneuver index n as a fixed lateral offset
// of n*step applied to ownship's control value and X position, leaving
// velocity unchanged. It drives own purely through the Ownship interface
// so it works equally on a live *fakeOwnship or a LastTimeToManeuver
// projection.
func (o *fakeOracle) maneuverOwn(own Ownship, n int) Ownship {
	dx := float32(n) * o.step
	pos := own.Position()
	return &fakeOwnship{
		val:      own.OwnVal() + dx,
		timeStep: own.TimeStep(),
		pos:      math.Vector3{X: pos.X + dx, Y: pos.Y, Z: pos.Z},
		vel:      own.Velocity(),
	}
}

func (o *fakeOracle) redAt(detector Detector, n int, b, t float32, own Ownship, traffic []TrafficAircraft) bool {
	maneuvered := o.maneuverOwn(own, n)
	sOwn, vOwn := maneuvered.Position(), maneuvered.Velocity()
	for _, ac := range traffic {
		sAc, vAc := ac.Position(), ac.Velocity()
		if detector.ConflictDetection(sOwn, vOwn, sAc, vAc, b, t).Conflict {
			return true
		}
	}
	return false
}

func (o *fakeOracle) KinematicBandsCombine(detector, recoveryDetector Detector, dt float32,
	b, t, b2, t2 float32, maxdown, maxup int, own Ownship, traffic []TrafficAircraft,
	criteriaAc TrafficAircraft, epsH, epsV float32) []IntRange {

	det := detector
	if recoveryDetector != nil {
		det = recoveryDetector
	}

	var out []IntRange
	inGreen := false
	start := 0
	for n := maxdown; n <= maxup; n++ {
		red := o.redAt(det, n, b, t, own, traffic) || o.redAt(det, n, b2, t2, own, traffic)
		if !red && !inGreen {
			inGreen, start = true, n
		} else if red && inGreen {
			out = append(out, IntRange{Lb: start, Ub: n - 1})
			inGreen = false
		}
	}
	if inGreen {
		out = append(out, IntRange{Lb: start, Ub: maxup})
	}
	return out
}

func (o *fakeOracle) AnyIntRed(detector Detector, dt, b, t float32, maxdown, maxup int,
	own Ownship, traffic []TrafficAircraft, epsH, epsV float32) bool {
	for n := maxdown; n <= maxup; n++ {
		if o.redAt(detector, n, b, t, own, traffic) {
			return true
		}
	}
	return false
}

func (o *fakeOracle) AllIntRed(detector Detector, dt, b, t float32, maxdown, maxup int,
	own Ownship, traffic []TrafficAircraft, epsH, epsV float32) bool {
	for n := maxdown; n <= maxup; n++ {
		if !o.redAt(detector, n, b, t, own, traffic) {
			return false
		}
	}
	return true
}

func (o *fakeOracle) FirstGreen(dir Direction, detector Detector, dt, b, t float32, maxn int,
	own Ownship, traffic []TrafficAircraft, epsH, epsV float32) int {
	for k := 0; k <= maxn; k++ {
		n := k
		if dir == Down {
			n = -k
		}
		if !o.redAt(detector, n, b, t, own, traffic) {
			return k
		}
	}
	return -1
}

// testParams returns a CoreParams with no criteria/recovery aircraft,
// conflict aircraft taken from conflictAcs, and permissive recovery
// thresholds, to be overridden per test.
func testParams(oracle *fakeOracle, conflictAcs func(level int) []TrafficAircraft) CoreParams {
	return CoreParams{
		EpsilonH:              0.1,
		EpsilonV:              0.1,
		MinHorizontalRecovery: 5,
		MinVerticalRecovery:   5,
		CaBands:               true,
		CaFactor:               0.1,
		RecoveryStabilityTime: 1,
		NmacD:                 0.5,
		NmacH:                 0.5,
		ConflictAircraft:      conflictAcs,
		MakeCylinder:          fakeMakeCylinder,
	}
}
