// pkg/bands/interfaces.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"github.com/rugby110/icarous/pkg/math"
)

// Ownship exposes the state of the aircraft for which bands are being
// computed: its current value of the control variable, the trajectory
// generator's integration step, and a linear forward-projection of its
// 3-D position and velocity. The concrete per-variable kinematic
// trajectory generator this feeds is outside this package's scope
// (spec.md 1); bands only calls through this interface.
type Ownship interface {
	// OwnVal returns the aircraft's current value of the control
	// variable the bands are computed over.
	OwnVal() float32
	// TimeStep returns the trajectory integration step used by the
	// integer-band oracle.
	TimeStep() float32
	// Position and Velocity return the aircraft's current 3-D state.
	Position() math.Vector3
	Velocity() math.Vector3
	// ProjectPosition returns the aircraft's position dt seconds in the
	// future assuming constant velocity.
	ProjectPosition(dt float32) math.Vector3
}

// TrafficAircraft is the traffic-side analogue of Ownship.
type TrafficAircraft interface {
	Position() math.Vector3
	Velocity() math.Vector3
	ProjectPosition(dt float32) math.Vector3
}

// ConflictData is the result of a 3-D conflict detector query over a time
// window.
type ConflictData struct {
	Conflict bool
	TimeIn   float32
	TimeOut  float32
}

// Detector is the pluggable 3-D conflict detector collaborator (spec.md
// 6). Implementations encapsulate a specific separation-volume geometry
// (e.g. a cylinder of given horizontal radius and half-height); bands
// never constructs conflict geometry itself except through the
// CylinderDetector factory used by the recovery engine.
type Detector interface {
	ConflictDetection(sOwn, vOwn, sAc, vAc math.Vector3, b, t float32) ConflictData
}

// CylinderDetector constructs protected-volume cylinder detectors used by
// the recovery engine (spec.md 4.6) and lets their separation be mutated
// in place as the engine shrinks the cylinder.
type CylinderDetector interface {
	Detector
	SetHorizontalSeparation(d float32)
	SetVerticalSeparation(h float32)
	HorizontalSeparation() float32
	VerticalSeparation() float32
}

// MakeCylinderDetector constructs a CylinderDetector with the given
// horizontal radius D and half-height H (spec.md 6, "mk(D, H)").
type MakeCylinderDetector func(d, h float32) CylinderDetector

// AlertLevel describes one tier of the Alertor's severity ladder.
type AlertLevel struct {
	Region          BandsRegion
	Detector        Detector
	AlertingTime    float32
	LateAlertingTime float32
}

// Alertor supplies the host application's alert-level configuration.
// mostSevereAlertLevel and conflictAlertLevel are 1-based indices into
// the same space as Level(i), matching the convention of the original
// ICAROUS/DAIDALUS alertor this package is modeled on. lastGuidanceLevel
// indexes the same space but may be 0: the compositor paints recovery
// bands with Level(LastGuidanceLevel()).Region.
type Alertor interface {
	MostSevereAlertLevel() int
	ConflictAlertLevel() int
	LastGuidanceLevel() int
	Level(i int) AlertLevel
}

// IntegerBandOracle is the parent abstract layer (spec.md 6): given a
// candidate maneuver index range, it evaluates conflict-freedom of the
// ownship's kinematic trajectory family against a traffic set. The
// concrete per-variable trajectory generator and the integer-index band
// generator it drives are outside this package's scope; bands drives
// this interface without knowing how trajectories are produced.
type IntegerBandOracle interface {
	// KinematicBandsCombine returns the set of integer maneuver indices
	// in [maxdown,maxup] that are conflict-free for every aircraft in
	// traffic against detector over [b,t], using recoveryDetector (which
	// may be nil) as the fallback volume when recovery bands are being
	// synthesized.
	KinematicBandsCombine(detector Detector, recoveryDetector Detector, dt float32,
		b, t, b2, t2 float32, maxdown, maxup int, own Ownship, traffic []TrafficAircraft,
		criteriaAc TrafficAircraft, epsH, epsV float32) []IntRange

	// AnyIntRed reports whether any maneuver index in [maxdown,maxup]
	// produces a conflict against traffic within [b,t].
	AnyIntRed(detector Detector, dt, b, t float32, maxdown, maxup int,
		own Ownship, traffic []TrafficAircraft, epsH, epsV float32) bool

	// AllIntRed reports whether every maneuver index in [maxdown,maxup]
	// produces a conflict against traffic within [b,t] (solid red).
	AllIntRed(detector Detector, dt, b, t float32, maxdown, maxup int,
		own Ownship, traffic []TrafficAircraft, epsH, epsV float32) bool

	// FirstGreen scans maneuver indices from 0 to maxn (inclusive) in the
	// given direction and returns the first conflict-free index, or -1
	// if none is conflict-free.
	FirstGreen(dir Direction, detector Detector, dt, b, t float32, maxn int,
		own Ownship, traffic []TrafficAircraft, epsH, epsV float32) int
}

// IntRange is a closed range of integer maneuver indices, [Lb,Ub].
type IntRange struct {
	Lb, Ub int
}

// CoreParams bundles the enclosing core context's configuration that
// bands needs but does not own (spec.md 6).
type CoreParams struct {
	EpsilonH, EpsilonV                         float32
	CriteriaAc                                  TrafficAircraft
	RecoveryAc                                  []TrafficAircraft
	MinHorizontalRecovery, MinVerticalRecovery float32
	CaBands                                     bool
	CaFactor                                    float32
	RecoveryStabilityTime                       float32
	// NmacD and NmacH are the NMAC-sized cylinder dimensions below which
	// recovery is deemed infeasible (spec.md 4.6 step 1, glossary NMAC).
	NmacD, NmacH float32

	// ConflictAircraft returns the traffic aircraft the enclosing core
	// considers in conflict with the ownship at the given alert level.
	ConflictAircraft func(level int) []TrafficAircraft

	MakeCylinder MakeCylinderDetector
}
