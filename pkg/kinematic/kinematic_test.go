// pkg/kinematic/kinematic_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematic

import (
	"testing"

	"github.com/rugby110/icarous/pkg/bands"
	"github.com/rugby110/icarous/pkg/math"
)

const testTol float32 = 1e-3

func TestCylinderDetectorHeadOnConflict(t *testing.T) {
	d := NewCylinderDetector(2, 100)
	own := math.Vector3{}
	ownVel := math.Vector3{X: 1}
	ac := math.Vector3{X: 10}
	acVel := math.Vector3{X: -1}

	cd := d.ConflictDetection(own, ownVel, ac, acVel, 0, 20)
	if !cd.Conflict {
		t.Fatalf("ConflictDetection = %+v, want a conflict (tracks cross head-on)", cd)
	}
}

func TestCylinderDetectorNoConflictWhenFar(t *testing.T) {
	d := NewCylinderDetector(2, 100)
	own := math.Vector3{}
	ownVel := math.Vector3{X: 1}
	ac := math.Vector3{Y: 1000}
	acVel := math.Vector3{X: 1}

	cd := d.ConflictDetection(own, ownVel, ac, acVel, 0, 20)
	if cd.Conflict {
		t.Fatalf("ConflictDetection = %+v, want no conflict (parallel tracks 1000m apart)", cd)
	}
}

func TestCylinderDetectorSeparationAccessors(t *testing.T) {
	d := NewCylinderDetector(2, 100)
	if d.HorizontalSeparation() != 2 || d.VerticalSeparation() != 100 {
		t.Fatalf("got d=%v h=%v, want 2,100", d.HorizontalSeparation(), d.VerticalSeparation())
	}
	d.SetHorizontalSeparation(5)
	d.SetVerticalSeparation(50)
	if d.HorizontalSeparation() != 5 || d.VerticalSeparation() != 50 {
		t.Fatalf("setters did not take effect: d=%v h=%v", d.HorizontalSeparation(), d.VerticalSeparation())
	}
}

func TestTrackManeuverTurnsHeadingHoldingSpeed(t *testing.T) {
	own := NewOwnship(0, 1, math.Vector3{}, math.Vector3{X: 100})

	turned := TrackManeuver(own, 1, 90)
	vel := turned.Velocity()
	if !math.AlmostEquals(vel.X, 0, testTol) || !math.AlmostEquals(vel.Y, 100, testTol) {
		t.Errorf("Velocity() = %+v, want approximately (0,100,0)", vel)
	}
	if !math.AlmostEquals(turned.OwnVal(), 90, testTol) {
		t.Errorf("OwnVal() = %v, want 90", turned.OwnVal())
	}

	back := TrackManeuver(own, -1, 90)
	vel = back.Velocity()
	if !math.AlmostEquals(vel.X, 0, testTol) || !math.AlmostEquals(vel.Y, -100, testTol) {
		t.Errorf("Velocity() = %+v, want approximately (0,-100,0)", vel)
	}
}

func TestTrackManeuverZeroIndexIsIdentity(t *testing.T) {
	own := NewOwnship(30, 1, math.Vector3{}, math.Vector3{X: 80, Y: 20})
	same := TrackManeuver(own, 0, 5)
	if !math.AlmostEquals(same.Velocity().X, own.Velocity().X, testTol) ||
		!math.AlmostEquals(same.Velocity().Y, own.Velocity().Y, testTol) {
		t.Errorf("TrackManeuver(own, 0, _) = %+v, want own's own velocity unchanged", same.Velocity())
	}
}

func TestSpeedManeuverScalesSpeedHoldingHeading(t *testing.T) {
	own := NewOwnship(100, 1, math.Vector3{}, math.Vector3{X: 100})

	faster := SpeedManeuver(own, 2, 0.1)
	if got := faster.Velocity().X; !math.AlmostEquals(got, 120, testTol) {
		t.Errorf("Velocity().X = %v, want 120 (100 * 1.2)", got)
	}
	if !math.AlmostEquals(faster.OwnVal(), 120, testTol) {
		t.Errorf("OwnVal() = %v, want 120", faster.OwnVal())
	}

	slower := SpeedManeuver(own, -20, 0.1)
	if got := slower.Velocity().X; got != 0 {
		t.Errorf("Velocity().X = %v, want 0 (factor clamped at 0)", got)
	}
}

func TestBruteForceOracleRedRangeAroundHeadOnIntruder(t *testing.T) {
	own := NewOwnship(0, 1, math.Vector3{}, math.Vector3{X: 10})
	traffic := []bands.TrafficAircraft{NewTrafficAircraft(math.Vector3{X: 100}, math.Vector3{X: -10})}
	detector := NewCylinderDetector(5, 100)
	oracle := &BruteForceOracle{Maneuver: TrackManeuver, Scale: 10}

	if !oracle.AnyIntRed(detector, 1, 0, 20, -5, 5, own, traffic, 0, 0) {
		t.Fatalf("AnyIntRed = false, want true (flying straight ahead conflicts with the head-on intruder)")
	}
	if oracle.AllIntRed(detector, 1, 0, 20, -5, 5, own, traffic, 0, 0) {
		t.Fatalf("AllIntRed = true, want false (turning 50 degrees away clears the conflict)")
	}

	ranges := oracle.KinematicBandsCombine(detector, nil, 1, 0, 20, 0, 20, -5, 5, own, traffic, nil, 0, 0)
	for _, r := range ranges {
		if r.Lb <= 0 && r.Ub >= 0 {
			t.Errorf("KinematicBandsCombine ranges %+v include n=0 (straight ahead), want it excluded", ranges)
		}
	}
}

func TestBruteForceOracleFirstGreenBothDirections(t *testing.T) {
	own := NewOwnship(0, 1, math.Vector3{}, math.Vector3{X: 10})
	traffic := []bands.TrafficAircraft{NewTrafficAircraft(math.Vector3{X: 100}, math.Vector3{X: -10})}
	detector := NewCylinderDetector(5, 100)
	oracle := &BruteForceOracle{Maneuver: TrackManeuver, Scale: 10}

	up := oracle.FirstGreen(bands.Up, detector, 1, 0, 20, 9, own, traffic, 0, 0)
	if up < 0 {
		t.Errorf("FirstGreen(Up) = %d, want a non-negative escape index", up)
	}
	down := oracle.FirstGreen(bands.Down, detector, 1, 0, 20, 9, own, traffic, 0, 0)
	if down < 0 {
		t.Errorf("FirstGreen(Down) = %d, want a non-negative escape index", down)
	}
}

func TestLadderAlertorLevelsAndRecovery(t *testing.T) {
	far := NewCylinderDetector(10, 500)
	mid := NewCylinderDetector(5, 350)
	near := NewCylinderDetector(2, 200)

	a := NewLadderAlertor([]bands.AlertLevel{
		{Region: bands.RegionFar, Detector: far, AlertingTime: 90, LateAlertingTime: 90},
		{Region: bands.RegionMid, Detector: mid, AlertingTime: 55, LateAlertingTime: 55},
		{Region: bands.RegionNear, Detector: near, AlertingTime: 25, LateAlertingTime: 25},
	}, 3, 0)

	if a.MostSevereAlertLevel() != 3 {
		t.Errorf("MostSevereAlertLevel() = %d, want 3", a.MostSevereAlertLevel())
	}
	if a.ConflictAlertLevel() != 3 {
		t.Errorf("ConflictAlertLevel() = %d, want 3", a.ConflictAlertLevel())
	}
	if a.Level(0).Region != bands.RegionRecovery {
		t.Errorf("Level(0).Region = %v, want RegionRecovery", a.Level(0).Region)
	}
	if a.Level(1).Region != bands.RegionFar || a.Level(1).Detector != far {
		t.Errorf("Level(1) = %+v, want RegionFar/far", a.Level(1))
	}
	if a.Level(3).Region != bands.RegionNear || a.Level(3).Detector != near {
		t.Errorf("Level(3) = %+v, want RegionNear/near", a.Level(3))
	}
	if got := a.Level(99); got.Region != bands.RegionUnknown {
		t.Errorf("Level(99) = %+v, want the zero AlertLevel (RegionUnknown)", got)
	}
}
