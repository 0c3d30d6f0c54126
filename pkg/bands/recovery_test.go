// pkg/bands/recovery_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rugby110/icarous/pkg/math"
)

// TestComputeRecoveryBandsSaturatedNMAC exercises spec.md S6: a stationary
// intruder sits close enough to ownship's whole maneuver envelope that
// even the NMAC-sized cylinder reports a conflict for every maneuver
// index, so recovery_time must be -Inf without ever reaching the shrink
// loop.
func TestComputeRecoveryBandsSaturatedNMAC(t *testing.T) {
	own := &fakeOwnship{val: 0, timeStep: 1, pos: math.Vector3{}, vel: math.Vector3{X: 1}}
	ac := &fakeTraffic{pos: math.Vector3{X: 0, Y: 0}, vel: math.Vector3{}}
	oracle := &fakeOracle{step: 1}
	detector := &fakeDetector{d: 5, h: 100}
	alertor := &fakeAlertor{detector: detector, alertingTime: 10, lateAlertingTime: 10}

	params := testParams(oracle, func(int) []TrafficAircraft { return []TrafficAircraft{ac} })
	// Every maneuvered track n in [-5,5] passes within 10 units of ac at
	// some point in [0,10]s, so a 10-unit-radius cylinder is solid red.
	params.NmacD, params.NmacH = 10, 100

	b := &Bands{
		own:     own,
		oracle:  oracle,
		alertor: alertor,
		params:  params,
		domain:  NewDomainParams(-5, 5, WithRel(true), WithStep(1)),
	}

	al := alertor.Level(1)
	none := b.computeRecoveryBands(1, al, -5, 5, 0, -5, 5)

	require.True(t, none.IsEmpty(), "expected solid-red NMAC saturation to produce an empty none-set")
	require.Equal(t, -math.Infinity, b.recoveryTime, "recovery_time must be -Inf when NMAC-saturated")
}

// TestComputeRecoveryBandsFindsEscape exercises spec.md S5: a stationary
// intruder sits at ownship's starting point, so every maneuver index that
// keeps the track close to 0 is red, but indices that steer far enough
// away (n=2..5) remain green at the configured recovery cylinder, giving
// a finite recovery_time.
func TestComputeRecoveryBandsFindsEscape(t *testing.T) {
	own := &fakeOwnship{val: 0, timeStep: 1, pos: math.Vector3{}, vel: math.Vector3{X: 1}}
	ac := &fakeTraffic{pos: math.Vector3{X: 0, Y: 0}, vel: math.Vector3{}}
	oracle := &fakeOracle{step: 1}
	detector := &fakeDetector{d: 50, h: 100}
	alertor := &fakeAlertor{detector: detector, alertingTime: 10, lateAlertingTime: 10}

	params := testParams(oracle, func(int) []TrafficAircraft { return []TrafficAircraft{ac} })
	params.MinHorizontalRecovery, params.MinVerticalRecovery = 2, 100
	params.NmacD, params.NmacH = 0.5, 0.5

	b := &Bands{
		own:     own,
		oracle:  oracle,
		alertor: alertor,
		params:  params,
		domain:  NewDomainParams(-5, 5, WithRel(true), WithStep(1)),
	}

	al := alertor.Level(1)
	none := b.computeRecoveryBands(1, al, -5, 5, 0, -5, 5)

	require.False(t, math.IsNaN(b.recoveryTime), "recovery_time should have been set")
	require.NotEqual(t, -math.Infinity, b.recoveryTime, "expected a finite recovery_time, an escape exists")
	require.False(t, none.IsEmpty(), "expected a non-empty recovery none-set")
}
