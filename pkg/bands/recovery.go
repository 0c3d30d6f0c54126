// pkg/bands/recovery.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "github.com/rugby110/icarous/pkg/math"

// bisectPrecision is the stopping half-width for all time bisections in
// this package (spec.md 4.6, 4.8: "precision 0.5 s").
const bisectPrecision float32 = 0.5

// computeRecoveryBands runs the recovery engine (spec.md 4.6). It is
// only called when recovery is enabled, the conflict level's none-set is
// empty, and level == alertor.ConflictAlertLevel(). It sets b.recoveryTime
// and returns the recovery none-set (possibly empty, if NMAC-solid-red).
func (b *Bands) computeRecoveryBands(level int, al AlertLevel, maxdown, maxup int,
	ownVal, minVal, maxVal float32) math.IntervalSet {

	p := b.params
	t := al.LateAlertingTime
	detector := al.Detector
	conflictAcs := p.ConflictAircraft(level)

	noneAt := func(d, h float32) math.IntervalSet {
		cyl := p.MakeCylinder(d, h)
		ranges := b.oracle.KinematicBandsCombine(detector, cyl, b.own.TimeStep(), 0, t, 0, t,
			maxdown, maxup, b.own, conflictAcs, p.CriteriaAc, p.EpsilonH, p.EpsilonV)
		return toIntervalSet(ranges, b.domain.Step(), ownVal, minVal, maxVal, b.domain.Mod())
	}

	// Step 1: an NMAC-sized cylinder. If even that has no escape, nothing
	// can avoid an imminent NMAC.
	if noneAt(p.NmacD, p.NmacH).IsEmpty() {
		b.recoveryTime = -math.Infinity
		return nil
	}

	d, h := p.MinHorizontalRecovery, p.MinVerticalRecovery
	for {
		none := noneAt(d, h)
		if !none.IsEmpty() {
			recoveryTime := b.bisectRecoveryStart(detector, d, h, t, maxdown, maxup, ownVal, minVal, maxVal)
			if recoveryTime != math.Infinity {
				b.recoveryTime = recoveryTime
				validated := noneAt2(b, detector, d, h, maxdown, maxup, ownVal, minVal, maxVal, recoveryTime)
				if validated.IsEmpty() {
					b.recoveryTime = -math.Infinity
					return nil
				}
				return validated
			}
		}
		if !none.IsEmpty() || !p.CaBands {
			return none
		}
		// Shrink the cylinder and iterate (spec.md 9, open question:
		// shrinkage continues even under persistent solid-red until the
		// cylinder drops below NMAC).
		d *= 1 - p.CaFactor
		h *= 1 - p.CaFactor
		if d <= p.NmacD || h <= p.NmacH {
			b.recoveryTime = -math.Infinity
			return nil
		}
	}
}

// noneAt2 recomputes the none-set at a specific pivot start time, used to
// validate a bisected recovery time (spec.md 4.6 step 2a, "Validate by
// recomputing the none-set at recovery_time").
func noneAt2(b *Bands, detector Detector, d, h float32, maxdown, maxup int,
	ownVal, minVal, maxVal, pivot float32) math.IntervalSet {

	p := b.params
	cyl := p.MakeCylinder(d, h)
	conflictAcs := p.ConflictAircraft(b.alertor.ConflictAlertLevel())
	ranges := b.oracle.KinematicBandsCombine(detector, cyl, b.own.TimeStep(), pivot, pivot,
		pivot, pivot, maxdown, maxup, b.own, conflictAcs, p.CriteriaAc, p.EpsilonH, p.EpsilonV)
	return toIntervalSet(ranges, b.domain.Step(), ownVal, minVal, maxVal, b.domain.Mod())
}

// bisectRecoveryStart finds the earliest start time in [0,T] at which a
// conflict-free solution exists against detector with the (d,h) cylinder
// as the recovery detector (spec.md 4.6 step 2a). It returns
// math.Infinity if no such time exists within [0,T].
func (b *Bands) bisectRecoveryStart(detector Detector, d, h, t float32, maxdown, maxup int,
	ownVal, minVal, maxVal float32) float32 {

	p := b.params
	conflictAcs := p.ConflictAircraft(b.alertor.ConflictAlertLevel())

	// greenAt reports whether, starting the maneuver at time pivot rather
	// than 0, some maneuver index remains conflict-free against
	// conflictAcs over [pivot,t] under the shrunk cylinder. A false
	// result is "solid red" for the tie-break below.
	greenAt := func(pivot float32) bool {
		cyl := p.MakeCylinder(d, h)
		ranges := b.oracle.KinematicBandsCombine(detector, cyl, b.own.TimeStep(), pivot, t, pivot, t,
			maxdown, maxup, b.own, conflictAcs, p.CriteriaAc, p.EpsilonH, p.EpsilonV)
		return !toIntervalSet(ranges, b.domain.Step(), ownVal, minVal, maxVal, b.domain.Mod()).IsEmpty()
	}

	pivotRed, pivotGreen := float32(0), t
	if greenAt(0) {
		pivotGreen = 0
	} else if !greenAt(t) {
		return math.Infinity
	} else {
		for pivotGreen-pivotRed > bisectPrecision {
			mid := (pivotRed + pivotGreen) / 2
			if greenAt(mid) {
				pivotGreen = mid
			} else {
				pivotRed = mid
			}
		}
	}

	if pivotGreen > t {
		return math.Infinity
	}
	rt := pivotGreen + p.RecoveryStabilityTime
	return math.Min(rt, t)
}
