// pkg/bands/noneset.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "github.com/rugby110/icarous/pkg/math"

// toIntervalSet converts an ordered list of integer maneuver-index
// intervals into a real-valued IntervalSet under the given scale/offset,
// clipped to [minVal,maxVal] and, for a circular domain, wrapped modulo
// mod (spec.md 4.3). mod <= 0 disables wrap.
func toIntervalSet(ranges []IntRange, scale, offset, minVal, maxVal, mod float32) math.IntervalSet {
	var out math.IntervalSet
	tol := math.DefaultTolerance

	for _, r := range ranges {
		lo := scale*float32(r.Lb) + offset
		hi := scale*float32(r.Ub) + offset
		if lo > hi {
			lo, hi = hi, lo
		}

		if mod <= 0 {
			lo, hi = math.Max(lo, minVal), math.Min(hi, maxVal)
			if lo <= hi {
				out.AlmostAdd(lo, hi, tol)
			}
			continue
		}

		if math.AlmostEqualsMod(lo, hi, mod, tol) {
			// The candidate spans the entire circle.
			if minVal <= maxVal {
				out.AlmostAdd(minVal, maxVal, tol)
			} else {
				out.AlmostAdd(minVal, mod, tol)
				out.AlmostAdd(0, maxVal, tol)
			}
			continue
		}

		loW, hiW := math.Modulo(lo, mod), math.Modulo(hi, mod)
		domainContig := minVal <= maxVal
		rangeContig := loW <= hiW

		addClipped := func(lo2, hi2, clipLo, clipHi float32) {
			l, h := math.Max(lo2, clipLo), math.Min(hi2, clipHi)
			if l <= h {
				out.AlmostAdd(l, h, tol)
			}
		}

		switch {
		case domainContig && rangeContig:
			addClipped(loW, hiW, minVal, maxVal)
		case domainContig && !rangeContig:
			addClipped(loW, mod, minVal, maxVal)
			addClipped(0, hiW, minVal, maxVal)
		case !domainContig && rangeContig:
			addClipped(loW, hiW, minVal, mod)
			addClipped(loW, hiW, 0, maxVal)
		default: // both wrap
			l := math.Max(minVal, loW)
			if l <= mod {
				out.AlmostAdd(l, mod, tol)
			}
			h := math.Min(maxVal, hiW)
			if h >= 0 {
				out.AlmostAdd(0, h, tol)
			}
		}
	}

	return out
}

///////////////////////////////////////////////////////////////////////////
// Peripheral & conflict aircraft classification (spec.md 4.4)

// classifyPeripheral returns the traffic that is peripheral at alert
// level L: no current conflict (as reported by detector over [0,T]), but
// some candidate maneuver in [maxdown,maxup] would induce one. Aircraft
// currently in conflict are skipped, not returned.
func (b *Bands) classifyPeripheral(level int, detector Detector, t float32, traffic []TrafficAircraft,
	maxdown, maxup int) (peripheral []TrafficAircraft) {

	own := b.own
	sOwn, vOwn := own.Position(), own.Velocity()

	for _, ac := range traffic {
		sAc, vAc := ac.Position(), ac.Velocity()
		cd := detector.ConflictDetection(sOwn, vOwn, sAc, vAc, 0, t)
		if cd.Conflict {
			continue // currently in conflict: not peripheral.
		}
		if b.kinematicConflict(ac, detector, t, maxdown, maxup) {
			peripheral = append(peripheral, ac)
		}
	}
	return peripheral
}

// kinematicConflict reports whether some maneuver index in
// [maxdown,maxup] produces a conflict against ac alone over [0,t]
// (spec.md 4.4, 6: "kinematic_conflict").
func (b *Bands) kinematicConflict(ac TrafficAircraft, detector Detector, t float32, maxdown, maxup int) bool {
	return b.oracle.AnyIntRed(detector, b.own.TimeStep(), 0, t, maxdown, maxup,
		b.own, []TrafficAircraft{ac}, b.params.EpsilonH, b.params.EpsilonV)
}

///////////////////////////////////////////////////////////////////////////
// None-set composition (spec.md 4.5)

// computeNoneBands computes the set of integer maneuver indices
// conflict-free against both the peripheral and conflict aircraft of
// alert level L within their respective (possibly distinct) horizons,
// scaled into a real-valued IntervalSet.
func (b *Bands) computeNoneBands(level int, al AlertLevel, tLate float32, maxdown, maxup int,
	ownVal, minVal, maxVal float32) math.IntervalSet {

	peripheral := b.peripheralAcs[level]
	conflictAcs := b.params.ConflictAircraft(level)

	ranges1 := b.oracle.KinematicBandsCombine(al.Detector, nil, b.own.TimeStep(), 0, al.AlertingTime,
		0, al.AlertingTime, maxdown, maxup, b.own, peripheral, b.params.CriteriaAc,
		b.params.EpsilonH, b.params.EpsilonV)
	ranges2 := b.oracle.KinematicBandsCombine(al.Detector, nil, b.own.TimeStep(), 0, tLate,
		0, tLate, maxdown, maxup, b.own, conflictAcs, b.params.CriteriaAc,
		b.params.EpsilonH, b.params.EpsilonV)

	none1 := toIntervalSet(ranges1, b.domain.Step(), ownVal, minVal, maxVal, b.domain.Mod())
	none2 := toIntervalSet(ranges2, b.domain.Step(), ownVal, minVal, maxVal, b.domain.Mod())

	none1.AlmostIntersect(none2, math.DefaultTolerance)
	return none1
}
