// pkg/bands/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package bands computes kinematic maneuver guidance bands: given a
// one-dimensional control variable (track, ground speed, vertical speed,
// or altitude) bounded by an interval and possibly circular modulo a
// period, it partitions the reachable range into colored sub-intervals
// indicating which maneuvers remain conflict-free, which trigger alerts
// at each severity level, and, when saturated, which constitute a
// recovery maneuver that minimizes intrusion into a protected volume.
//
// The package does not itself project aircraft trajectories or detect 3-D
// conflicts; those are supplied by the host application through the
// Ownship, TrafficAircraft, Detector, Alertor, and IntegerBandOracle
// interfaces in interfaces.go.
package bands

import "fmt"

// BandsRegion labels a sub-interval of the control variable with its
// severity. The concrete set of non-NONE regions (their count and
// ordering) is supplied by the host application's Alertor; bands only
// knows about the handful of sentinel regions below plus whatever
// Region values the Alertor hands back for each alert level.
type BandsRegion int

const (
	// RegionUnknown marks a band produced from an invalid configuration
	// or an out-of-range query; it never appears in a valid compute()'s
	// ranges.
	RegionUnknown BandsRegion = iota
	// RegionNone marks a maneuver that is conflict-free against every
	// alert level's traffic within its horizon.
	RegionNone
	// RegionRecovery marks a band synthesized by the recovery engine when
	// the conflict alert level's none-set is empty but recovery is
	// enabled. When recovery finds no escape (recovery_time -Inf), the
	// whole domain can carry it.
	RegionRecovery
	// RegionFar, RegionMid, and RegionNear are the conventional conflict
	// severities, ordered least to most severe alongside
	// RegionUnknown < RegionNone < RegionRecovery < RegionFar < RegionMid
	// < RegionNear: FAR is the outermost, earliest-alerting preventive
	// band and NEAR is the innermost, most urgent one, matching
	// ascending alert-level index meaning ascending severity. Hosts that
	// configure additional or differently-named alert levels supply
	// their own BandsRegion values via the Alertor and must keep them
	// ordered consistently with this scale, since the compositor relies
	// on ascending BandsRegion order to mean ascending severity.
	RegionFar
	RegionMid
	RegionNear
)

func (r BandsRegion) String() string {
	switch r {
	case RegionUnknown:
		return "UNKNOWN"
	case RegionNone:
		return "NONE"
	case RegionRecovery:
		return "RECOVERY"
	case RegionNear:
		return "NEAR"
	case RegionMid:
		return "MID"
	case RegionFar:
		return "FAR"
	default:
		return fmt.Sprintf("REGION(%d)", int(r))
	}
}

// IsConflictBand reports whether the region denotes a maneuver that would
// produce a loss of separation, i.e. anything other than NONE, RECOVERY,
// or UNKNOWN.
func (r BandsRegion) IsConflictBand() bool {
	return r != RegionUnknown && r != RegionNone && r != RegionRecovery
}

// IsResolutionBand reports whether the region is one that rangeOf
// treats with inclusive-both-ends boundary
// semantics (spec.md 4.9): NONE and RECOVERY bands are "solutions" an
// aircraft could fly to, so a value sitting exactly on one of their
// boundaries belongs to them rather than to an adjacent conflict band.
func (r BandsRegion) IsResolutionBand() bool {
	return r == RegionNone || r == RegionRecovery
}

// CheckedState is the tri-state memoization of input validation described
// in spec.md 4.2.
type CheckedState int

const (
	CheckUnchecked CheckedState = iota
	CheckInvalid
	CheckValid
)

// Direction selects which way compute_resolution and the maxdown/maxup
// geometry search: Down decreases the control variable, Up increases it.
type Direction bool

const (
	Down Direction = false
	Up   Direction = true
)

func (d Direction) sign() float32 {
	if d == Up {
		return 1
	}
	return -1
}
