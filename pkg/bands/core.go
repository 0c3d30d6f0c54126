// pkg/bands/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rugby110/icarous/pkg/log"
	"github.com/rugby110/icarous/pkg/math"
)

// Bands is the kinematic maneuver guidance bands engine for a single
// control variable (track, ground speed, vertical speed, or altitude;
// spec.md 1). A Bands instance owns a cache of its last compute()'s
// ranges and invalidates it lazily whenever a DomainParams or CoreParams
// field it depends on changes (spec.md 5, 9).
type Bands struct {
	id uuid.UUID

	domain *DomainParams
	own    Ownship
	traffic []TrafficAircraft
	alertor Alertor
	oracle  IntegerBandOracle
	params  CoreParams

	logger *log.Logger

	// outdated is set by any mutator and cleared at the start of every
	// recompute; ensureFresh recomputes iff outdated is set, guarding
	// re-entrant queries within a single invocation (spec.md 5).
	outdated bool

	peripheralAcs [][]TrafficAircraft
	lastLevels    []levelNoneSet
	ranges        []BandsRange
	recoveryTime  float32

	// invalidReason holds the last CheckInput failure text, or "" when
	// the configuration is valid; every query degrades to empty/UNKNOWN
	// results while it is non-empty (spec.md 7).
	invalidReason string
}

// NewBands constructs a Bands engine wired to the given collaborators.
// own, alertor, and oracle must be non-nil; a nil domain is replaced by
// NewDomainParams(0, 0). traffic may be empty. The returned Bands starts outdated so the first
// query triggers a compute.
func NewBands(own Ownship, traffic []TrafficAircraft, alertor Alertor, oracle IntegerBandOracle,
	domain *DomainParams, params CoreParams, logger *log.Logger) (*Bands, error) {
	if own == nil {
		return nil, ErrNilOwnship
	}
	if alertor == nil {
		return nil, ErrNilAlertor
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	for i := 1; i <= alertor.MostSevereAlertLevel(); i++ {
		if alertor.Level(i).Detector == nil {
			return nil, ErrNilDetector
		}
	}
	if domain == nil {
		domain = NewDomainParams(0, 0)
	}

	b := &Bands{
		id:           uuid.New(),
		domain:       domain,
		own:          own,
		traffic:      traffic,
		alertor:      alertor,
		oracle:       oracle,
		params:       params,
		logger:       logger,
		outdated:     true,
		recoveryTime: math.NaN,
	}
	domain.setInvalidateHook(func() { b.outdated = true })
	return b, nil
}

// ensureFresh recomputes the cache if it has been marked outdated.
func (b *Bands) ensureFresh() {
	if b.outdated {
		b.recompute()
	}
}

///////////////////////////////////////////////////////////////////////////
// Query surface (spec.md 4.9, 6)

// Length returns the number of bands in the last compute's ranges.
func (b *Bands) Length() int {
	b.ensureFresh()
	return len(b.ranges)
}

// Interval returns the i'th band's interval, or the empty interval if i
// is out of range (spec.md 7, "Out-of-Bounds Query Index").
func (b *Bands) Interval(i int) math.Interval {
	b.ensureFresh()
	if i < 0 || i >= len(b.ranges) {
		return math.EmptyInterval()
	}
	return b.ranges[i].Interval
}

// Region returns the i'th band's region, or RegionUnknown if i is out of
// range.
func (b *Bands) Region(i int) BandsRegion {
	b.ensureFresh()
	if i < 0 || i >= len(b.ranges) {
		return RegionUnknown
	}
	return b.ranges[i].Region
}

// Ranges returns the full, ordered band list from the last compute.
func (b *Bands) Ranges() []BandsRange {
	b.ensureFresh()
	return b.ranges
}

// RangeOf returns the index of the band containing v (wrapped by mod
// first, when circular), or Length() if no band contains it (spec.md
// 4.9, 8 invariant 2). Boundary values are resolved per spec.md 4.9: a
// resolution band (NONE or RECOVERY) is inclusive on both ends; a
// non-circular domain's outer boundary (min_val/max_val) belongs to
// whichever band touches it even if that band is a conflict band.
func (b *Bands) RangeOf(v float32) int {
	b.ensureFresh()
	if len(b.ranges) == 0 {
		return 0
	}

	tol := math.DefaultTolerance
	if b.domain.Mod() > 0 {
		v = math.Modulo(v, b.domain.Mod())
	}

	fallback := -1
	for i, r := range b.ranges {
		lo, up := r.Interval.Low, r.Interval.Up
		if lo < v && v < up {
			return i
		}
		onLow := math.AlmostEquals(v, lo, tol)
		onUp := math.AlmostEquals(v, up, tol)
		if !onLow && !onUp {
			continue
		}
		if r.Region.IsResolutionBand() {
			// Prefer the band whose upper bound is mod, for the v≈0/v≈mod
			// ambiguity on a resolution band (spec.md 4.9).
			if onUp && math.AlmostEquals(up, b.domain.Mod(), tol) {
				return i
			}
			if fallback == -1 && onLow && math.AlmostEquals(lo, 0, tol) {
				fallback = i
			}
			if fallback == -1 {
				fallback = i
			}
			continue
		}
		if !b.domain.Circular() {
			if onLow && math.AlmostEquals(lo, b.ranges[0].Interval.Low, tol) {
				return i
			}
			if onUp && math.AlmostEquals(up, b.ranges[len(b.ranges)-1].Interval.Up, tol) {
				return i
			}
		}
	}
	if fallback != -1 {
		return fallback
	}
	return len(b.ranges)
}

// PeripheralAircraft returns the peripheral-at-level-L list computed
// during the last compute, or nil if level is out of range (spec.md
// 4.4).
func (b *Bands) PeripheralAircraft(level int) []TrafficAircraft {
	b.ensureFresh()
	if level < 0 || level >= len(b.peripheralAcs) {
		return nil
	}
	return b.peripheralAcs[level]
}

// TimeToRecovery returns the recovery_time computed by the last
// compute: NaN if no level was saturated, a finite time if recovery
// bands were synthesized, or -Inf if saturated but unrecoverable.
func (b *Bands) TimeToRecovery() float32 {
	b.ensureFresh()
	return b.recoveryTime
}

// ForceCompute recomputes unconditionally, bypassing the outdated
// check, matching spec.md 6's force_compute and the idempotence
// invariant of spec.md 8 (two consecutive ForceCompute calls with
// identical inputs yield byte-identical ranges and recovery_time).
func (b *Bands) ForceCompute() {
	b.outdated = true
	b.recompute()
}

// Reset discards the cache and any memoized DomainParams validation,
// forcing a full re-validation and recompute on the next query.
func (b *Bands) Reset() {
	b.domain.reset()
	b.outdated = true
	b.ranges = nil
	b.peripheralAcs = nil
	b.lastLevels = nil
	b.recoveryTime = math.NaN
}

// KinematicConflict reports whether some maneuver index within the
// current domain's [maxdown,maxup] produces a conflict against ac alone
// over [0,T] (spec.md 4.4, 6).
func (b *Bands) KinematicConflict(ac TrafficAircraft, detector Detector, t float32) bool {
	ownVal := b.own.OwnVal()
	maxdown, maxup := b.domain.Maxdown(ownVal), b.domain.Maxup(ownVal)
	return b.kinematicConflict(ac, detector, t, maxdown, maxup)
}

// InvalidReason returns the text of the last CheckInput failure, or ""
// if the configuration was valid as of the last compute (spec.md 7).
func (b *Bands) InvalidReason() string {
	b.ensureFresh()
	return b.invalidReason
}

///////////////////////////////////////////////////////////////////////////
// Parameter getters/setters (spec.md 6, delegating to DomainParams)

func (b *Bands) Domain() *DomainParams { return b.domain }

func (b *Bands) Params() CoreParams { return b.params }

// SetParams replaces the core parameter block and invalidates the
// cache.
func (b *Bands) SetParams(p CoreParams) {
	b.params = p
	b.outdated = true
}

///////////////////////////////////////////////////////////////////////////
// Diagnostics (SPEC_FULL.md 11)

// ConflictBandAt returns the raw none-set computed for alert level
// before compositing, and whether that level was part of the last
// compute (it may not have been, if recovery triggered at an earlier
// level).
func (b *Bands) ConflictBandAt(level int) (math.IntervalSet, bool) {
	b.ensureFresh()
	for _, ls := range b.lastLevels {
		if ls.level == level {
			return ls.none, true
		}
	}
	return nil, false
}

// Alerting reports whether the most severe region reached by the last
// compute is a conflict band.
func (b *Bands) Alerting() bool {
	b.ensureFresh()
	most := RegionUnknown
	for _, r := range b.ranges {
		if r.Region > most {
			most = r.Region
		}
	}
	return most.IsConflictBand()
}

// String renders a human-readable multi-line dump: one band per line,
// followed by a "Time to recovery" line (spec.md 6).
func (b *Bands) String() string {
	b.ensureFresh()
	var sb strings.Builder
	for _, r := range b.ranges {
		fmt.Fprintf(&sb, "[%v, %v]: %s\n", r.Interval.Low, r.Interval.Up, r.Region)
	}
	fmt.Fprintf(&sb, "Time to recovery: %s [s]\n", formatRecoveryTime(b.recoveryTime))
	return sb.String()
}

// BandDumpEntry is one machine-readable row of Bands.Dump.
type BandDumpEntry struct {
	Low, Up    float32
	Region     BandsRegion
	Conflict   bool
	Resolution bool
}

// Dump returns a structured, rounded-to-precision snapshot of the
// current ranges plus the recovery time, intended for golden-file
// diagnostics (SPEC_FULL.md 11).
func (b *Bands) Dump(precision int) ([]BandDumpEntry, float32) {
	b.ensureFresh()
	entries := make([]BandDumpEntry, len(b.ranges))
	for i, r := range b.ranges {
		entries[i] = BandDumpEntry{
			Low:        roundTo(r.Interval.Low, precision),
			Up:         roundTo(r.Interval.Up, precision),
			Region:     r.Region,
			Conflict:   r.Region.IsConflictBand(),
			Resolution: r.Region.IsResolutionBand(),
		}
	}
	return entries, roundTo(b.recoveryTime, precision)
}

func roundTo(v float32, precision int) float32 {
	if math.IsNaN(v) {
		return v
	}
	scale := float32(1)
	for i := 0; i < precision; i++ {
		scale *= 10
	}
	return math.Floor(v*scale+0.5) / scale
}

func formatRecoveryTime(t float32) string {
	switch {
	case math.IsNaN(t):
		return "N/A"
	case t == -math.Infinity:
		return "never"
	default:
		return fmt.Sprintf("%v", t)
	}
}

