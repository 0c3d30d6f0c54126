// pkg/bands/compositor.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"github.com/rugby110/icarous/pkg/math"
	"github.com/rugby110/icarous/pkg/util"
)

// levelNoneSet is a single alert level's none-set and the region it
// ultimately paints (spec.md 4.7, "Append (noneset, region) per level").
type levelNoneSet struct {
	level  int
	none   math.IntervalSet
	region BandsRegion
}

// recompute is the cached compute() entry point (spec.md 4.7). It is
// called lazily whenever b.outdated is set and a query needs fresh
// results; it clears b.outdated on entry so re-entrant calls within the
// same query are no-ops (spec.md 5).
func (b *Bands) recompute() {
	b.outdated = false
	b.recoveryTime = math.NaN
	b.ranges = nil
	for i := range b.peripheralAcs {
		b.peripheralAcs[i] = nil
	}
	b.logger.Recomputing(b.id.String())

	ownVal := b.own.OwnVal()
	el := b.domain.CheckInput(ownVal)
	if el.HaveErrors() {
		b.invalidReason = el.String()
		b.logger.InvalidConfiguration(b.id.String(), b.invalidReason)
		return
	}
	b.invalidReason = ""

	minVal, maxVal := b.domain.MinVal(ownVal), b.domain.MaxVal(ownVal)
	maxdown, maxup := b.domain.Maxdown(ownVal), b.domain.Maxup(ownVal)

	mostSevere := b.alertor.MostSevereAlertLevel()
	conflictLevel := b.alertor.ConflictAlertLevel()
	if cap(b.peripheralAcs) < mostSevere+1 {
		b.peripheralAcs = make([][]TrafficAircraft, mostSevere+1)
	} else {
		b.peripheralAcs = b.peripheralAcs[:mostSevere+1]
	}

	var levels []levelNoneSet
	recoveryTriggered := false
	lastLevel := 0

	for level := 1; level <= mostSevere && !recoveryTriggered; level++ {
		al := b.alertor.Level(level)
		if !al.Region.IsConflictBand() {
			continue
		}

		peripheral := b.classifyPeripheral(level, al.Detector, al.AlertingTime, b.traffic, maxdown, maxup)
		b.peripheralAcs[level] = peripheral
		conflictAcs := b.params.ConflictAircraft(level)

		var none math.IntervalSet
		if len(peripheral) == 0 && len(conflictAcs) == 0 {
			none = math.Full(minVal, maxVal)
			if b.domain.Mod() > 0 && minVal > maxVal {
				none = append(math.Full(minVal, b.domain.Mod()), math.Full(0, maxVal)...)
			}
		} else {
			none = b.computeNoneBands(level, al, al.LateAlertingTime, maxdown, maxup, ownVal, minVal, maxVal)
		}

		region := al.Region
		if none.IsEmpty() && b.domain.recovery && level == conflictLevel {
			none = b.computeRecoveryBands(level, al, maxdown, maxup, ownVal, minVal, maxVal)
			region = b.alertor.Level(b.alertor.LastGuidanceLevel()).Region
			recoveryTriggered = true
			lastLevel = level
			b.logger.RecoveryTriggered(b.id.String(), level, formatRecoveryTime(b.recoveryTime))
		}

		levels = append(levels, levelNoneSet{level: level, none: none, region: region})
	}

	b.lastLevels = levels
	b.ranges = b.colorBands(levels, minVal, maxVal, lastLevel, recoveryTriggered)
}

// colorBands synthesizes the final ranges list from the per-level
// none-sets (spec.md 4.7, "color_bands").
func (b *Bands) colorBands(levels []levelNoneSet, minVal, maxVal float32, lastLevel int,
	recoveryTriggered bool) []BandsRange {

	if len(levels) == 0 {
		return nil
	}

	// The outer color before any level paints over it is the most severe
	// region reached this compute.
	mostSevereRegion := levels[0].region
	for _, l := range levels {
		if l.region > mostSevereRegion {
			mostSevereRegion = l.region
		}
	}

	wrapped := b.domain.Mod() > 0 && minVal > maxVal
	var l1, l2 ColoredValueList
	if wrapped {
		l1 = newColoredValueList(minVal, b.domain.Mod(), mostSevereRegion)
		l2 = newColoredValueList(0, maxVal, mostSevereRegion)
	} else {
		l1 = newColoredValueList(minVal, maxVal, mostSevereRegion)
	}

	tol := math.DefaultTolerance

	// color_bands walks alert levels from most severe down to last_level
	// (spec.md 4.7); levels is stored in ascending severity, so iterate it
	// in reverse.
	for idx, ls := range util.SliceReverseValues2(levels) {
		if ls.level < lastLevel {
			continue
		}
		i := len(levels) - 1 - idx
		// boundaryColor is what reappears exactly at the none-set's right
		// edge: stepping past it re-enters this level's own conflict
		// region. interiorColor is what the none-set's interior (genuinely
		// conflict-free at this level) reveals underneath: NONE (or
		// RECOVERY, if this is the level recovery triggered at) once no
		// less-severe level remains to check, otherwise the next
		// less-severe level's region.
		boundaryColor := ls.region
		var interiorColor BandsRegion
		if i == len(levels)-1 || ls.level <= lastLevel {
			if recoveryTriggered && ls.level == lastLevel {
				interiorColor = RegionRecovery
			} else {
				interiorColor = RegionNone
			}
		} else {
			interiorColor = levels[indexBefore(levels, ls.level)].region
		}

		for _, iv := range ls.none {
			// A wrapped domain's none-sets never straddle the mod/0 seam
			// (toIntervalSet adds the two sides as separate segments), so
			// each interval belongs entirely to l1 (the [minVal,mod) arm)
			// or entirely to l2 (the [0,maxVal) arm).
			if wrapped && iv.Low < minVal {
				l2.Insert(iv.Low, iv.Up, interiorColor, boundaryColor, tol)
			} else {
				l1.Insert(iv.Low, iv.Up, interiorColor, boundaryColor, tol)
			}
		}
	}

	ranges := l1.ToBands()
	if wrapped {
		ranges = append(ranges, l2.ToBands()...)
	}
	return ranges
}

// indexBefore returns the index into levels of the entry whose level is
// the next less severe than lvl (i.e. lvl-1's slot), defaulting to the
// first entry if none matches exactly.
func indexBefore(levels []levelNoneSet, lvl int) int {
	for i, l := range levels {
		if l.level == lvl-1 {
			return i
		}
	}
	return 0
}
