// pkg/bands/colored.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"sort"

	"github.com/rugby110/icarous/pkg/math"
)

// ColoredValue is a single (value, region) breakpoint in a piecewise-
// constant coloring of the control variable (spec.md 3). A sorted
// ColoredValueList represents the coloring: entry i's Region is the color
// of the half-open segment [Val_i, Val_{i+1}), except for the final
// entry, whose Val marks the end of the domain and whose Region is not
// itself the start of a new segment.
type ColoredValue struct {
	Val    float32
	Region BandsRegion
}

type ColoredValueList []ColoredValue

// newColoredValueList initializes the two-element list covering
// [lo,hi] with a single uniform region, the starting point for
// color_bands before any level's none-set has been painted over it
// (spec.md 4.7, "Endpoints are painted with the most-severe region").
func newColoredValueList(lo, hi float32, region BandsRegion) ColoredValueList {
	return ColoredValueList{{Val: lo, Region: region}, {Val: hi, Region: region}}
}

// indexAtOrBefore returns the index of the last breakpoint with
// Val <= v (within tolerance), which is always valid since the list's
// first entry's Val is the domain minimum.
func (l ColoredValueList) indexAtOrBefore(v, tolerance float32) int {
	idx := sort.Search(len(l), func(i int) bool {
		return math.AlmostGreater(l[i].Val, v, tolerance)
	})
	if idx > 0 {
		idx--
	}
	return idx
}

// ensureBreakpoint splits the segment containing v, if necessary, so
// that a breakpoint exists exactly at v; the newly-split-off segment
// inherits the color that was in effect at v beforehand. It returns the
// index of the (possibly new) breakpoint at v.
func (l *ColoredValueList) ensureBreakpoint(v, tolerance float32) int {
	idx := l.indexAtOrBefore(v, tolerance)
	if math.AlmostEquals((*l)[idx].Val, v, tolerance) {
		return idx
	}
	// Split: insert a new entry right after idx carrying idx's color.
	color := (*l)[idx].Region
	*l = append(*l, ColoredValue{})
	copy((*l)[idx+2:], (*l)[idx+1:len(*l)-1])
	(*l)[idx+1] = ColoredValue{Val: v, Region: color}
	return idx + 1
}

// Insert paints [a,b] so that the open interior (a,b) becomes lbColor and
// the breakpoint at b takes ubColor (spec.md 3). Since a breakpoint's
// Region colors the segment that starts there, the span from b up to the
// next breakpoint becomes ubColor as well; when b is the list's last entry
// only that end marker changes. a and b must already lie within the
// list's domain (i.e. between its first and last Val).
func (l *ColoredValueList) Insert(a, b float32, lbColor, ubColor BandsRegion, tolerance float32) {
	if a > b {
		return
	}
	ia := l.ensureBreakpoint(a, tolerance)
	ib := l.ensureBreakpoint(b, tolerance)

	// Drop every breakpoint strictly between a and b: the whole span is
	// being repainted as a single new region.
	if ib > ia+1 {
		*l = append((*l)[:ia+1], (*l)[ib:]...)
		ib = ia + 1
	}

	(*l)[ia].Region = lbColor
	if ib < len(*l) {
		(*l)[ib].Region = ubColor
	}
}

// ToBands collapses the breakpoint list into maximal same-color
// BandsRange intervals (spec.md 3, "toBands"). Each entry l[i], for
// i < len(l)-1, describes the segment [l[i].Val, l[i+1].Val]; adjacent
// segments with the same region are merged into one band.
func (l ColoredValueList) ToBands() []BandsRange {
	if len(l) < 2 {
		return nil
	}
	var out []BandsRange
	start := l[0].Val
	color := l[0].Region
	for i := 1; i < len(l)-1; i++ {
		if l[i].Region != color {
			out = append(out, BandsRange{Interval: math.Interval{Low: start, Up: l[i].Val}, Region: color})
			start = l[i].Val
			color = l[i].Region
		}
	}
	out = append(out, BandsRange{Interval: math.Interval{Low: start, Up: l[len(l)-1].Val}, Region: color})
	return out
}

// BandsRange is a single labeled sub-interval of the control variable
// (spec.md 3).
type BandsRange struct {
	Interval math.Interval
	Region   BandsRegion
}
