// pkg/bands/domain.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import (
	"github.com/rugby110/icarous/pkg/math"
	"github.com/rugby110/icarous/pkg/util"
)

// minUnset is the sentinel set_rel leaves min/max at until the caller
// re-specifies them, since their meaning flips between relative and
// absolute framing (spec.md 9, "set_rel side effect").
var minUnset = math.Infinity

// DomainParams is the immutable-per-epoch configuration of the control
// variable's bounds (spec.md 3). Mutating any field through its setter
// resets the cache of whatever Bands owns this DomainParams, via the
// invalidate hook NewBands installs.
type DomainParams struct {
	min, max float32
	rel      bool
	mod      float32
	step     float32
	recovery bool

	checked  CheckedState
	circular bool

	invalidate func()
}

// DomainParamsOption configures a DomainParams at construction time, in
// the functional-options idiom the teacher uses for its Nav constructors.
type DomainParamsOption func(*DomainParams)

func WithRel(rel bool) DomainParamsOption  { return func(d *DomainParams) { d.rel = rel } }
func WithMod(mod float32) DomainParamsOption { return func(d *DomainParams) { d.mod = mod } }
func WithStep(step float32) DomainParamsOption {
	return func(d *DomainParams) { d.step = step }
}
func WithRecovery(recovery bool) DomainParamsOption {
	return func(d *DomainParams) { d.recovery = recovery }
}

// NewDomainParams constructs a DomainParams with the given bounds and
// options, defaulting step to 1 and everything else to its zero value
// (linear, non-relative, non-circular, recovery disabled).
func NewDomainParams(min, max float32, opts ...DomainParamsOption) *DomainParams {
	d := &DomainParams{min: min, max: max, step: 1, checked: CheckUnchecked}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *DomainParams) setInvalidateHook(f func()) { d.invalidate = f }

func (d *DomainParams) reset() {
	d.checked = CheckUnchecked
	if d.invalidate != nil {
		d.invalidate()
	}
}

func (d *DomainParams) Min() float32      { return d.min }
func (d *DomainParams) Max() float32      { return d.max }
func (d *DomainParams) Rel() bool         { return d.rel }
func (d *DomainParams) Mod() float32      { return d.mod }
func (d *DomainParams) Step() float32     { return d.step }
func (d *DomainParams) Recovery() bool    { return d.recovery }
func (d *DomainParams) Circular() bool    { return d.circular }

func (d *DomainParams) SetMin(v float32) {
	if v != d.min {
		d.min = v
		d.reset()
	}
}

func (d *DomainParams) SetMax(v float32) {
	if v != d.max {
		d.max = v
		d.reset()
	}
}

// SetRel flips relative/absolute framing. Since min/max mean different
// things in each framing, they are invalidated to minUnset and must be
// re-set by the caller before the next query will produce valid bands
// (spec.md 9).
func (d *DomainParams) SetRel(rel bool) {
	if rel != d.rel {
		d.rel = rel
		d.min, d.max = minUnset, minUnset
		d.reset()
	}
}

func (d *DomainParams) SetMod(v float32) {
	if v != d.mod {
		d.mod = v
		d.reset()
	}
}

func (d *DomainParams) SetStep(v float32) {
	if v != d.step {
		d.step = v
		d.reset()
	}
}

func (d *DomainParams) SetRecovery(v bool) {
	if v != d.recovery {
		d.recovery = v
		d.reset()
	}
}

// CheckInput validates the configuration preconditions of spec.md 3/4.2,
// memoized in d.checked, producing Circular as a side effect. It never
// panics; failures are accumulated in the returned ErrorLogger and leave
// d.checked == CheckInvalid. Once memoized as CheckInvalid, later calls
// report a single generic error instead of repeating the checks.
func (d *DomainParams) CheckInput(ownVal float32) *util.ErrorLogger {
	el := &util.ErrorLogger{}

	if d.checked != CheckUnchecked {
		if d.checked == CheckInvalid {
			el.ErrorString("configuration was rejected by an earlier check")
		}
		return el
	}

	valid := true
	if d.step <= 0 {
		el.ErrorString("step must be > 0, got %v", d.step)
		valid = false
	}
	if d.min == minUnset || d.max == minUnset {
		el.ErrorString("min/max must be re-specified after set_rel")
		valid = false
	} else if d.rel {
		if d.min > 0 || d.max < 0 {
			el.ErrorString("relative domain requires min <= 0 <= max, got [%v,%v]", d.min, d.max)
			valid = false
		}
	} else {
		if !math.AlmostLeq(d.min, ownVal, math.DefaultTolerance) || !math.AlmostLeq(ownVal, d.max, math.DefaultTolerance) {
			el.ErrorString("absolute domain requires min <= own_val <= max, got min=%v own_val=%v max=%v",
				d.min, ownVal, d.max)
			valid = false
		}
	}

	if valid && d.mod > 0 {
		span := d.max - d.min
		if math.AlmostGreater(span, d.mod, math.DefaultTolerance) {
			el.ErrorString("max-min (%v) exceeds modulus %v", span, d.mod)
			valid = false
		}
		limit := d.mod
		if d.rel {
			limit = d.mod / 2
		}
		if math.AlmostGreater(d.max, limit, math.DefaultTolerance) {
			el.ErrorString("max (%v) exceeds %v", d.max, limit)
			valid = false
		}
		d.circular = valid && math.AlmostEquals(span, d.mod, math.DefaultTolerance)
	} else {
		d.circular = false
	}

	if valid {
		d.checked = CheckValid
	} else {
		d.checked = CheckInvalid
	}
	return el
}

///////////////////////////////////////////////////////////////////////////
// Domain geometry (spec.md 4.1)

// MinVal returns the lower bound of the reachable range in absolute
// units, given the ownship's current value.
func (d *DomainParams) MinVal(ownVal float32) float32 {
	if d.circular {
		return 0
	}
	if d.rel {
		return math.Modulo(ownVal+d.min, d.modOrInf())
	}
	return d.min
}

// MaxVal returns the upper bound of the reachable range in absolute
// units, given the ownship's current value.
func (d *DomainParams) MaxVal(ownVal float32) float32 {
	if d.circular {
		return d.mod
	}
	if d.rel {
		return math.Modulo(ownVal+d.max, d.modOrInf())
	}
	return d.max
}

// MinRel returns how far below ownVal the reachable range extends.
func (d *DomainParams) MinRel(ownVal float32) float32 {
	if d.circular {
		return d.mod / 2
	}
	if d.rel {
		return -d.min
	}
	return math.Modulo(ownVal-d.min, d.modOrInf())
}

// MaxRel returns how far above ownVal the reachable range extends.
func (d *DomainParams) MaxRel(ownVal float32) float32 {
	if d.circular {
		return d.mod / 2
	}
	if d.rel {
		return d.max
	}
	return math.Modulo(d.max-ownVal, d.modOrInf())
}

func (d *DomainParams) modOrInf() float32 {
	if d.mod > 0 {
		return d.mod
	}
	return math.Infinity
}

// Maxdown returns the most negative integer maneuver index reachable
// below ownVal, i.e. the signed lower bound of the maneuver-index range
// the Integer-Band Oracle scans (spec.md 4.1, 4.3: "[lb_i, ub_i]").
func (d *DomainParams) Maxdown(ownVal float32) int {
	n := int(math.Ceil(d.MinRel(ownVal)/d.step)) + 1
	if d.mod > 0 && math.AlmostGreater(float32(n)*d.step, d.mod/2, math.DefaultTolerance) {
		n--
	}
	return -n
}

// Maxup returns the largest integer maneuver index reachable above
// ownVal.
func (d *DomainParams) Maxup(ownVal float32) int {
	n := int(math.Ceil(d.MaxRel(ownVal)/d.step)) + 1
	if d.mod > 0 && math.AlmostGreater(float32(n)*d.step, d.mod/2, math.DefaultTolerance) {
		n--
	}
	return n
}
