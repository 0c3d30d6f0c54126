// pkg/math/tolerance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// DefaultTolerance is the absolute tolerance used throughout the band
// synthesis code whenever two floating-point values that should coincide
// in exact arithmetic need to be compared. Band endpoints accumulate
// rounding error from scale/offset conversions and bisection, so a strict
// '<' or '==' would make adjacent bands fail to merge or boundary queries
// fail to match.
const DefaultTolerance float32 = 1e-5

// AlmostEquals reports whether a and b differ by no more than the given
// absolute tolerance.
func AlmostEquals(a, b, tolerance float32) bool {
	return Abs(a-b) <= tolerance
}

// AlmostLeq reports whether a <= b, treating values within tolerance of
// each other as equal.
func AlmostLeq(a, b, tolerance float32) bool {
	return a <= b || AlmostEquals(a, b, tolerance)
}

// AlmostGreater reports whether a > b once near-equal values (within
// tolerance) are excluded.
func AlmostGreater(a, b, tolerance float32) bool {
	return a > b && !AlmostEquals(a, b, tolerance)
}

// Modulo reduces v into the half-open interval [0, m). Unlike Mod, the
// result is never negative: Modulo(-10, 360) is 350, not -10.  m <= 0 or
// an infinite m is treated as "no wrap" and v is returned unchanged,
// mirroring the convention that a zero modulus disables circular domains
// entirely.
func Modulo(v, m float32) float32 {
	if m <= 0 || m == Infinity {
		return v
	}
	r := Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

// AlmostEqualsMod reports whether a and b denote the same point on a
// circle of circumference m (m <= 0 is treated as a non-wrapping line, so
// it degrades to AlmostEquals). Values on opposite sides of the 0/m seam,
// e.g. a=0.0001 and b=m-0.0001, are correctly treated as close.
func AlmostEqualsMod(a, b, m, tolerance float32) bool {
	if m <= 0 {
		return AlmostEquals(a, b, tolerance)
	}
	d := Abs(Modulo(a, m) - Modulo(b, m))
	return d <= tolerance || Abs(d-m) <= tolerance
}
