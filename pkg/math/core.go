// pkg/math/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math"
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Mathematical Constants
const (
	Pi         = gomath.Pi
	InvPi      = 0.31830988618379067154
	Inv2Pi     = 0.15915494309189533577
	Inv4Pi     = 0.07957747154594766788
	PiOver2    = 1.57079632679489661923
	PiOver4    = 0.78539816339744830961
	FourOverPi = 1.27323949337005615234375
	Sqrt2      = 1.41421356237309504880
)

var Infinity float32 = float32(math.Inf(1))

// NaN is the sentinel "no recovery time computed yet" value (spec.md 4.6,
// "recovery_time = NaN").
var NaN float32 = float32(math.NaN())

// IsNaN reports whether f is NaN.
func IsNaN(f float32) bool {
	return math.IsNaN(float64(f))
}

// Degrees converts an angle expressed in radians to degrees
func Degrees(r float32) float32 {
	return r * 180 / Pi
}

// Radians converts an angle expressed in degrees to radians
func Radians(d float32) float32 {
	return d / 180 * Pi
}

func Sqrt(a float32) float32 {
	return float32(gomath.Sqrt(float64(a)))
}

func Sin(a float32) float32 {
	return float32(gomath.Sin(float64(a)))
}

func Cos(a float32) float32 {
	return float32(gomath.Cos(float64(a)))
}

// Atan2 returns the angle, in radians, between the positive x-axis and the
// vector (x, y).
func Atan2(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

func Floor(v float32) float32 {
	return float32(gomath.Floor(float64(v)))
}

func Ceil(v float32) float32 {
	return float32(gomath.Ceil(float64(v)))
}

// Abs returns the absolute value of x
func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// Sqr returns v*v, used in place of a manual v*v at squared-distance call
// sites (pkg/kinematic's CylinderDetector.intrudes).
func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

// Clamp restricts x to the range [low, high]
func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

