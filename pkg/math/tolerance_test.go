// pkg/math/tolerance_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestModulo(t *testing.T) {
	cases := []struct{ v, m, want float32 }{
		{-10, 360, 350},
		{370, 360, 10},
		{0, 360, 0},
		{5, 0, 5},
	}
	for _, c := range cases {
		if got := Modulo(c.v, c.m); !AlmostEquals(got, c.want, DefaultTolerance) {
			t.Errorf("Modulo(%v,%v) = %v, want %v", c.v, c.m, got, c.want)
		}
	}
}

func TestAlmostEqualsMod(t *testing.T) {
	if !AlmostEqualsMod(0.00001, 359.99999, 360, DefaultTolerance) {
		t.Errorf("expected values straddling the 0/360 seam to be considered equal")
	}
	if AlmostEqualsMod(10, 20, 360, DefaultTolerance) {
		t.Errorf("10 and 20 should not be considered equal mod 360")
	}
}
