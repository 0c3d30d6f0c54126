// pkg/bands/domain_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "testing"

func TestDomainParamsGeometryLinear(t *testing.T) {
	d := NewDomainParams(-10, 10, WithRel(true), WithStep(1))
	ownVal := float32(0)
	if got := d.MinVal(ownVal); got != -10 {
		t.Errorf("MinVal = %v, want -10", got)
	}
	if got := d.MaxVal(ownVal); got != 10 {
		t.Errorf("MaxVal = %v, want 10", got)
	}
	if got := d.Maxdown(ownVal); got != -11 {
		t.Errorf("Maxdown = %v, want -11", got)
	}
	if got := d.Maxup(ownVal); got != 11 {
		t.Errorf("Maxup = %v, want 11", got)
	}
}

func TestDomainParamsCircular(t *testing.T) {
	d := NewDomainParams(0, 360, WithMod(360), WithStep(1))
	el := d.CheckInput(90)
	if el.HaveErrors() {
		t.Fatalf("unexpected validation errors: %v", el)
	}
	if !d.Circular() {
		t.Errorf("expected circular domain")
	}
	if got := d.MinVal(90); got != 0 {
		t.Errorf("MinVal = %v, want 0", got)
	}
	if got := d.MaxVal(90); got != 360 {
		t.Errorf("MaxVal = %v, want 360", got)
	}
}

func TestDomainParamsInvalidAbsoluteBounds(t *testing.T) {
	// spec.md S3: min > max under absolute framing is invalid.
	d := NewDomainParams(350, 10, WithMod(360), WithStep(1))
	el := d.CheckInput(0)
	if !el.HaveErrors() {
		t.Fatalf("expected validation error for min>max absolute domain")
	}
}

func TestDomainParamsRelativeWrap(t *testing.T) {
	// spec.md S4: relative domain with wrap.
	d := NewDomainParams(-30, 30, WithRel(true), WithMod(360), WithStep(1))
	el := d.CheckInput(5)
	if el.HaveErrors() {
		t.Fatalf("unexpected validation errors: %v", el)
	}
	if got := d.MinVal(5); got != 335 {
		t.Errorf("MinVal = %v, want 335", got)
	}
	if got := d.MaxVal(5); got != 35 {
		t.Errorf("MaxVal = %v, want 35", got)
	}
}

func TestDomainParamsCacheInvalidation(t *testing.T) {
	invalidated := 0
	d := NewDomainParams(-10, 10, WithRel(true))
	d.setInvalidateHook(func() { invalidated++ })
	d.SetMin(-10) // unchanged
	if invalidated != 0 {
		t.Errorf("unchanged SetMin invalidated cache, want no-op")
	}
	d.SetMin(-5) // changed
	if invalidated != 1 {
		t.Errorf("changed SetMin did not invalidate cache")
	}
}

func TestDomainParamsSetRelInvalidatesBounds(t *testing.T) {
	d := NewDomainParams(-10, 10, WithRel(true))
	d.SetRel(false)
	el := d.CheckInput(0)
	if !el.HaveErrors() {
		t.Fatalf("expected min/max-unset error after SetRel")
	}
}
