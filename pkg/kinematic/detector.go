// pkg/kinematic/detector.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package kinematic supplies a concrete, linear-trajectory implementation
// of the pkg/bands collaborator interfaces (Detector, CylinderDetector,
// IntegerBandOracle). pkg/bands treats 3-D conflict detection and
// per-variable trajectory generation as the host application's
// responsibility (spec.md 1, 6); this package is the reference host that
// cmd/banddump drives, built the same way mmp-vice's pkg/aviation
// provides a concrete Nav implementation behind an abstract interface.
package kinematic

import (
	"github.com/rugby110/icarous/pkg/bands"
	"github.com/rugby110/icarous/pkg/math"
)

// CylinderDetector reports a conflict whenever two constant-velocity
// tracks come within a protected cylinder of horizontal radius D and
// half-height H of each other at some sampled instant in [b,t]. It
// satisfies both bands.Detector and bands.CylinderDetector.
type CylinderDetector struct {
	d, h float32

	// samples controls detection resolution; 0 defaults to 64, matching
	// the density pkg/bands's own test fakes use.
	samples int
}

// NewCylinderDetector constructs a CylinderDetector with horizontal
// radius d and half-height h (spec.md 6, "mk(D, H)").
func NewCylinderDetector(d, h float32) *CylinderDetector {
	return &CylinderDetector{d: d, h: h, samples: 64}
}

func (c *CylinderDetector) SetHorizontalSeparation(d float32) { c.d = d }
func (c *CylinderDetector) SetVerticalSeparation(h float32)   { c.h = h }
func (c *CylinderDetector) HorizontalSeparation() float32     { return c.d }
func (c *CylinderDetector) VerticalSeparation() float32       { return c.h }

// ConflictDetection samples the relative separation of the two tracks at
// evenly-spaced instants across [b,t] and reports the first sample that
// falls inside the cylinder. TimeOut is conservatively reported as t: a
// closed-form exit time would require solving the quadratic for when the
// horizontal separation re-exceeds d, which no caller in this package
// needs (only TimeIn drives bisection in pkg/bands).
func (c *CylinderDetector) ConflictDetection(sOwn, vOwn, sAc, vAc math.Vector3, b, t float32) bands.ConflictData {
	n := c.samples
	if n <= 0 {
		n = 64
	}
	for i := 0; i <= n; i++ {
		dt := b + (t-b)*float32(i)/float32(n)
		pOwn := math.Project(sOwn, vOwn, dt)
		pAc := math.Project(sAc, vAc, dt)
		if c.intrudes(pOwn, pAc) {
			return bands.ConflictData{Conflict: true, TimeIn: dt, TimeOut: t}
		}
	}
	return bands.ConflictData{}
}

var _ bands.CylinderDetector = (*CylinderDetector)(nil)

func (c *CylinderDetector) intrudes(a, b math.Vector3) bool {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	horiz := math.Sqrt(math.Sqr(dx) + math.Sqr(dy))
	return horiz < c.d && math.Abs(dz) < c.h
}
