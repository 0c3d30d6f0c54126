// pkg/kinematic/alertor.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematic

import "github.com/rugby110/icarous/pkg/bands"

// LadderAlertor is a concrete bands.Alertor with a configurable severity
// ladder of alert levels, each with its own detector and alerting times
// (spec.md 6's Alertor abstraction). Level 0 is the terminal recovery
// region painted when the conflict level saturates; levels 1..N are
// stored ascending least-to-most-severe, matching the convention
// pkg/bands's own test fakes use (fakeAlertor's single-level ladder,
// generalized here to the FAR/MID/NEAR three-level ladder spec.md 3's
// glossary names).
type LadderAlertor struct {
	levels       []bands.AlertLevel
	conflictAt   int
	lastGuidance int
}

// NewLadderAlertor builds a ladder from levels 1..len(levels), ascending
// severity. conflictAt selects which level's none-set, once empty,
// triggers recovery synthesis; it is typically len(levels) (the most
// severe level). lastGuidance selects the region painted for the
// recovery band itself (commonly 0, i.e. RegionRecovery).
func NewLadderAlertor(levels []bands.AlertLevel, conflictAt, lastGuidance int) *LadderAlertor {
	return &LadderAlertor{levels: levels, conflictAt: conflictAt, lastGuidance: lastGuidance}
}

func (a *LadderAlertor) MostSevereAlertLevel() int { return len(a.levels) }
func (a *LadderAlertor) ConflictAlertLevel() int   { return a.conflictAt }
func (a *LadderAlertor) LastGuidanceLevel() int    { return a.lastGuidance }

func (a *LadderAlertor) Level(i int) bands.AlertLevel {
	if i == 0 {
		return bands.AlertLevel{Region: bands.RegionRecovery}
	}
	if i < 1 || i > len(a.levels) {
		return bands.AlertLevel{}
	}
	return a.levels[i-1]
}

var _ bands.Alertor = (*LadderAlertor)(nil)
