// pkg/bands/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bands

import "errors"

// Sentinel errors returned by NewBands for conditions that are
// programmer errors rather than part of the spec's degraded-query
// contract (an invalid DomainParams configuration is not one of these:
// it is reported through InvalidReason and degrades queries silently,
// per spec.md 7).
var (
	ErrNilOwnship  = errors.New("bands: ownship must not be nil")
	ErrNilAlertor  = errors.New("bands: alertor must not be nil")
	ErrNilOracle   = errors.New("bands: integer band oracle must not be nil")
	ErrNilDetector = errors.New("bands: alert level detector must not be nil")
)
