// cmd/banddump/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// banddump is a CLI front-end that loads a track-angle guidance-bands
// scenario from flags and prints the human-readable band dump
// (spec.md 6). It drives pkg/bands through pkg/kinematic's concrete
// linear-trajectory Detector/Oracle/Alertor, the same way
// cmd/wxgridviz is a thin CLI shell around a library package in the
// teacher repo.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rugby110/icarous/pkg/bands"
	"github.com/rugby110/icarous/pkg/kinematic"
	icaruslog "github.com/rugby110/icarous/pkg/log"
	"github.com/rugby110/icarous/pkg/math"
)

var cliLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

type options struct {
	ownX, ownY, ownZ    float32
	ownHeadingDeg       float32
	ownSpeed            float32
	ownVZ               float32
	traffic             []string
	step                float32

	farD, farH, farTime    float32
	midD, midH, midTime    float32
	nearD, nearH, nearTime float32

	nmacD, nmacH               float32
	minHRecovery, minVRecovery float32
	epsH, epsV                 float32
	recovery                   bool

	logLevel string
	logDir   string
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:   "banddump",
		Short: "Compute and print kinematic track-angle guidance bands for a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	fl := root.Flags()
	fl.Float32Var(&opts.ownX, "own-x", 0, "ownship position X (m)")
	fl.Float32Var(&opts.ownY, "own-y", 0, "ownship position Y (m)")
	fl.Float32Var(&opts.ownZ, "own-z", 0, "ownship position Z (m)")
	fl.Float32Var(&opts.ownHeadingDeg, "own-heading", 0, "ownship track angle (degrees, 0-360)")
	fl.Float32Var(&opts.ownSpeed, "own-speed", 100, "ownship ground speed (m/s)")
	fl.Float32Var(&opts.ownVZ, "own-vz", 0, "ownship vertical speed (m/s)")
	fl.StringArrayVar(&opts.traffic, "traffic", nil,
		"traffic aircraft as x,y,z,vx,vy,vz (repeatable)")
	fl.Float32Var(&opts.step, "step", 5, "track-angle band resolution (degrees)")

	fl.Float32Var(&opts.farD, "far-d", 10, "FAR level cylinder horizontal radius (m)")
	fl.Float32Var(&opts.farH, "far-h", 500, "FAR level cylinder half-height (m)")
	fl.Float32Var(&opts.farTime, "far-time", 90, "FAR level alerting time (s)")
	fl.Float32Var(&opts.midD, "mid-d", 5, "MID level cylinder horizontal radius (m)")
	fl.Float32Var(&opts.midH, "mid-h", 350, "MID level cylinder half-height (m)")
	fl.Float32Var(&opts.midTime, "mid-time", 55, "MID level alerting time (s)")
	fl.Float32Var(&opts.nearD, "near-d", 2, "NEAR level cylinder horizontal radius (m)")
	fl.Float32Var(&opts.nearH, "near-h", 200, "NEAR level cylinder half-height (m)")
	fl.Float32Var(&opts.nearTime, "near-time", 25, "NEAR level alerting time (s)")

	fl.Float32Var(&opts.nmacD, "nmac-d", 0.2, "NMAC protected cylinder horizontal radius (m)")
	fl.Float32Var(&opts.nmacH, "nmac-h", 30, "NMAC protected cylinder half-height (m)")
	fl.Float32Var(&opts.minHRecovery, "min-h-recovery", 1, "minimum horizontal recovery separation (m)")
	fl.Float32Var(&opts.minVRecovery, "min-v-recovery", 100, "minimum vertical recovery separation (m)")
	fl.Float32Var(&opts.epsH, "eps-h", 0, "horizontal criteria epsilon")
	fl.Float32Var(&opts.epsV, "eps-v", 0, "vertical criteria epsilon")
	fl.BoolVar(&opts.recovery, "recovery", true, "enable recovery band synthesis when NEAR saturates")

	fl.StringVar(&opts.logLevel, "loglevel", "info", "library log level: debug, info, warn, error")
	fl.StringVar(&opts.logDir, "logdir", "", "library log file directory")

	if err := root.Execute(); err != nil {
		cliLog.Error().Err(err).Msg("banddump failed")
		os.Exit(1)
	}
}

func run(opts *options) error {
	traffic, err := parseTraffic(opts.traffic)
	if err != nil {
		return fmt.Errorf("parsing --traffic: %w", err)
	}
	cliLog.Info().Int("traffic", len(traffic)).Msg("loaded scenario")

	own := kinematic.NewOwnship(opts.ownHeadingDeg, 1,
		math.Vector3{X: opts.ownX, Y: opts.ownY, Z: opts.ownZ},
		headingToVelocity(opts.ownHeadingDeg, opts.ownSpeed, opts.ownVZ))

	alertor := kinematic.NewLadderAlertor([]bands.AlertLevel{
		{Region: bands.RegionFar, Detector: kinematic.NewCylinderDetector(opts.farD, opts.farH),
			AlertingTime: opts.farTime, LateAlertingTime: opts.farTime},
		{Region: bands.RegionMid, Detector: kinematic.NewCylinderDetector(opts.midD, opts.midH),
			AlertingTime: opts.midTime, LateAlertingTime: opts.midTime},
		{Region: bands.RegionNear, Detector: kinematic.NewCylinderDetector(opts.nearD, opts.nearH),
			AlertingTime: opts.nearTime, LateAlertingTime: opts.nearTime},
	}, 3, 0)

	oracle := &kinematic.BruteForceOracle{Maneuver: kinematic.TrackManeuver, Scale: opts.step}

	domain := bands.NewDomainParams(0, 360, bands.WithMod(360), bands.WithStep(opts.step),
		bands.WithRecovery(opts.recovery))

	params := bands.CoreParams{
		EpsilonH:               opts.epsH,
		EpsilonV:                opts.epsV,
		MinHorizontalRecovery:   opts.minHRecovery,
		MinVerticalRecovery:     opts.minVRecovery,
		NmacD:                   opts.nmacD,
		NmacH:                   opts.nmacH,
		RecoveryStabilityTime:   1,
		ConflictAircraft:        func(level int) []bands.TrafficAircraft { return traffic },
		MakeCylinder: func(d, h float32) bands.CylinderDetector {
			return kinematic.NewCylinderDetector(d, h)
		},
	}

	logger := icaruslog.New(false, opts.logLevel, opts.logDir)

	b, err := bands.NewBands(own, traffic, alertor, oracle, domain, params, logger)
	if err != nil {
		return fmt.Errorf("constructing bands: %w", err)
	}

	fmt.Print(b.String())
	if b.Alerting() {
		cliLog.Warn().Msg("the bands include a conflict band")
	}
	return nil
}

// headingToVelocity converts a track angle in degrees and a ground
// speed into an X/Y velocity, holding vz fixed.
func headingToVelocity(headingDeg, speed, vz float32) math.Vector3 {
	h := math.Radians(headingDeg)
	return math.Vector3{X: speed * math.Cos(h), Y: speed * math.Sin(h), Z: vz}
}

// parseTraffic parses the repeated --traffic flag's "x,y,z,vx,vy,vz"
// entries into traffic aircraft.
func parseTraffic(raw []string) ([]bands.TrafficAircraft, error) {
	out := make([]bands.TrafficAircraft, 0, len(raw))
	for _, s := range raw {
		fields := strings.Split(s, ",")
		if len(fields) != 6 {
			return nil, fmt.Errorf("%q: want 6 comma-separated fields x,y,z,vx,vy,vz", s)
		}
		var v [6]float32
		for i, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", s, err)
			}
			v[i] = float32(n)
		}
		out = append(out, kinematic.NewTrafficAircraft(
			math.Vector3{X: v[0], Y: v[1], Z: v[2]},
			math.Vector3{X: v[3], Y: v[4], Z: v[5]}))
	}
	return out, nil
}
