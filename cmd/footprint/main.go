// Command footprint projects an instrument's ground footprint along a
// satellite track read from a file or propagated from a TLE.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/footprint-geometry/export"
	"github.com/signalsfoundry/footprint-geometry/internal/config"
	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/internal/observability"
	"github.com/signalsfoundry/footprint-geometry/internal/runner"
	"github.com/signalsfoundry/footprint-geometry/model"
	"github.com/signalsfoundry/footprint-geometry/scenario"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.NewFromEnv().Error(ctx, "footprint failed", logging.Err(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("footprint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional config file (yaml, json or toml)")
	trackPath := fs.String("track", "", "ground track JSON file; when empty the configured TLE is propagated")
	tle1 := fs.String("tle1", "", "TLE line 1 (overrides ephemeris.tle_line1)")
	tle2 := fs.String("tle2", "", "TLE line 2 (overrides ephemeris.tle_line2)")
	start := fs.String("start", "", "RFC 3339 propagation start (overrides ephemeris.start)")
	step := fs.Duration("step", 0, "propagation step (overrides ephemeris.step)")
	count := fs.Int("count", 0, "number of propagated samples (overrides ephemeris.count)")
	semimajor := fs.Float64("semimajor", 0, "orbit semimajor axis in km; derived from the TLE when unset")
	roll := fs.Float64("roll", 0, "roll in degrees")
	pitch := fs.Float64("pitch", 0, "pitch in degrees")
	yaw := fs.Float64("yaw", 0, "yaw in degrees")
	aperture := fs.Float64("aperture", 0, "instrument half-aperture in degrees")
	format := fs.String("format", "text", "output format: text, czml or geojson")
	name := fs.String("name", "footprint", "name used for CZML and GeoJSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tle1":
			cfg.Ephemeris.TLELine1 = *tle1
		case "tle2":
			cfg.Ephemeris.TLELine2 = *tle2
		case "start":
			cfg.Ephemeris.Start = *start
		case "step":
			cfg.Ephemeris.Step = *step
		case "count":
			cfg.Ephemeris.Count = *count
		case "semimajor":
			cfg.Orbit.SemimajorKm = *semimajor
		case "roll":
			cfg.Attitude.RollDeg = *roll
		case "pitch":
			cfg.Attitude.PitchDeg = *pitch
		case "yaw":
			cfg.Attitude.YawDeg = *yaw
		case "aperture":
			cfg.Attitude.ApertureDeg = *aperture
		case "format":
			cfg.Output.Format = *format
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *trackPath == "" && !cfg.Ephemeris.HasTLE() {
		return fmt.Errorf("either -track or a TLE (ephemeris.tle_line1/2) is required")
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = stderr
	ctx, log := logging.WithRunLogger(ctx, logging.New(logCfg))

	traceCfg := cfg.TracingConfig()
	traceCfg.Output = stderr
	shutdown, err := observability.InitTracing(ctx, traceCfg, log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	collector, err := observability.NewProjectionCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer func() {
		if cfg.Metrics.Textfile == "" {
			return
		}
		if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logging.Err(err))
		}
	}()

	orbit, err := cfg.OrbitModel()
	if err != nil {
		return err
	}
	att, err := cfg.AttitudeModel()
	if err != nil {
		return err
	}

	r := runner.New(log, collector, cfg.Workers)

	var track []model.TrackPoint
	if *trackPath != "" {
		track, err = scenario.LoadTrackFile(*trackPath)
	} else {
		schedule, serr := cfg.Ephemeris.Schedule()
		if serr != nil {
			return serr
		}
		track, err = r.TrackFromTLE(ctx, cfg.Ephemeris.TLELine1, cfg.Ephemeris.TLELine2, schedule)
	}
	if err != nil {
		return err
	}
	log.Info(ctx, "track ready",
		logging.Int("track_points", len(track)),
		logging.Float64("semimajor_km", orbit.SemimajorKm),
	)

	fp, err := r.Footprint(ctx, orbit, track, att)
	if err != nil {
		return err
	}

	switch cfg.Output.Format {
	case "czml":
		return export.WriteDocument(stdout, export.NewFootprintDocument(*name, fp))
	case "geojson":
		return export.WriteFeatures(stdout, export.NewFootprintFeatures(*name, fp))
	default:
		return export.WriteFootprintReport(stdout, fp)
	}
}
