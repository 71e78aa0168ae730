// Command visibility-mask prints the Earth-fixed satellite positions at the
// limit of one or more ground stations' visibility masks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/footprint-geometry/export"
	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/internal/config"
	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/internal/observability"
	"github.com/signalsfoundry/footprint-geometry/internal/runner"
	"github.com/signalsfoundry/footprint-geometry/kb"
	"github.com/signalsfoundry/footprint-geometry/scenario"
)

type pathList []string

func (p *pathList) String() string     { return strings.Join(*p, ",") }
func (p *pathList) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.NewFromEnv().Error(ctx, "visibility-mask failed", logging.Err(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("visibility-mask", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var stations pathList
	fs.Var(&stations, "station", "path to a ground configuration XML file (repeatable)")
	configPath := fs.String("config", "", "optional config file (yaml, json or toml)")
	semimajor := fs.Float64("semimajor", 0, "orbit semimajor axis in km (overrides orbit.semimajor_km)")
	scale := fs.Bool("scale", true, "print positions in metres instead of km")
	format := fs.String("format", "text", "output format: text, czml or geojson")
	workers := fs.Int("workers", 4, "number of stations projected in parallel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("at least one -station is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "semimajor":
			cfg.Orbit.SemimajorKm = *semimajor
		case "scale":
			cfg.Output.Scale = *scale
		case "format":
			cfg.Output.Format = *format
		case "workers":
			cfg.Workers = *workers
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
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

	orbit, err := cfg.OrbitModel()
	if err != nil {
		return err
	}

	r := runner.New(log, collector, cfg.Workers)
	catalog := kb.NewCatalog()
	defer r.WatchCatalog(catalog)()
	for _, path := range stations {
		loaded, err := scenario.LoadStationFile(path)
		if err != nil {
			return err
		}
		if err := catalog.AddStations(loaded); err != nil {
			return err
		}
	}
	log.Info(ctx, "stations loaded",
		logging.Int("stations", catalog.Len()),
		logging.Float64("semimajor_km", orbit.SemimajorKm),
		logging.Float64("altitude_km", orbit.AltitudeKm()),
	)

	results := r.BatchCatalog(ctx, orbit, catalog)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Error(ctx, "station skipped", logging.String("station_id", res.Station.ID), logging.Err(res.Err))
			continue
		}
		if err := write(stdout, cfg, res, len(results) > 1); err != nil {
			return err
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logging.Err(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d stations failed", failed, len(results))
	}
	return nil
}

func write(w io.Writer, cfg *config.Config, res runner.StationResult, header bool) error {
	points := make([]geometry.Vec3, len(res.Points))
	for i, p := range res.Points {
		points[i] = p.EarthFixed
	}

	switch cfg.Output.Format {
	case "czml":
		return export.WriteDocument(w, export.NewVisibilityDocument(res.Station.ID, points))
	case "geojson":
		return export.WriteFeatures(w, export.NewVisibilityFeatures(res.Station, points))
	default:
		if header {
			if _, err := fmt.Fprintf(w, "# %s\n", res.Station.ID); err != nil {
				return err
			}
		}
		scale := 1.0
		if cfg.Output.Scale {
			scale = export.KmToM
		}
		return export.WritePositions(w, points, scale)
	}
}
