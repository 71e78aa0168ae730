// Package runner wraps the pure projectors with logging, metrics and tracing
// and fans batch work out over a bounded worker pool.
package runner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/footprint-geometry/ephemeris"
	"github.com/signalsfoundry/footprint-geometry/footprint"
	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/internal/observability"
	"github.com/signalsfoundry/footprint-geometry/model"
	"github.com/signalsfoundry/footprint-geometry/timectrl"
	"github.com/signalsfoundry/footprint-geometry/visibility"
)

// Runner is safe for concurrent use; it holds no per-computation state.
type Runner struct {
	log     logging.Logger
	metrics *observability.ProjectionCollector
	tracer  trace.Tracer
	workers int
}

// New constructs a Runner. A nil logger logs nothing and nil metrics records
// nothing; workers below 1 means one worker.
func New(log logging.Logger, metrics *observability.ProjectionCollector, workers int) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		log:     log,
		metrics: metrics,
		tracer:  observability.Tracer(),
		workers: workers,
	}
}

func (r *Runner) logger(ctx context.Context) logging.Logger {
	if l := logging.LoggerFromContext(ctx); l != nil {
		return l
	}
	return r.log
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, observability.Outcome(err))
	}
	span.End()
}

// Visibility projects one station's mask.
func (r *Runner) Visibility(ctx context.Context, orbit model.OrbitConfig, station *model.Station) ([]visibility.Point, error) {
	ctx, span := r.tracer.Start(ctx, "visibility.Project", trace.WithAttributes(
		attribute.Float64("orbit.semimajor_km", orbit.SemimajorKm),
	))
	log := r.logger(ctx)
	if station != nil {
		span.SetAttributes(
			attribute.String("station.id", station.ID),
			attribute.Int("station.mask_points", len(station.Mask)),
		)
		log = log.With(logging.String("station_id", station.ID))
	}

	start := time.Now()
	points, err := visibility.ProjectPoints(orbit, station)
	r.metrics.Observe(observability.KindVisibility, start, len(points), err)
	endSpan(span, err)

	if err != nil {
		log.Warn(ctx, "visibility mask projection failed", logging.Err(err))
		return nil, err
	}
	log.Debug(ctx, "visibility mask projected",
		logging.Int("points", len(points)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return points, nil
}

// Footprint projects an instrument footprint along track.
func (r *Runner) Footprint(ctx context.Context, orbit model.OrbitConfig, track []model.TrackPoint, att model.Attitude) (*model.Footprint, error) {
	ctx, span := r.tracer.Start(ctx, "footprint.Project", trace.WithAttributes(
		attribute.Float64("orbit.semimajor_km", orbit.SemimajorKm),
		attribute.Int("track.points", len(track)),
		attribute.Float64("attitude.roll_deg", att.RollDeg),
		attribute.Float64("attitude.pitch_deg", att.PitchDeg),
		attribute.Float64("attitude.yaw_deg", att.YawDeg),
		attribute.Float64("attitude.aperture_deg", att.ApertureDeg),
	))
	log := r.logger(ctx)

	start := time.Now()
	fp, err := footprint.Project(orbit, track, att)
	n := 0
	if fp != nil {
		n = len(fp.Polygon)
	}
	r.metrics.Observe(observability.KindFootprint, start, n, err)
	endSpan(span, err)

	if err != nil {
		log.Warn(ctx, "footprint projection failed", logging.Err(err), logging.Int("track_points", len(track)))
		return nil, err
	}
	fields := []logging.Field{
		logging.Int("track_points", len(track)),
		logging.Int("polygon_points", n),
		logging.Duration("elapsed", time.Since(start)),
	}
	if len(fp.Samples) > 0 {
		fields = append(fields, logging.Float64("swath_width_km", footprint.SwathWidthKm(fp.Samples[0])))
	}
	log.Debug(ctx, "footprint projected", fields...)
	return fp, nil
}

// TrackFromTLE propagates a TLE over schedule and returns the ground track.
func (r *Runner) TrackFromTLE(ctx context.Context, line1, line2 string, schedule timectrl.Schedule) ([]model.TrackPoint, error) {
	ctx, span := r.tracer.Start(ctx, "ephemeris.Track", trace.WithAttributes(
		attribute.Int("schedule.count", schedule.Count),
		attribute.String("schedule.step", schedule.Step.String()),
	))
	track, err := r.trackFromTLE(line1, line2, schedule)
	endSpan(span, err)
	if err != nil {
		r.logger(ctx).Warn(ctx, "ephemeris track failed", logging.Err(err))
		return nil, err
	}
	r.logger(ctx).Debug(ctx, "ephemeris track generated",
		logging.Int("samples", len(track)),
		logging.String("start", schedule.Start.UTC().Format(time.RFC3339)),
		logging.String("end", schedule.End().UTC().Format(time.RFC3339)),
	)
	return track, nil
}

func (r *Runner) trackFromTLE(line1, line2 string, schedule timectrl.Schedule) ([]model.TrackPoint, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	provider, err := ephemeris.NewSGP4Provider(line1, line2)
	if err != nil {
		return nil, err
	}
	return ephemeris.Track(provider, schedule.Times())
}
