package observability

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// Projection kinds used as the "kind" label.
const (
	KindVisibility = "visibility_mask"
	KindFootprint  = "footprint"
)

// ProjectionCollector bundles Prometheus metrics for projector runs.
type ProjectionCollector struct {
	gatherer prometheus.Gatherer

	Projections *prometheus.CounterVec
	Durations   *prometheus.HistogramVec
	Points      *prometheus.GaugeVec
	Stations    prometheus.Gauge
}

// NewProjectionCollector registers projection metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewProjectionCollector(reg prometheus.Registerer) (*ProjectionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	projections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geometry_projections_total",
		Help: "Total number of projector invocations, labeled by kind and outcome.",
	}, []string{"kind", "outcome"})
	projections, err := registerCounterVec(reg, projections, "geometry_projections_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geometry_projection_duration_seconds",
		Help:    "Projector latency in seconds.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"kind"})
	durations, err = registerHistogramVec(reg, durations, "geometry_projection_duration_seconds")
	if err != nil {
		return nil, err
	}

	points := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "geometry_projection_points",
		Help: "Number of points produced by the most recent successful projection.",
	}, []string{"kind"})
	points, err = registerGaugeVec(reg, points, "geometry_projection_points")
	if err != nil {
		return nil, err
	}

	stations, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "geometry_catalog_stations",
		Help: "Current number of stations in the catalog.",
	}), "geometry_catalog_stations")
	if err != nil {
		return nil, err
	}

	return &ProjectionCollector{
		gatherer:    gatherer,
		Projections: projections,
		Durations:   durations,
		Points:      points,
		Stations:    stations,
	}, nil
}

// Observe records one projector invocation that started at start.
func (c *ProjectionCollector) Observe(kind string, start time.Time, points int, err error) {
	if c == nil {
		return
	}
	c.Projections.WithLabelValues(kind, Outcome(err)).Inc()
	c.Durations.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil {
		c.Points.WithLabelValues(kind).Set(float64(points))
	}
}

// SetStations updates the catalog size gauge.
func (c *ProjectionCollector) SetStations(n int) {
	if c == nil {
		return
	}
	c.Stations.Set(float64(n))
}

// WriteTextfile dumps every gathered metric to path in the text exposition
// format read by the node exporter's textfile collector.
func (c *ProjectionCollector) WriteTextfile(path string) error {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Outcome maps a projector error onto a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, geometry.ErrInvalidGeometry):
		return "invalid_geometry"
	case errors.Is(err, geometry.ErrDegenerateAxis):
		return "degenerate_axis"
	case errors.Is(err, geometry.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
