package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/internal/observability"
	"github.com/signalsfoundry/footprint-geometry/kb"
	"github.com/signalsfoundry/footprint-geometry/model"
	"github.com/signalsfoundry/footprint-geometry/timectrl"
)

const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func newStation(t *testing.T, id string, lat, lon float64, mask ...model.MaskPoint) *model.Station {
	t.Helper()
	st, err := model.NewStation(id, id, geometry.GeodeticToCartesian(lat, lon, geometry.EarthRadiusKm), mask)
	if err != nil {
		t.Fatalf("NewStation: %v", err)
	}
	return st
}

func newRunner(t *testing.T, buf *bytes.Buffer, workers int) (*Runner, *observability.ProjectionCollector) {
	t.Helper()
	collector, err := observability.NewProjectionCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewProjectionCollector: %v", err)
	}
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: buf})
	return New(log, collector, workers), collector
}

func TestBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	var buf bytes.Buffer
	r, collector := newRunner(t, &buf, 3)

	mask := []model.MaskPoint{{AzimuthDeg: 0, ElevationDeg: 5}, {AzimuthDeg: 120, ElevationDeg: 5}, {AzimuthDeg: 240, ElevationDeg: 5}}
	stations := []*model.Station{
		newStation(t, "gs-a", 40, -3, mask...),
		newStation(t, "gs-b", 0, 0),
		newStation(t, "gs-c", -33, 151, mask...),
		newStation(t, "gs-d", 64, -147, model.MaskPoint{ElevationDeg: -10}),
		newStation(t, "gs-e", 10, 100, mask...),
	}
	orbit := model.OrbitConfig{SemimajorKm: 7000}

	results := r.Batch(context.Background(), orbit, stations)
	if len(results) != len(stations) {
		t.Fatalf("got %d results, want %d", len(results), len(stations))
	}
	for i, res := range results {
		if res.Station != stations[i] {
			t.Fatalf("result %d is for %q, want %q", i, res.Station.ID, stations[i].ID)
		}
	}
	for _, i := range []int{0, 2, 4} {
		if results[i].Err != nil || len(results[i].Points) != 3 {
			t.Fatalf("station %s: points=%d err=%v", stations[i].ID, len(results[i].Points), results[i].Err)
		}
	}
	if !errors.Is(results[1].Err, geometry.ErrInvalidInput) {
		t.Fatalf("empty mask should fail with ErrInvalidInput, got %v", results[1].Err)
	}
	if !errors.Is(results[3].Err, geometry.ErrInvalidGeometry) {
		t.Fatalf("negative elevation should fail with ErrInvalidGeometry, got %v", results[3].Err)
	}
	if results[1].Points != nil || results[3].Points != nil {
		t.Fatal("failed stations must not carry partial points")
	}

	if got := testutil.ToFloat64(collector.Projections.WithLabelValues(observability.KindVisibility, "ok")); got != 3 {
		t.Fatalf("ok projections = %v, want 3", got)
	}
	if !strings.Contains(buf.String(), "visibility batch finished") {
		t.Fatalf("missing batch summary log:\n%s", buf.String())
	}
}

func TestBatchCancelledContext(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newRunner(t, &buf, 1)

	stations := make([]*model.Station, 20)
	for i := range stations {
		stations[i] = newStation(t, "gs", float64(i), 0, model.MaskPoint{ElevationDeg: 10})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i, res := range r.Batch(ctx, model.OrbitConfig{SemimajorKm: 7000}, stations) {
		if res.Err == nil && len(res.Points) != 1 {
			t.Fatalf("result %d has neither points nor an error", i)
		}
		if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			t.Fatalf("result %d error = %v, want context.Canceled", i, res.Err)
		}
	}
}

func TestBatchCatalog(t *testing.T) {
	var buf bytes.Buffer
	r, collector := newRunner(t, &buf, 2)

	catalog := kb.NewCatalog()
	for _, id := range []string{"gs-2", "gs-1"} {
		if err := catalog.AddStation(newStation(t, id, 45, 45, model.MaskPoint{ElevationDeg: 10})); err != nil {
			t.Fatalf("AddStation: %v", err)
		}
	}

	results := r.BatchCatalog(context.Background(), model.OrbitConfig{SemimajorKm: 7000}, catalog)
	if len(results) != 2 || results[0].Station.ID != "gs-1" {
		t.Fatalf("unexpected results %+v", results)
	}
	if got := testutil.ToFloat64(collector.Stations); got != 2 {
		t.Fatalf("catalog gauge = %v, want 2", got)
	}
}

func TestWatchCatalog(t *testing.T) {
	var buf bytes.Buffer
	r, collector := newRunner(t, &buf, 1)

	catalog := kb.NewCatalog()
	if err := catalog.AddStation(newStation(t, "gs-0", 0, 0, model.MaskPoint{ElevationDeg: 10})); err != nil {
		t.Fatalf("AddStation: %v", err)
	}
	stop := r.WatchCatalog(catalog)
	if got := testutil.ToFloat64(collector.Stations); got != 1 {
		t.Fatalf("catalog gauge = %v, want 1", got)
	}

	for _, id := range []string{"gs-1", "gs-2"} {
		if err := catalog.AddStation(newStation(t, id, 10, 10, model.MaskPoint{ElevationDeg: 10})); err != nil {
			t.Fatalf("AddStation: %v", err)
		}
	}
	if got := testutil.ToFloat64(collector.Stations); got != 3 {
		t.Fatalf("catalog gauge = %v, want 3", got)
	}

	stop()
	if err := catalog.AddStation(newStation(t, "gs-3", 20, 20, model.MaskPoint{ElevationDeg: 10})); err != nil {
		t.Fatalf("AddStation: %v", err)
	}
	if got := testutil.ToFloat64(collector.Stations); got != 3 {
		t.Fatalf("catalog gauge moved after stop: %v", got)
	}
}

func TestFootprintFromTLE(t *testing.T) {
	var buf bytes.Buffer
	r, collector := newRunner(t, &buf, 1)
	ctx := context.Background()

	schedule, err := timectrl.NewSchedule(time.Date(2021, 10, 2, 0, 0, 0, 0, time.UTC), 30*time.Second, 5)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	track, err := r.TrackFromTLE(ctx, issLine1, issLine2, schedule)
	if err != nil {
		t.Fatalf("TrackFromTLE: %v", err)
	}

	fp, err := r.Footprint(ctx, model.OrbitConfig{SemimajorKm: 6796.7}, track, model.Attitude{ApertureDeg: 1})
	if err != nil {
		t.Fatalf("Footprint: %v", err)
	}
	if len(fp.Polygon) != 11 || !fp.Closed() {
		t.Fatalf("unexpected polygon with %d points", len(fp.Polygon))
	}
	if !fp.Samples[2].Time.Equal(schedule.At(2)) {
		t.Fatalf("sample time %v, want %v", fp.Samples[2].Time, schedule.At(2))
	}
	if got := testutil.ToFloat64(collector.Points.WithLabelValues(observability.KindFootprint)); got != 11 {
		t.Fatalf("footprint points gauge = %v, want 11", got)
	}
	if !strings.Contains(buf.String(), "swath_width_km") {
		t.Fatalf("missing footprint debug log:\n%s", buf.String())
	}
}

func TestFootprintFailureIsCounted(t *testing.T) {
	var buf bytes.Buffer
	r, collector := newRunner(t, &buf, 1)

	_, err := r.Footprint(context.Background(), model.OrbitConfig{SemimajorKm: 7000},
		[]model.TrackPoint{{Position: geometry.Vec3{X: 7000}}}, model.Attitude{ApertureDeg: 1})
	if !errors.Is(err, geometry.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := testutil.ToFloat64(collector.Projections.WithLabelValues(observability.KindFootprint, "invalid_input")); got != 1 {
		t.Fatalf("invalid_input outcome = %v, want 1", got)
	}
	if !strings.Contains(buf.String(), "footprint projection failed") {
		t.Fatalf("missing failure log:\n%s", buf.String())
	}
}

func TestTrackFromTLERejectsBadSchedule(t *testing.T) {
	r := New(nil, nil, 0)
	if _, err := r.TrackFromTLE(context.Background(), issLine1, issLine2, timectrl.Schedule{}); err == nil {
		t.Fatal("expected schedule validation error")
	}
}
