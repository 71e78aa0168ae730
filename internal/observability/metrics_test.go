package observability

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

func TestObserveRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewProjectionCollector(reg)
	if err != nil {
		t.Fatalf("NewProjectionCollector: %v", err)
	}

	collector.Observe(KindVisibility, time.Now().Add(-5*time.Millisecond), 36, nil)

	if got := testutil.ToFloat64(collector.Projections.WithLabelValues(KindVisibility, "ok")); got != 1 {
		t.Fatalf("geometry_projections_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Points.WithLabelValues(KindVisibility)); got != 36 {
		t.Fatalf("geometry_projection_points = %v, want 36", got)
	}
	if count := histogramSampleCount(t, reg, "geometry_projection_duration_seconds", map[string]string{
		"kind": KindVisibility,
	}); count != 1 {
		t.Fatalf("geometry_projection_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestObserveFailureKeepsLastPointCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewProjectionCollector(reg)
	if err != nil {
		t.Fatalf("NewProjectionCollector: %v", err)
	}

	collector.Observe(KindFootprint, time.Now(), 11, nil)
	failure := fmt.Errorf("track point 2: %w", &geometry.DegenerateAxisError{Context: "pitch axis"})
	collector.Observe(KindFootprint, time.Now(), 0, failure)

	if got := testutil.ToFloat64(collector.Projections.WithLabelValues(KindFootprint, "degenerate_axis")); got != 1 {
		t.Fatalf("degenerate_axis outcome = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Points.WithLabelValues(KindFootprint)); got != 11 {
		t.Fatalf("failed projection overwrote point gauge: %v", got)
	}
}

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&geometry.InvalidGeometryError{Quantity: "slant range"}, "invalid_geometry"},
		{&geometry.DegenerateAxisError{}, "degenerate_axis"},
		{geometry.InvalidInput("track", "too short"), "invalid_input"},
		{errors.New("disk full"), "error"},
	}
	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Fatalf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestCollectorReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewProjectionCollector(reg)
	if err != nil {
		t.Fatalf("first NewProjectionCollector: %v", err)
	}
	second, err := NewProjectionCollector(reg)
	if err != nil {
		t.Fatalf("second NewProjectionCollector: %v", err)
	}

	first.Observe(KindVisibility, time.Now(), 1, nil)
	if got := testutil.ToFloat64(second.Projections.WithLabelValues(KindVisibility, "ok")); got != 1 {
		t.Fatalf("second collector does not share counters: %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewProjectionCollector(reg)
	if err != nil {
		t.Fatalf("NewProjectionCollector: %v", err)
	}
	collector.SetStations(3)
	collector.Observe(KindFootprint, time.Now(), 11, nil)

	path := filepath.Join(t.TempDir(), "footprint.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	body := string(raw)
	for _, metric := range []string{
		"geometry_projections_total",
		"geometry_projection_duration_seconds",
		"geometry_projection_points",
		"geometry_catalog_stations 3",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in textfile output:\n%s", metric, body)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
