package visibility

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

func TestProjectZenithLiesOnStationRadial(t *testing.T) {
	pos := geometry.Vec3{X: 1000, Y: 200, Z: 6000}
	st, err := model.NewStation("gs-1", "zenith", pos, []model.MaskPoint{{AzimuthDeg: 0, ElevationDeg: 90}})
	if err != nil {
		t.Fatalf("NewStation: %v", err)
	}
	orbit, err := model.NewOrbitConfig(7000)
	if err != nil {
		t.Fatalf("NewOrbitConfig: %v", err)
	}

	points, err := ProjectPoints(orbit, st)
	if err != nil {
		t.Fatalf("ProjectPoints: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}

	altitude := 7000 - geometry.EarthRadiusKm
	if math.Abs(points[0].SlantRangeKm-altitude) > 1e-9 {
		t.Fatalf("slant range = %v, want %v", points[0].SlantRangeKm, altitude)
	}

	offset := points[0].EarthFixed.Sub(pos)
	if offset.Cross(pos).Norm()/(offset.Norm()*pos.Norm()) > 1e-12 {
		t.Fatalf("offset %+v is not parallel to station radial %+v", offset, pos)
	}
	if offset.Dot(pos) <= 0 {
		t.Fatalf("offset %+v points toward the Earth's centre", offset)
	}
	assertVecNear(t, "earth fixed", points[0].EarthFixed, pos.Add(pos.Unit().Scale(altitude)), 1e-6)
}

func TestProjectPreservesMaskOrder(t *testing.T) {
	mask := []model.MaskPoint{
		{AzimuthDeg: 0, ElevationDeg: 10},
		{AzimuthDeg: 90, ElevationDeg: 5},
		{AzimuthDeg: 180, ElevationDeg: 20},
		{AzimuthDeg: 270, ElevationDeg: 0},
	}
	st := mustStation(t, 0, 0, mask...)
	orbit := model.OrbitConfig{SemimajorKm: 7000}

	got, err := Project(orbit, st)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(got) != len(mask) {
		t.Fatalf("expected %d points, got %d", len(mask), len(got))
	}

	// Station on the equator at lon 0: north is +Z and east is +Y.
	if got[0].Z <= 0 {
		t.Fatalf("north mask point should have +Z, got %+v", got[0])
	}
	if got[1].Y <= 0 {
		t.Fatalf("east mask point should have +Y, got %+v", got[1])
	}
	if got[2].Z >= 0 {
		t.Fatalf("south mask point should have -Z, got %+v", got[2])
	}
	if got[3].Y >= 0 {
		t.Fatalf("west mask point should have -Y, got %+v", got[3])
	}

	for i, p := range got {
		if r := p.Norm(); math.Abs(r-7000) > 1e-6 {
			t.Fatalf("point %d radius = %v, want 7000", i, r)
		}
	}
}

func TestProjectBelowHorizonAtZeroAltitude(t *testing.T) {
	st := mustStation(t, 10, 20,
		model.MaskPoint{AzimuthDeg: 0, ElevationDeg: 30},
		model.MaskPoint{AzimuthDeg: 90, ElevationDeg: -45},
	)
	orbit := model.OrbitConfig{SemimajorKm: geometry.EarthRadiusKm}

	got, err := Project(orbit, st)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %d points", len(got))
	}
	var ige *geometry.InvalidGeometryError
	if !errors.As(err, &ige) {
		t.Fatalf("expected *InvalidGeometryError, got %T", err)
	}
	if ige.AngleDeg != -45 {
		t.Fatalf("error angle = %v, want -45", ige.AngleDeg)
	}
}

func TestProjectRejectsBadInput(t *testing.T) {
	st := mustStation(t, 0, 0, model.MaskPoint{ElevationDeg: 10})
	empty := mustStation(t, 0, 0)

	cases := []struct {
		name    string
		orbit   model.OrbitConfig
		station *model.Station
	}{
		{"empty mask", model.OrbitConfig{SemimajorKm: 7000}, empty},
		{"nil station", model.OrbitConfig{SemimajorKm: 7000}, nil},
		{"zero semimajor", model.OrbitConfig{}, st},
		{"nan semimajor", model.OrbitConfig{SemimajorKm: math.NaN()}, st},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Project(tc.orbit, tc.station); !errors.Is(err, geometry.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
