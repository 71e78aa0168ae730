package geometry

import (
	"math"
	"testing"
)

func TestGeodeticRoundTrip(t *testing.T) {
	for lat := -88.5; lat < 89; lat += 7.25 {
		for lon := -180.0; lon < 180; lon += 11.5 {
			for _, r := range []float64{0.5, EarthRadiusKm, 42164} {
				p := GeodeticToCartesian(lat, lon, r)
				gotLat, gotLon := CartesianToGeodetic(p)
				if math.Abs(gotLat-lat) > 1e-6 || math.Abs(gotLon-lon) > 1e-6 {
					t.Fatalf("round trip (%v, %v, %v) -> (%v, %v)", lat, lon, r, gotLat, gotLon)
				}
				if math.Abs(p.Norm()-r) > 1e-9*r {
					t.Fatalf("radius = %v, want %v", p.Norm(), r)
				}
			}
		}
	}
}

func TestSphericalToCartesianConvention(t *testing.T) {
	tests := []struct {
		name   string
		az, el float64
		want   Vec3
	}{
		{"zenith", 0, 90, Vec3{Z: 1}},
		{"north", 0, 0, Vec3{X: 1}},
		{"east", 90, 0, Vec3{Y: -1}},
		{"south", 180, 0, Vec3{X: -1}},
		{"west", 270, 0, Vec3{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecNear(t, SphericalToCartesian(tt.az, tt.el, 1), tt.want, 1e-12)
		})
	}
}

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{180, -180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{540, -180},
	}
	for _, tt := range tests {
		if got := NormalizeLongitude(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizeLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSurfacePoint(t *testing.T) {
	p := SurfacePoint(Vec3{X: 4116.4, Y: 538.0, Z: 5432.2})
	if math.Abs(p.Norm()-EarthRadiusKm) > 1e-9 {
		t.Fatalf("surface point radius = %v, want %v", p.Norm(), EarthRadiusKm)
	}
	if p.AngleDegrees(Vec3{X: 4116.4, Y: 538.0, Z: 5432.2}) > 1e-9 {
		t.Fatalf("surface point is not radial")
	}
}

func TestGreatCircleDistanceQuarter(t *testing.T) {
	got := GreatCircleDistanceKm(0, 0, 0, 90, EarthRadiusKm)
	want := EarthRadiusKm * math.Pi / 2
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", got, want)
	}
}
