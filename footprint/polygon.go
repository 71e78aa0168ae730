package footprint

import (
	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Polygon walks the right edge forward, the left edge backward and closes on
// the first right-edge point. N samples give 2N+1 vertices.
func Polygon(samples []model.FootprintSample) []model.LonLat {
	if len(samples) == 0 {
		return nil
	}
	out := make([]model.LonLat, 0, 2*len(samples)+1)
	for _, s := range samples {
		out = append(out, s.RightLonLat)
	}
	for i := len(samples) - 1; i >= 0; i-- {
		out = append(out, samples[i].LeftLonLat)
	}
	return append(out, samples[0].RightLonLat)
}

// GroundTrack lists the nadir subpoints in track order followed by the same
// points reversed, so it can be drawn as a degenerate ring.
func GroundTrack(samples []model.FootprintSample) []model.LonLat {
	out := make([]model.LonLat, 0, 2*len(samples))
	for _, s := range samples {
		out = append(out, s.NadirLonLat)
	}
	for i := len(samples) - 1; i >= 0; i-- {
		out = append(out, samples[i].NadirLonLat)
	}
	return out
}

// SwathWidthKm is the great-circle distance between the two edges of a
// sample on the reference sphere.
func SwathWidthKm(s model.FootprintSample) float64 {
	return geometry.GreatCircleDistanceKm(
		s.RightLonLat.Lat, s.RightLonLat.Lon,
		s.LeftLonLat.Lat, s.LeftLonLat.Lon,
		geometry.EarthRadiusKm,
	)
}

// EdgeOffsetsKm returns the great-circle distances from the nadir subpoint to
// the right and left edges of a sample.
func EdgeOffsetsKm(s model.FootprintSample) (right, left float64) {
	right = geometry.GreatCircleDistanceKm(s.NadirLonLat.Lat, s.NadirLonLat.Lon, s.RightLonLat.Lat, s.RightLonLat.Lon, geometry.EarthRadiusKm)
	left = geometry.GreatCircleDistanceKm(s.NadirLonLat.Lat, s.NadirLonLat.Lon, s.LeftLonLat.Lat, s.LeftLonLat.Lon, geometry.EarthRadiusKm)
	return right, left
}
