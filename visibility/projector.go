// Package visibility turns a ground station's azimuth/elevation visibility
// mask into the Earth-fixed positions a satellite at a given altitude would
// occupy along the boundary.
package visibility

import (
	"fmt"

	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/model"
)

// Point is the full result for one mask vertex.
type Point struct {
	Mask         model.MaskPoint
	SlantRangeKm float64
	Topocentric  geometry.Vec3 // station-local frame, km
	EarthFixed   geometry.Vec3 // absolute, km
}

// ProjectPoints computes one Point per mask vertex, in mask order. Either
// every point is returned or an error naming the first failing vertex.
func ProjectPoints(orbit model.OrbitConfig, station *model.Station) ([]Point, error) {
	if err := orbit.Validate(); err != nil {
		return nil, err
	}
	if station == nil {
		return nil, geometry.InvalidInput("station", "is nil")
	}
	if len(station.Mask) == 0 {
		return nil, geometry.InvalidInput("mask", "station %q has no visibility mask points", station.ID)
	}

	placement, err := NewPlacement(station)
	if err != nil {
		return nil, err
	}

	altitude := orbit.AltitudeKm()
	points := make([]Point, 0, len(station.Mask))
	for i, mp := range station.Mask {
		d, err := geometry.SlantRange(mp.ElevationDeg, altitude)
		if err != nil {
			return nil, fmt.Errorf("mask point %d (az %.3f, el %.3f): %w", i, mp.AzimuthDeg, mp.ElevationDeg, err)
		}
		local := geometry.SphericalToCartesian(mp.AzimuthDeg, mp.ElevationDeg, d)
		points = append(points, Point{
			Mask:         mp,
			SlantRangeKm: d,
			Topocentric:  local,
			EarthFixed:   placement.Place(local),
		})
	}
	return points, nil
}

// Project returns the Earth-fixed satellite positions (km) at the limit of
// the station's visibility mask, one per mask vertex in mask order.
func Project(orbit model.OrbitConfig, station *model.Station) ([]geometry.Vec3, error) {
	points, err := ProjectPoints(orbit, station)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Vec3, len(points))
	for i, p := range points {
		out[i] = p.EarthFixed
	}
	return out, nil
}
