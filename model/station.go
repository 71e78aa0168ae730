package model

import (
	"math"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// MaskPoint is one vertex of a station's visibility boundary. The order of
// mask points around the boundary defines polygon connectivity.
type MaskPoint struct {
	AzimuthDeg   float64
	ElevationDeg float64
}

// Station is a ground station with its Earth-fixed position and visibility
// mask. Build it with NewStation and treat it as read-only afterwards.
type Station struct {
	ID   string
	Name string

	Position geometry.Vec3 // Earth-fixed, km
	LatDeg   float64       // spherical latitude derived from Position
	LonDeg   float64       // spherical longitude derived from Position

	Mask []MaskPoint
}

// NewStation validates the inputs, derives latitude/longitude once and copies
// the mask so later changes to the caller's slice are not observed.
func NewStation(id, name string, position geometry.Vec3, mask []MaskPoint) (*Station, error) {
	if !position.IsFinite() {
		return nil, geometry.InvalidInput("station position", "must be finite, got %+v", position)
	}
	if position.Norm() == 0 {
		return nil, geometry.InvalidInput("station position", "must not be the Earth's centre")
	}
	for i, p := range mask {
		if math.IsNaN(p.AzimuthDeg) || math.IsInf(p.AzimuthDeg, 0) ||
			math.IsNaN(p.ElevationDeg) || math.IsInf(p.ElevationDeg, 0) {
			return nil, geometry.InvalidInput("mask", "point %d is not finite: %+v", i, p)
		}
		if p.ElevationDeg > 90 || p.ElevationDeg < -90 {
			return nil, geometry.InvalidInput("mask", "point %d elevation %v outside [-90, 90]", i, p.ElevationDeg)
		}
	}

	lat, lon := geometry.CartesianToGeodetic(position)
	return &Station{
		ID:       id,
		Name:     name,
		Position: position,
		LatDeg:   lat,
		LonDeg:   lon,
		Mask:     append([]MaskPoint(nil), mask...),
	}, nil
}
