package model

import (
	"time"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// TrackPoint is one sample of a satellite ground track.
type TrackPoint struct {
	Position geometry.Vec3 // Earth-fixed, km
	Time     time.Time     // zero when the source carries no timestamps
}

// HasTime reports whether the sample is time-tagged.
func (p TrackPoint) HasTime() bool { return !p.Time.IsZero() }

// LonLat is a geographic coordinate in degrees.
type LonLat struct {
	Lon float64
	Lat float64
}

// ToLonLat converts an Earth-fixed point to spherical longitude/latitude.
func ToLonLat(p geometry.Vec3) LonLat {
	lat, lon := geometry.CartesianToGeodetic(p)
	return LonLat{Lon: lon, Lat: lat}
}
