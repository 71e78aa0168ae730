package model

import (
	"time"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// FootprintSample holds the per-track-point geometry behind a footprint.
type FootprintSample struct {
	Time time.Time

	Nadir        geometry.Vec3 // sub-satellite point on the reference sphere
	PitchShifted geometry.Vec3 // nadir moved along track by the pitch correction
	Center       geometry.Vec3 // ground point of the roll ray (diagnostic)
	Right        geometry.Vec3
	Left         geometry.Vec3

	NadirLonLat  LonLat
	CenterLonLat LonLat
	RightLonLat  LonLat
	LeftLonLat   LonLat
}

// Footprint is the ground coverage of an instrument along a track.
//
// Polygon holds the right edge in track order, the left edge in reverse track
// order and the first right-edge point again, so it is closed and has 2N+1
// points for an N-point track. GroundTrack holds the nadir subpoints in track
// order followed by the same points reversed.
type Footprint struct {
	Attitude Attitude
	Orbit    OrbitConfig

	Polygon     []LonLat
	GroundTrack []LonLat
	Samples     []FootprintSample
}

// Closed reports whether the polygon's first and last points coincide.
func (f *Footprint) Closed() bool {
	if f == nil || len(f.Polygon) < 2 {
		return false
	}
	return f.Polygon[0] == f.Polygon[len(f.Polygon)-1]
}
