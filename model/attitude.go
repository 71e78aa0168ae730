package model

import (
	"math"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// Attitude describes one footprint request: spacecraft roll, pitch and yaw
// plus the instrument half-aperture, all in degrees. The swath edges are the
// rays at RollDeg-ApertureDeg (right) and RollDeg+ApertureDeg (left).
type Attitude struct {
	RollDeg     float64
	PitchDeg    float64
	YawDeg      float64
	ApertureDeg float64
}

// Validate rejects non-finite angles and apertures outside [0, 90).
func (a Attitude) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"attitude.roll", a.RollDeg},
		{"attitude.pitch", a.PitchDeg},
		{"attitude.yaw", a.YawDeg},
		{"attitude.aperture", a.ApertureDeg},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return geometry.InvalidInput(f.name, "must be finite, got %v", f.v)
		}
	}
	if a.ApertureDeg < 0 || a.ApertureDeg >= 90 {
		return geometry.InvalidInput("attitude.aperture", "must be in [0, 90), got %v", a.ApertureDeg)
	}
	return nil
}
