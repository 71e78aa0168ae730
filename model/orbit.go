package model

import (
	"math"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// OrbitConfig is the orbital configuration shared by every computation of a
// single run. It is a value type; pass it explicitly.
type OrbitConfig struct {
	SemimajorKm float64
}

// NewOrbitConfig validates semimajorKm and returns the configuration.
func NewOrbitConfig(semimajorKm float64) (OrbitConfig, error) {
	cfg := OrbitConfig{SemimajorKm: semimajorKm}
	return cfg, cfg.Validate()
}

// AltitudeKm is the satellite altitude above geometry.EarthRadiusKm.
func (o OrbitConfig) AltitudeKm() float64 {
	return o.SemimajorKm - geometry.EarthRadiusKm
}

// Validate checks that the semimajor axis is a positive finite number.
func (o OrbitConfig) Validate() error {
	if math.IsNaN(o.SemimajorKm) || math.IsInf(o.SemimajorKm, 0) || o.SemimajorKm <= 0 {
		return geometry.InvalidInput("orbit.semimajor_km", "must be a positive finite number, got %v", o.SemimajorKm)
	}
	return nil
}
