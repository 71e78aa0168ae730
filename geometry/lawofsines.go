package geometry

import "math"

// Both relations below solve the same plane triangle: Earth centre, a point
// on the reference sphere and a satellite at orbital radius Re+h.

// SlantRange returns the distance (km) from a station on the reference sphere
// to a satellite at altitudeKm seen at elevationDeg:
//
//	d = Re·(sqrt(((Re+h)/Re)² − cos²e) − sin e)
//
// Sight lines that never reach the orbital sphere, or that dip below the
// station's horizon and therefore pass through the Earth, return an
// *InvalidGeometryError.
func SlantRange(elevationDeg, altitudeKm float64) (float64, error) {
	if !isFinite(elevationDeg) || !isFinite(altitudeKm) {
		return 0, InvalidInput("slant range", "elevation %v and altitude %v must be finite", elevationDeg, altitudeKm)
	}
	if elevationDeg > 90 {
		return 0, InvalidInput("elevation", "must not exceed 90 deg, got %v", elevationDeg)
	}

	fail := func(reason string) error {
		return &InvalidGeometryError{
			Quantity:    "slant range",
			AngleDeg:    elevationDeg,
			AltitudeKm:  altitudeKm,
			SemimajorKm: EarthRadiusKm + altitudeKm,
			Reason:      reason,
		}
	}

	sinE, cosE := math.Sincos(radians(elevationDeg))
	ratio := (EarthRadiusKm + altitudeKm) / EarthRadiusKm
	disc := ratio*ratio - cosE*cosE
	if disc < 0 {
		return 0, fail("sight line does not reach the orbital sphere")
	}
	if elevationDeg < 0 {
		return 0, fail("sight line below the local horizon is blocked by the Earth")
	}

	d := EarthRadiusKm * (math.Sqrt(disc) - sinE)
	if d < 0 {
		return 0, fail("orbital sphere lies behind the station")
	}
	return d, nil
}

// CentralAngle returns the Earth-centre angle (degrees) between the nadir
// subpoint of a satellite at semimajorKm and the point where a sight line
// tilted offNadirDeg from nadir meets the reference sphere:
//
//	a = asin(semimajor·sin θ / Re),  b = a − θ
//
// quantity names the correction in errors ("pitch correction", ...). A sight
// line that misses the Earth returns an *InvalidGeometryError.
func CentralAngle(quantity string, offNadirDeg, semimajorKm float64) (float64, error) {
	if !isFinite(offNadirDeg) || !isFinite(semimajorKm) {
		return 0, InvalidInput(quantity, "angle %v and semimajor %v must be finite", offNadirDeg, semimajorKm)
	}
	fail := func(reason string) error {
		return &InvalidGeometryError{
			Quantity:    quantity,
			AngleDeg:    offNadirDeg,
			AltitudeKm:  semimajorKm - EarthRadiusKm,
			SemimajorKm: semimajorKm,
			Reason:      reason,
		}
	}
	if math.Abs(offNadirDeg) >= 90 {
		return 0, fail("sight line points away from the Earth")
	}

	arg := semimajorKm * math.Sin(radians(offNadirDeg)) / EarthRadiusKm
	if arg > 1 || arg < -1 {
		return 0, fail("sight line misses the Earth")
	}
	return degrees(math.Asin(arg)) - offNadirDeg, nil
}
