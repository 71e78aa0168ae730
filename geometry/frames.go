package geometry

import "math"

// Conventions
//
// SphericalToCartesian uses the physics convention: polar angle
// θ = 90° − elevation measured from +Z, azimuthal angle φ = 360° − azimuth
// measured from +X toward +Y. For a station-local frame this places north on
// +X, west on +Y and the local vertical on +Z, with azimuth growing clockwise
// from north as seen from above.
//
// Latitude/longitude are spherical (geocentric) angles on a sphere of radius
// EarthRadiusKm. Longitude is reported in [-180, 180).

// SphericalToCartesian converts an azimuth/elevation/range triple (degrees,
// degrees, km) into topocentric Cartesian coordinates.
func SphericalToCartesian(azimuthDeg, elevationDeg, rangeKm float64) Vec3 {
	theta := radians(90.0 - elevationDeg)
	phi := radians(360.0 - azimuthDeg)

	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)

	return Vec3{
		X: rangeKm * sinT * cosP,
		Y: rangeKm * sinT * sinP,
		Z: rangeKm * cosT,
	}
}

// CartesianToGeodetic returns the spherical latitude and longitude (degrees)
// of p. The origin maps to (0, 0).
func CartesianToGeodetic(p Vec3) (latDeg, lonDeg float64) {
	lat := math.Atan2(p.Z, math.Hypot(p.X, p.Y))
	lon := math.Atan2(p.Y, p.X)
	return degrees(lat), NormalizeLongitude(degrees(lon))
}

// GeodeticToCartesian places a latitude/longitude (degrees) at radiusKm from
// the Earth's centre.
func GeodeticToCartesian(latDeg, lonDeg, radiusKm float64) Vec3 {
	sinLat, cosLat := math.Sincos(radians(latDeg))
	sinLon, cosLon := math.Sincos(radians(lonDeg))
	return Vec3{
		X: radiusKm * cosLat * cosLon,
		Y: radiusKm * cosLat * sinLon,
		Z: radiusKm * sinLat,
	}
}

// SurfacePoint projects p along the radial direction onto the reference
// sphere.
func SurfacePoint(p Vec3) Vec3 {
	lat, lon := CartesianToGeodetic(p)
	return GeodeticToCartesian(lat, lon, EarthRadiusKm)
}

// NormalizeLongitude wraps a longitude in degrees into [-180, 180).
func NormalizeLongitude(lonDeg float64) float64 {
	lon := math.Mod(lonDeg+180.0, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon - 180.0
}

// GreatCircleDistanceKm returns the haversine distance between two
// latitude/longitude pairs on a sphere of the given radius.
func GreatCircleDistanceKm(lat1, lon1, lat2, lon2, radiusKm float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return radiusKm * c
}
