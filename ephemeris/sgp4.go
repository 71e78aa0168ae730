package ephemeris

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/footprint-geometry/geometry"
)

// SGP4Provider propagates a two-line element set with SGP4 and rotates the
// result into the Earth-fixed frame. go-satellite works in kilometres, the
// same unit as the geometry core.
type SGP4Provider struct {
	sat satellite.Satellite
}

// NewSGP4Provider parses a TLE. The lines are checked before they reach
// go-satellite, which aborts the process on malformed input.
func NewSGP4Provider(line1, line2 string) (*SGP4Provider, error) {
	line1, line2 = strings.TrimSpace(line1), strings.TrimSpace(line2)
	if err := ValidateTLE(line1, line2); err != nil {
		return nil, err
	}
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
	}
	return &SGP4Provider{sat: sat}, nil
}

// PositionAt propagates to t (whole-second resolution, UTC).
func (p *SGP4Provider) PositionAt(t time.Time) (geometry.Vec3, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	ecef := satellite.ECIToECEF(posECI, gmst)

	pos := geometry.Vec3{X: ecef.X, Y: ecef.Y, Z: ecef.Z}
	if !pos.IsFinite() {
		return geometry.Vec3{}, fmt.Errorf("sgp4 propagation failed: output is NaN/Inf")
	}
	// Below the surface or beyond GEO-ish distances means the propagator diverged.
	if mag := pos.Norm(); mag < 6200 || mag > 50000 {
		return geometry.Vec3{}, fmt.Errorf("sgp4 propagation failed: unreasonable position magnitude %.1f km", mag)
	}
	return pos, nil
}

// ValidateTLE performs basic format checks on the two element lines.
func ValidateTLE(line1, line2 string) error {
	if len(line1) != 69 {
		return geometry.InvalidInput("tle", "line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return geometry.InvalidInput("tle", "line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return geometry.InvalidInput("tle", "line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return geometry.InvalidInput("tle", "line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// earthMu is the WGS-84 gravitational parameter, km³/s².
const earthMu = 398600.4418

// SemimajorFromTLE derives the semimajor axis (km) from the mean motion in
// columns 53-63 of line 2 using Kepler's third law.
func SemimajorFromTLE(line2 string) (float64, error) {
	line2 = strings.TrimSpace(line2)
	if len(line2) < 63 || line2[0] != '2' {
		return 0, geometry.InvalidInput("tle", "line2 too short or not a line 2: %q", line2)
	}
	var revsPerDay float64
	if _, err := fmt.Sscan(strings.TrimSpace(line2[52:63]), &revsPerDay); err != nil {
		return 0, geometry.InvalidInput("tle", "mean motion %q: %v", line2[52:63], err)
	}
	if revsPerDay <= 0 || math.IsNaN(revsPerDay) || math.IsInf(revsPerDay, 0) {
		return 0, geometry.InvalidInput("tle", "mean motion must be positive, got %v", revsPerDay)
	}
	n := revsPerDay * 2 * math.Pi / 86400 // rad/s
	return math.Cbrt(earthMu / (n * n)), nil
}
