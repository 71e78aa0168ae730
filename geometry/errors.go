package geometry

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching against the typed errors below.
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrDegenerateAxis  = errors.New("degenerate rotation axis")
	ErrInvalidInput    = errors.New("invalid input")
)

// InvalidGeometryError reports an inverse-trigonometric relation with no real
// solution for the supplied angle and orbit.
type InvalidGeometryError struct {
	Quantity    string  // "slant range", "pitch correction", "roll correction", ...
	AngleDeg    float64 // offending elevation or off-nadir angle
	AltitudeKm  float64 // orbital altitude above EarthRadiusKm
	SemimajorKm float64
	Reason      string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("%s: %s has no real solution at angle %.6f deg, altitude %.3f km (semimajor %.3f km): %s",
		ErrInvalidGeometry, e.Quantity, e.AngleDeg, e.AltitudeKm, e.SemimajorKm, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidGeometry) succeed.
func (e *InvalidGeometryError) Is(target error) bool { return target == ErrInvalidGeometry }

// DegenerateAxisError reports a rotation axis too short to normalise, usually
// from the cross product of collinear or coincident vectors.
type DegenerateAxisError struct {
	Context string
	Axis    Vec3
}

func (e *DegenerateAxisError) Error() string {
	return fmt.Sprintf("%s: %s (axis %.6g, %.6g, %.6g)", ErrDegenerateAxis, e.Context, e.Axis.X, e.Axis.Y, e.Axis.Z)
}

func (e *DegenerateAxisError) Is(target error) bool { return target == ErrDegenerateAxis }

// InvalidInputError reports malformed station, mask, orbit, attitude or track
// input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidInput is shorthand for constructing an *InvalidInputError.
func InvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
