package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// AxisTolerance is the smallest axis norm accepted by NewRotation.
const AxisTolerance = 1e-9

// Rotation is a single right-handed rotation about an axis through the
// origin. Positive angles turn counter-clockwise when the axis points at the
// viewer.
type Rotation struct {
	Axis    Vec3 // unit length
	Degrees float64

	q r3.Rotation
}

// NewRotation builds a rotation of degrees about axis. The axis does not need
// to be normalised but must have a norm of at least AxisTolerance.
func NewRotation(axis Vec3, degrees float64) (Rotation, error) {
	if !axis.IsFinite() || axis.Norm() < AxisTolerance {
		return Rotation{}, &DegenerateAxisError{Context: "rotation axis has zero length", Axis: axis}
	}
	if !isFinite(degrees) {
		return Rotation{}, InvalidInput("rotation angle", "must be finite, got %v", degrees)
	}
	unit := axis.Unit()
	return Rotation{
		Axis:    unit,
		Degrees: degrees,
		q:       r3.NewRotation(radians(degrees), unit.r3()),
	}, nil
}

// MustRotation is NewRotation for constant axes known to be non-zero.
func MustRotation(axis Vec3, degrees float64) Rotation {
	r, err := NewRotation(axis, degrees)
	if err != nil {
		panic(err)
	}
	return r
}

// Apply rotates v. The zero Rotation is the identity.
func (r Rotation) Apply(v Vec3) Vec3 {
	if r.q == (r3.Rotation{}) {
		return v
	}
	return fromR3(r.q.Rotate(v.r3()))
}

// Sequence is an ordered list of rotations applied first to last.
// Rotations do not commute; the order is part of the algorithm.
type Sequence []Rotation

// Apply runs v through every stage in order.
func (s Sequence) Apply(v Vec3) Vec3 {
	for _, r := range s {
		v = r.Apply(v)
	}
	return v
}

// Unit axes of the Earth-fixed frame.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)
