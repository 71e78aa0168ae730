package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EarthRadiusKm is the reference radius of the spherical Earth model used by
// every conversion in this module (kilometres). Oblateness is not modelled.
const EarthRadiusKm = 6378.1370

// Vec3 is an Earth-fixed Cartesian vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) r3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromR3(v r3.Vec) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.r3(), other.r3()))
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return r3.Norm(v.r3())
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return fromR3(r3.Add(v.r3(), other.r3()))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return fromR3(r3.Sub(v.r3(), other.r3()))
}

// Scale returns v multiplied by f.
func (v Vec3) Scale(f float64) Vec3 {
	return fromR3(r3.Scale(f, v.r3()))
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross returns v × other.
func (v Vec3) Cross(other Vec3) Vec3 {
	return fromR3(r3.Cross(v.r3(), other.r3()))
}

// Unit returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	if v.Norm() == 0 {
		return v
	}
	return fromR3(r3.Unit(v.r3()))
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// AngleDegrees returns the angle between v and other in degrees.
func (v Vec3) AngleDegrees(other Vec3) float64 {
	n := v.Norm() * other.Norm()
	if n == 0 {
		return 0
	}
	c := v.Dot(other) / n
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * 180.0 / math.Pi
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }
