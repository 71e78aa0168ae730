package geometry

import (
	"errors"
	"math"
	"testing"
)

func assertVecNear(t *testing.T, got, want Vec3, tol float64) {
	t.Helper()
	if got.DistanceTo(want) > tol {
		t.Fatalf("got %+v, want %+v (tol %g)", got, want, tol)
	}
}

func TestRotationRightHanded(t *testing.T) {
	r, err := NewRotation(AxisZ, 90)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	assertVecNear(t, r.Apply(AxisX), AxisY, 1e-12)

	r, err = NewRotation(AxisY, 90)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	assertVecNear(t, r.Apply(AxisZ), AxisX, 1e-12)
}

func TestRotationNormalisesAxis(t *testing.T) {
	r, err := NewRotation(Vec3{Z: 250}, 180)
	if err != nil {
		t.Fatalf("NewRotation: %v", err)
	}
	assertVecNear(t, r.Apply(Vec3{X: 3, Y: 1, Z: 2}), Vec3{X: -3, Y: -1, Z: 2}, 1e-9)
	if math.Abs(r.Axis.Norm()-1) > 1e-12 {
		t.Fatalf("axis norm = %v, want 1", r.Axis.Norm())
	}
}

func TestRotationDegenerateAxis(t *testing.T) {
	_, err := NewRotation(Vec3{}, 10)
	if !errors.Is(err, ErrDegenerateAxis) {
		t.Fatalf("expected ErrDegenerateAxis, got %v", err)
	}
	var dae *DegenerateAxisError
	if !errors.As(err, &dae) {
		t.Fatalf("expected *DegenerateAxisError, got %T", err)
	}

	_, err = NewRotation(Vec3{X: math.NaN()}, 10)
	if !errors.Is(err, ErrDegenerateAxis) {
		t.Fatalf("expected ErrDegenerateAxis for NaN axis, got %v", err)
	}
}

func TestZeroRotationIsIdentity(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3}
	if got := (Rotation{}).Apply(v); got != v {
		t.Fatalf("zero Rotation changed vector: %+v", got)
	}
}

func TestSequenceOrderMatters(t *testing.T) {
	a := MustRotation(AxisZ, 90)
	b := MustRotation(AxisX, 90)
	v := Vec3{X: 1}

	ab := Sequence{a, b}.Apply(v)
	ba := Sequence{b, a}.Apply(v)
	if ab.DistanceTo(ba) < 1e-6 {
		t.Fatalf("expected different results for different stage orders, both %+v", ab)
	}
	assertVecNear(t, ab, Vec3{Z: 1}, 1e-12)
	assertVecNear(t, ba, Vec3{Y: 1}, 1e-12)
}
