package vector

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestArithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: -5, Z: 6}

	sum := a.Add(b)
	if sum != (Vec3{X: 5, Y: -3, Z: 9}) {
		t.Errorf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec3{X: -3, Y: 7, Z: -3}) {
		t.Errorf("Sub: got %+v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale: got %+v", scaled)
	}

	if dot := a.Dot(b); !almostEqual(dot, 4-10+18) {
		t.Errorf("Dot: expected 12, got %f", dot)
	}
}

func TestValueSemantics(t *testing.T) {
	a := Vec3{X: 1, Y: 1, Z: 1}
	_ = a.Add(Vec3{X: 9, Y: 9, Z: 9})
	if a != (Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Add mutated the receiver: %+v", a)
	}
}

func TestDivByZero(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 5}
	if got := v.Div(0); got != (Vec3{}) {
		t.Errorf("Div by zero should yield zero vector, got %+v", got)
	}
	if got := v.Div(2); got != (Vec3{X: 1.5, Y: 2, Z: 2.5}) {
		t.Errorf("Div: got %+v", got)
	}
}

func TestMagnitudeAndNormalize(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if mag := v.Magnitude(); !almostEqual(mag, 5) {
		t.Errorf("Magnitude: expected 5, got %f", mag)
	}

	n := v.Normalize()
	if !almostEqual(n.Magnitude(), 1) {
		t.Errorf("Normalize: expected unit length, got %f", n.Magnitude())
	}
	if !almostEqual(n.X, 0.6) || !almostEqual(n.Y, 0.8) {
		t.Errorf("Normalize: got %+v", n)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Zero vector should normalize to zero vector, got %+v", got)
	}
}

func TestDistanceTo(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 1, Y: 2, Z: 10}
	if d := a.DistanceTo(b); !almostEqual(d, 7) {
		t.Errorf("DistanceTo: expected 7, got %f", d)
	}
}
