package astro

import (
	"math"
	"testing"
)

func approxEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVec3_Norm(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit x", Vec3{X: 1}, 1},
		{"pythagorean", Vec3{X: 3, Y: 4}, 5},
		{"full 3d", Vec3{X: 2, Y: 3, Z: 6}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Norm(); !approxEq(got, tt.want, 1e-12) {
				t.Errorf("Norm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec3_Normalized(t *testing.T) {
	v := Vec3{X: 0, Y: -5, Z: 0}.Normalized()
	if !approxEq(v.Norm(), 1, 1e-12) {
		t.Errorf("Normalized().Norm() = %v, want 1", v.Norm())
	}
	if v.Y >= 0 {
		t.Errorf("Normalized() lost direction: Y = %v, want negative", v.Y)
	}

	// Zero vector must not divide by zero.
	z := Vec3{}.Normalized()
	if z != (Vec3{}) {
		t.Errorf("Normalized() of zero = %+v, want zero", z)
	}
}

func TestVec3_AddSubScale(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0.5, Z: 2}

	sum := a.Add(b)
	if sum != (Vec3{X: 0, Y: 2.5, Z: 5}) {
		t.Errorf("Add() = %+v", sum)
	}
	if diff := sum.Sub(b); diff != a {
		t.Errorf("Sub() did not invert Add(): %+v", diff)
	}
	if s := a.Scale(-2); s != (Vec3{X: -2, Y: -4, Z: -6}) {
		t.Errorf("Scale(-2) = %+v", s)
	}
}

func TestDist(t *testing.T) {
	a := Vec3{X: 1, Y: 1}
	b := Vec3{X: 4, Y: 5}
	if got := Dist(a, b); !approxEq(got, 5, 1e-12) {
		t.Errorf("Dist() = %v, want 5", got)
	}
	if got := Dist(a, a); got != 0 {
		t.Errorf("Dist(a, a) = %v, want 0", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{X: 0, Y: 10, Z: -2}
	b := Vec3{X: 4, Y: 0, Z: 2}

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %+v, want %+v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %+v, want %+v", got, b)
	}
	mid := Lerp(a, b, 0.5)
	if !approxEq(mid.X, 2, 1e-12) || !approxEq(mid.Y, 5, 1e-12) || !approxEq(mid.Z, 0, 1e-12) {
		t.Errorf("Lerp(t=0.5) = %+v", mid)
	}

	// t is deliberately unclamped so callers can extrapolate.
	ext := Lerp(a, b, 2)
	if !approxEq(ext.X, 8, 1e-12) {
		t.Errorf("Lerp(t=2).X = %v, want 8", ext.X)
	}
}

func TestKmAUConversions(t *testing.T) {
	if got := KmToAU(AU); !approxEq(got, 1, 1e-12) {
		t.Errorf("KmToAU(AU) = %v, want 1", got)
	}
	if got := AUToKm(KmToAU(384400)); !approxEq(got, 384400, 1e-6) {
		t.Errorf("round trip = %v, want 384400", got)
	}
}
