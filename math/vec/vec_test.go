// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"testing"

	"github.com/chewxy/math32"
)

var (
	NULL = Vec3{}
)

func TestBasics(t *testing.T) {
	v := Vec3{1, 2, 3}
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Errorf("Vector construction is not obvious")
	}
}

func TestSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Sub(v, v); got != NULL {
		t.Errorf("Sub(%v,%v) = %v want %v", v, v, got, NULL)
	}
	v2 := Vec3{9, 7, 5}
	got := Sub(v2, v)
	want := Vec3{8, 5, 2}
	if got != want {
		t.Errorf("Sub(%v,%v) = %v want %v", v2, v, got, want)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{-100, 0, 0}
	b := Vec3{100, 0, 0}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(%v,%v,0) = %v", a, b, got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(%v,%v,1) = %v", a, b, got)
	}
	if got, want := Lerp(a, b, 0.25), (Vec3{-50, 0, 0}); got != want {
		t.Errorf("Lerp(%v,%v,0.25) = %v want %v", a, b, got, want)
	}
}

func TestNegate(t *testing.T) {
	v := Vec3{1, -2, 3}
	if got, want := v.Negate(), (Vec3{-1, 2, -3}); got != want {
		t.Errorf("%v.Negate() = %v want %v", v, got, want)
	}
	if !NULL.Negate().IsZero() {
		t.Errorf("Negating the null vector is not zero")
	}
}

func TestIsZero(t *testing.T) {
	if !NULL.IsZero() {
		t.Errorf("Null vector is not zero")
	}
	for _, v := range []Vec3{{1, 0, 0}, {0, -1, 0}, {0, 0, 0.5}} {
		if v.IsZero() {
			t.Errorf("%v is zero", v)
		}
	}
}

func near(a, b Vec3) bool {
	const eps = 1e-5
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestAngleVectorsIdentity(t *testing.T) {
	f, r, u := AngleVectors(NULL)
	if !near(f, Vec3{1, 0, 0}) || !near(r, Vec3{0, -1, 0}) || !near(u, Vec3{0, 0, 1}) {
		t.Errorf("AngleVectors(0) = %v %v %v", f, r, u)
	}
	p := Vec3{3, 4, 5}
	if got := ToFrame(p, f, r, u); !near(got, p) {
		t.Errorf("ToFrame(%v) with identity basis = %v", p, got)
	}
}

func TestAngleVectorsYaw(t *testing.T) {
	f, r, u := AngleVectors(Vec3{0, 90, 0})
	if !near(f, Vec3{0, 1, 0}) || !near(r, Vec3{1, 0, 0}) || !near(u, Vec3{0, 0, 1}) {
		t.Errorf("AngleVectors(yaw 90) = %v %v %v", f, r, u)
	}
	// a point ahead of a yawed model lies on its local +x
	if got := ToFrame(Vec3{0, 10, 0}, f, r, u); !near(got, Vec3{10, 0, 0}) {
		t.Errorf("ToFrame = %v", got)
	}
}
