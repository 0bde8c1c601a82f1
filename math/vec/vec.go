// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
)

// Vec3 is indexable so plane types 0-2 can select an axis directly.
type Vec3 [3]float32

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Negate returns -v
func (v Vec3) Negate() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns a dot b
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Lerp computes a + frac*(b-a) the way the tracer steps along a segment.
func Lerp(a, b Vec3, frac float32) Vec3 {
	return Vec3{
		a[0] + frac*(b[0]-a[0]),
		a[1] + frac*(b[1]-a[1]),
		a[2] + frac*(b[2]-a[2]),
	}
}

// IsZero reports whether all components are 0.
func (v Vec3) IsZero() bool {
	return v == Vec3{}
}

// AngleVectors produces the forward, right and up directional vectors
// for angles given as pitch, yaw, roll in degrees.
func AngleVectors(angles Vec3) (forward, right, up Vec3) {
	deg := math32.Pi * 2 / 360
	sp, cp := math32.Sincos(angles[0] * deg) // PITCH
	sy, cy := math32.Sincos(angles[1] * deg) // YAW
	sr, cr := math32.Sincos(angles[2] * deg) // ROLL

	forward = Vec3{cp * cy, cp * sy, -sp}
	right = Vec3{
		(-1*sr*sp*cy + -1*cr*-sy),
		(-1*sr*sp*sy + -1*cr*cy),
		-1 * sr * cp,
	}
	up = Vec3{
		(cr*sp*cy + -sr*-sy),
		(cr*sp*sy + -sr*cy),
		cr * cp,
	}
	return
}

// ToFrame expresses v in the basis (forward, -right, up), which is how
// rotated brush models see world space.
func ToFrame(v, forward, right, up Vec3) Vec3 {
	return Vec3{Dot(v, forward), -Dot(v, right), Dot(v, up)}
}
