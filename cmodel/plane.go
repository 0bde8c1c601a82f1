// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"quake2world/math/vec"
)

// BoxOnPlaneSide results
const (
	SideFront = 1
	SideBack  = 2
	SideBoth  = SideFront | SideBack
)

const sideEpsilon = 0.001

func signBits(n vec.Vec3) int {
	bits := 0
	for i := 0; i < 3; i++ {
		if n[i] < 0 {
			bits |= 1 << i
		}
	}
	return bits
}

// BoxOnPlaneSide classifies the box against the plane.
func (p *Plane) BoxOnPlaneSide(mins, maxs vec.Vec3) int {
	if p.Axial() {
		if p.Dist-sideEpsilon <= mins[p.Type] {
			return SideFront
		}
		if p.Dist+sideEpsilon >= maxs[p.Type] {
			return SideBack
		}
		return SideBoth
	}
	// pick the two corners nearest and farthest along the normal
	var near, far vec.Vec3
	for i := 0; i < 3; i++ {
		if p.SignBits&(1<<i) != 0 {
			far[i], near[i] = mins[i], maxs[i]
		} else {
			far[i], near[i] = maxs[i], mins[i]
		}
	}
	d1 := vec.Dot(p.Normal, far)
	d2 := vec.Dot(p.Normal, near)
	sides := 0
	if d1 >= p.Dist {
		sides = SideFront
	}
	if d2 < p.Dist {
		sides |= SideBack
	}
	return sides
}
