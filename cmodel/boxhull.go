// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"github.com/pkg/errors"

	"quake2world/bsp"
	"quake2world/math/vec"
)

const boxPlanes = 12

// boxHull is a six node tree around a single brush, appended after the
// loaded map data so entity boxes can be traced like any other model.
type boxHull struct {
	headNode   int
	firstPlane int
	brush      int
	leaf       int
}

func (m *Model) initBoxHull() error {
	if len(m.nodes)+6 > bsp.MaxNodes ||
		len(m.brushes)+1 > bsp.MaxBrushes ||
		len(m.leafBrushes)+1 > bsp.MaxLeafBrushes ||
		len(m.brushSides)+6 > bsp.MaxBrushSides ||
		len(m.planes)+boxPlanes > bsp.MaxPlanes ||
		len(m.leafs)+1 > bsp.MaxLeafs {
		return errors.Wrapf(ErrNoRoomForBox, "%d nodes, %d planes", len(m.nodes), len(m.planes))
	}

	b := &m.box
	b.headNode = len(m.nodes)
	b.firstPlane = len(m.planes)
	b.brush = len(m.brushes)
	b.leaf = len(m.leafs)

	m.brushes = append(m.brushes, Brush{
		Contents:  bsp.ContentsMonster,
		FirstSide: len(m.brushSides),
		NumSides:  6,
	})
	m.leafs = append(m.leafs, Leaf{
		Contents:       bsp.ContentsMonster,
		Cluster:        -1,
		FirstLeafBrush: len(m.leafBrushes),
		NumLeafBrushes: 1,
	})
	m.leafBrushes = append(m.leafBrushes, b.brush)

	for i := 0; i < 6; i++ {
		side := i & 1
		axis := i >> 1

		m.brushSides = append(m.brushSides, BrushSide{
			Plane:   b.firstPlane + i*2 + side,
			Surface: &m.nullSurface,
		})

		n := Node{Plane: b.firstPlane + i*2}
		n.Children[side] = LeafChild(m.emptyLeaf)
		if i != 5 {
			n.Children[side^1] = NodeChild(b.headNode + i + 1)
		} else {
			n.Children[side^1] = LeafChild(b.leaf)
		}
		m.nodes = append(m.nodes, n)

		pos := Plane{Type: bsp.PlaneX + axis}
		pos.Normal[axis] = 1
		neg := Plane{Type: bsp.PlaneAnyX + axis}
		neg.Normal[axis] = -1
		neg.SignBits = signBits(neg.Normal)
		m.planes = append(m.planes, pos, neg)
	}
	return nil
}

// HeadnodeForBox sizes the box hull to the given bounds and returns its
// head node for use with BoxTrace and PointContents. Every call rewrites
// the same hull.
func (m *Model) HeadnodeForBox(mins, maxs vec.Vec3) int {
	p := m.planes[m.box.firstPlane : m.box.firstPlane+boxPlanes]
	for axis := 0; axis < 3; axis++ {
		q := p[axis*4 : axis*4+4]
		q[0].Dist = maxs[axis]
		q[1].Dist = -maxs[axis]
		q[2].Dist = mins[axis]
		q[3].Dist = -mins[axis]
	}
	return m.box.headNode
}
