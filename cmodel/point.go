// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"quake2world/math/vec"
)

// MaxBoxLeafs bounds the leafs gathered by a single position test.
const MaxBoxLeafs = 1024

func (m *Model) leafForPoint(p vec.Vec3, c Child) int {
	cmPointContents.Inc()
	for !c.IsLeaf() {
		n := &m.nodes[c.Node()]
		if m.planes[n.Plane].Distance(p) < 0 {
			c = n.Children[1]
		} else {
			c = n.Children[0]
		}
	}
	return c.Leaf()
}

// LeafForPoint returns the leaf containing p, starting the descent at
// headNode. Points on a plane go to the front child.
func (m *Model) LeafForPoint(p vec.Vec3, headNode int) int {
	if m.numNodes == 0 {
		return 0
	}
	return m.leafForPoint(p, Child(headNode))
}

// PointLeafnum is LeafForPoint from the world head node.
func (m *Model) PointLeafnum(p vec.Vec3) int {
	return m.LeafForPoint(p, 0)
}

// PointContents returns the contents of the leaf containing p.
func (m *Model) PointContents(p vec.Vec3, headNode int) int32 {
	if m.numNodes == 0 {
		return 0
	}
	return m.leafs[m.leafForPoint(p, Child(headNode))].Contents
}

// TransformedPointContents handles submodels that are translated and
// rotated.
func (m *Model) TransformedPointContents(p vec.Vec3, headNode int, origin, angles vec.Vec3) int32 {
	l := vec.Sub(p, origin)
	if headNode != m.box.headNode && !angles.IsZero() {
		f, r, u := vec.AngleVectors(angles)
		l = vec.ToFrame(l, f, r, u)
	}
	return m.PointContents(l, headNode)
}

type leafList struct {
	mins, maxs vec.Vec3
	list       []int
	count      int
	topNode    int
}

func (m *Model) boxLeafnums(c Child, ll *leafList) {
	for {
		if c.IsLeaf() {
			if ll.count < len(ll.list) {
				ll.list[ll.count] = c.Leaf()
				ll.count++
			}
			return
		}
		n := &m.nodes[c.Node()]
		switch m.planes[n.Plane].BoxOnPlaneSide(ll.mins, ll.maxs) {
		case SideFront:
			c = n.Children[0]
		case SideBack:
			c = n.Children[1]
		default:
			// go down both
			if ll.topNode == -1 {
				ll.topNode = c.Node()
			}
			m.boxLeafnums(n.Children[0], ll)
			c = n.Children[1]
		}
	}
}

// BoxLeafnums fills list with the leafs touched by the box below
// headNode, stopping when list is full. topNode is the first node that
// splits the box, or -1.
func (m *Model) BoxLeafnums(mins, maxs vec.Vec3, list []int, headNode int) (count, topNode int) {
	if m.numNodes == 0 {
		return 0, -1
	}
	ll := leafList{
		mins:    mins,
		maxs:    maxs,
		list:    list,
		topNode: -1,
	}
	m.boxLeafnums(Child(headNode), &ll)
	return ll.count, ll.topNode
}

// WorldBoxLeafnums is BoxLeafnums against the world model.
func (m *Model) WorldBoxLeafnums(mins, maxs vec.Vec3, list []int) (count, topNode int) {
	return m.BoxLeafnums(mins, maxs, list, m.submodels[0].HeadNode)
}
