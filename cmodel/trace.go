// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"github.com/chewxy/math32"

	"quake2world/math"
	"quake2world/math/vec"
)

// DistEpsilon keeps traces 1/32 of a unit off the surfaces they hit.
const DistEpsilon = 0.03125

type Trace struct {
	AllSolid   bool    // if true, Plane is not valid
	StartSolid bool    // if true, the initial point was in a solid area
	Fraction   float32 // time completed, 1.0 = didn't hit anything
	End        vec.Vec3
	Plane      Plane    // surface normal at impact
	Surface    *Surface // surface hit
	Contents   int32    // contents on other side of surface hit
	LeafNum    int
}

// traceWork is the per trace state. Nothing in it is shared so traces
// may run concurrently.
type traceWork struct {
	m *Model

	start, end vec.Vec3
	mins, maxs vec.Vec3
	extents    vec.Vec3
	isPoint    bool
	contents   int32

	trace Trace

	// brushes are tested once per trace, slot brush&15
	mailbox [16]int
}

func (w *traceWork) alreadyTested(brush int) bool {
	h := brush & 15
	if w.mailbox[h] == brush {
		return true
	}
	w.mailbox[h] = brush
	return false
}

func (w *traceWork) clipBoxToBrush(leafNum int, b *Brush) {
	if b.NumSides == 0 {
		return
	}
	cmBrushTraces.Inc()

	m := w.m
	enterFrac := float32(-1)
	leaveFrac := float32(1)
	var clipPlane *Plane
	var leadSide *BrushSide
	getOut := false
	startOut := false

	for i := 0; i < b.NumSides; i++ {
		side := &m.brushSides[b.FirstSide+i]
		plane := &m.planes[side.Plane]

		dist := plane.Dist
		if !w.isPoint {
			// push the plane out by the box corner facing it
			var ofs vec.Vec3
			for j := 0; j < 3; j++ {
				if plane.Normal[j] < 0 {
					ofs[j] = w.maxs[j]
				} else {
					ofs[j] = w.mins[j]
				}
			}
			dist -= vec.Dot(ofs, plane.Normal)
		}

		d1 := vec.Dot(w.start, plane.Normal) - dist
		d2 := vec.Dot(w.end, plane.Normal) - dist

		if d2 > 0 {
			getOut = true
		}
		if d1 > 0 {
			startOut = true
		}

		// completely in front of face, no intersection
		if d1 > 0 && d2 >= d1 {
			return
		}
		if d1 <= 0 && d2 <= 0 {
			continue
		}

		if d1 > d2 { // enter
			f := (d1 - DistEpsilon) / (d1 - d2)
			if f > enterFrac {
				enterFrac = f
				clipPlane = plane
				leadSide = side
			}
		} else { // leave
			f := (d1 + DistEpsilon) / (d1 - d2)
			if f < leaveFrac {
				leaveFrac = f
			}
		}
	}

	if !startOut {
		w.trace.StartSolid = true
		if !getOut {
			w.trace.AllSolid = true
		}
		w.trace.LeafNum = leafNum
		return
	}
	if enterFrac < leaveFrac && enterFrac > -1 && enterFrac < w.trace.Fraction {
		if enterFrac < 0 {
			enterFrac = 0
		}
		w.trace.Fraction = enterFrac
		w.trace.Plane = *clipPlane
		w.trace.Surface = leadSide.Surface
		w.trace.Contents = b.Contents
		w.trace.LeafNum = leafNum
	}
}

func (w *traceWork) testBoxInBrush(leafNum int, b *Brush) {
	if b.NumSides == 0 {
		return
	}
	m := w.m
	for i := 0; i < b.NumSides; i++ {
		plane := &m.planes[m.brushSides[b.FirstSide+i].Plane]
		var ofs vec.Vec3
		for j := 0; j < 3; j++ {
			if plane.Normal[j] < 0 {
				ofs[j] = w.maxs[j]
			} else {
				ofs[j] = w.mins[j]
			}
		}
		dist := plane.Dist - vec.Dot(ofs, plane.Normal)
		if vec.Dot(w.start, plane.Normal)-dist > 0 {
			return
		}
	}
	// inside this brush
	w.trace.StartSolid = true
	w.trace.AllSolid = true
	w.trace.Fraction = 0
	w.trace.Contents = b.Contents
	w.trace.LeafNum = leafNum
}

func (w *traceWork) traceToLeaf(leafNum int) {
	m := w.m
	l := &m.leafs[leafNum]
	if l.Contents&w.contents == 0 {
		return
	}
	for _, bn := range m.leafBrushes[l.FirstLeafBrush : l.FirstLeafBrush+l.NumLeafBrushes] {
		b := &m.brushes[bn]
		if w.alreadyTested(bn) {
			continue
		}
		if b.Contents&w.contents == 0 {
			continue
		}
		w.clipBoxToBrush(leafNum, b)
		if w.trace.AllSolid {
			return
		}
	}
}

func (w *traceWork) testInLeaf(leafNum int) {
	m := w.m
	l := &m.leafs[leafNum]
	if l.Contents&w.contents == 0 {
		return
	}
	for _, bn := range m.leafBrushes[l.FirstLeafBrush : l.FirstLeafBrush+l.NumLeafBrushes] {
		b := &m.brushes[bn]
		if w.alreadyTested(bn) {
			continue
		}
		if b.Contents&w.contents == 0 {
			continue
		}
		w.testBoxInBrush(leafNum, b)
		if w.trace.AllSolid {
			return
		}
	}
}

func (w *traceWork) recursiveHullCheck(c Child, p1f, p2f float32, p1, p2 vec.Vec3) {
	if w.trace.Fraction <= p1f {
		return // already hit something nearer
	}
	if c.IsLeaf() {
		w.traceToLeaf(c.Leaf())
		return
	}

	m := w.m
	node := &m.nodes[c.Node()]
	plane := &m.planes[node.Plane]

	var t1, t2, offset float32
	if plane.Axial() {
		t1 = p1[plane.Type] - plane.Dist
		t2 = p2[plane.Type] - plane.Dist
		offset = w.extents[plane.Type]
	} else {
		t1 = vec.Dot(plane.Normal, p1) - plane.Dist
		t2 = vec.Dot(plane.Normal, p2) - plane.Dist
		if !w.isPoint {
			offset = math32.Abs(w.extents[0]*plane.Normal[0]) +
				math32.Abs(w.extents[1]*plane.Normal[1]) +
				math32.Abs(w.extents[2]*plane.Normal[2])
		}
	}

	// see which sides we need to consider
	if t1 >= offset && t2 >= offset {
		w.recursiveHullCheck(node.Children[0], p1f, p2f, p1, p2)
		return
	}
	if t1 <= -offset && t2 <= -offset {
		w.recursiveHullCheck(node.Children[1], p1f, p2f, p1, p2)
		return
	}

	// put the crosspoint DistEpsilon units on the near side
	var side int
	var frac, frac2 float32
	switch {
	case t1 < t2:
		idist := 1 / (t1 - t2)
		side = 1
		frac2 = (t1 + offset + DistEpsilon) * idist
		frac = (t1 - offset + DistEpsilon) * idist
	case t1 > t2:
		idist := 1 / (t1 - t2)
		side = 0
		frac2 = (t1 - offset - DistEpsilon) * idist
		frac = (t1 + offset + DistEpsilon) * idist
	default:
		side = 0
		frac = 1
		frac2 = 0
	}

	// move up to the node
	frac = math.Fraction(frac)
	midf := p1f + (p2f-p1f)*frac
	mid := vec.Lerp(p1, p2, frac)
	w.recursiveHullCheck(node.Children[side], p1f, midf, p1, mid)

	// go past the node
	frac2 = math.Fraction(frac2)
	midf = p1f + (p2f-p1f)*frac2
	mid = vec.Lerp(p1, p2, frac2)
	w.recursiveHullCheck(node.Children[side^1], midf, p2f, mid, p2)
}

// BoxTrace sweeps the box mins/maxs from start to end through the tree
// below headNode, colliding with brushes whose contents intersect mask.
// When start equals end it reports whether the box is stuck in a brush.
func (m *Model) BoxTrace(start, end, mins, maxs vec.Vec3, headNode int, mask int32) Trace {
	cmTraces.Inc()

	w := traceWork{
		m:        m,
		start:    start,
		end:      end,
		mins:     mins,
		maxs:     maxs,
		contents: mask,
		trace: Trace{
			Fraction: 1,
			End:      end,
			Surface:  &m.nullSurface,
		},
	}
	for i := range w.mailbox {
		w.mailbox[i] = -1
	}

	if m.numNodes == 0 {
		return w.trace
	}

	// position test
	if start == end {
		var c1, c2 vec.Vec3
		for i := 0; i < 3; i++ {
			c1[i] = start[i] + mins[i] - 1
			c2[i] = start[i] + maxs[i] + 1
		}
		var leafs [MaxBoxLeafs]int
		n, _ := m.BoxLeafnums(c1, c2, leafs[:], headNode)
		for _, l := range leafs[:n] {
			w.testInLeaf(l)
			if w.trace.AllSolid {
				break
			}
		}
		w.trace.End = start
		return w.trace
	}

	if mins.IsZero() && maxs.IsZero() {
		w.isPoint = true
	} else {
		for i := 0; i < 3; i++ {
			w.extents[i] = math32.Max(-mins[i], maxs[i])
		}
	}

	w.recursiveHullCheck(Child(headNode), 0, 1, start, end)

	if w.trace.Fraction == 1 {
		w.trace.End = end
	} else {
		w.trace.End = vec.Lerp(start, end, w.trace.Fraction)
	}
	return w.trace
}

// TransformedBoxTrace handles submodels that are translated and rotated.
// The box itself is not rotated.
func (m *Model) TransformedBoxTrace(start, end, mins, maxs vec.Vec3, headNode int, mask int32, origin, angles vec.Vec3) Trace {
	startL := vec.Sub(start, origin)
	endL := vec.Sub(end, origin)

	rotated := headNode != m.box.headNode && !angles.IsZero()
	if rotated {
		f, r, u := vec.AngleVectors(angles)
		startL = vec.ToFrame(startL, f, r, u)
		endL = vec.ToFrame(endL, f, r, u)
	}

	t := m.BoxTrace(startL, endL, mins, maxs, headNode, mask)

	if rotated && t.Fraction != 1 {
		f, r, u := vec.AngleVectors(angles.Negate())
		t.Plane.Normal = vec.ToFrame(t.Plane.Normal, f, r, u)
	}
	t.End = vec.Lerp(start, end, t.Fraction)
	return t
}
