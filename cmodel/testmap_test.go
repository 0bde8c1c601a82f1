// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"encoding/binary"
	"testing"

	"github.com/chewxy/math32"

	"quake2world/bsp"
	"quake2world/math/vec"
)

// testMap assembles small bsp files in memory. Brushes are axis aligned
// boxes and every box is carved out by a chain of six nodes.
type testMap struct {
	planes      []bsp.Plane
	nodes       []bsp.Node
	leafs       []bsp.Leaf
	leafBrushes []uint16
	brushes     []bsp.Brush
	sides       []bsp.BrushSide
	texinfo     []bsp.Texinfo
	models      []bsp.Model
	areas       []bsp.Area
	portals     []bsp.AreaPortal
	vis         []byte
	entities    string

	// raw replaces the encoded lump
	raw map[int][]byte
}

const (
	leafSolid = iota
	leafEmptyWest
	leafEmptyEast
	leafWall
	leafWater
	leafDoor
)

const (
	doorHeadNode = 13
	testMapName  = "maps/test.bsp"
)

var (
	wallMins  = vec.Vec3{-192, -64, -64}
	wallMaxs  = vec.Vec3{-64, 64, 64}
	waterMins = vec.Vec3{64, -64, -64}
	waterMaxs = vec.Vec3{192, 64, 64}
	doorMins  = vec.Vec3{-8, -32, -32}
	doorMaxs  = vec.Vec3{8, 32, 32}
)

const testEntities = `{
"classname" "worldspawn"
"message" "collision test"
}
{
"classname" "func_door"
"model" "*1"
}
`

func texinfo(name string, flags int32) bsp.Texinfo {
	t := bsp.Texinfo{Flags: flags}
	copy(t.Texture[:], name)
	return t
}

func (t *testMap) addPlane(axis int, sign, dist float32) int {
	p := bsp.Plane{Dist: dist, Type: int32(bsp.PlaneX + axis)}
	p.Normal[axis] = sign
	if sign < 0 {
		p.Type = int32(bsp.PlaneAnyX + axis)
	}
	t.planes = append(t.planes, p)
	return len(t.planes) - 1
}

func (t *testMap) addLeaf(contents int32, cluster, area int16, brushes ...int) int {
	l := bsp.Leaf{
		Contents:       contents,
		Cluster:        cluster,
		Area:           area,
		FirstLeafBrush: uint16(len(t.leafBrushes)),
		NumLeafBrushes: uint16(len(brushes)),
	}
	for _, b := range brushes {
		t.leafBrushes = append(t.leafBrushes, uint16(b))
	}
	t.leafs = append(t.leafs, l)
	return len(t.leafs) - 1
}

func (t *testMap) addBrush(mins, maxs vec.Vec3, contents int32, surf int16) int {
	first := len(t.sides)
	for axis := 0; axis < 3; axis++ {
		pos := t.addPlane(axis, 1, maxs[axis])
		neg := t.addPlane(axis, -1, -mins[axis])
		t.sides = append(t.sides,
			bsp.BrushSide{PlaneNum: uint16(pos), SurfNum: surf},
			bsp.BrushSide{PlaneNum: uint16(neg), SurfNum: surf})
	}
	t.brushes = append(t.brushes, bsp.Brush{FirstSide: int32(first), NumSides: 6, Contents: contents})
	return len(t.brushes) - 1
}

// addBoxNodes adds six nodes sending everything outside the box to
// outside and the box itself to inside. It returns the first node.
func (t *testMap) addBoxNodes(mins, maxs vec.Vec3, outside, inside int) int {
	head := len(t.nodes)
	for i := 0; i < 6; i++ {
		axis := i >> 1
		side := i & 1
		dist := maxs[axis]
		if side == 1 {
			dist = mins[axis]
		}
		n := bsp.Node{PlaneNum: int32(t.addPlane(axis, 1, dist))}
		n.Children[side] = int32(-1 - outside)
		if i < 5 {
			n.Children[side^1] = int32(head + i + 1)
		} else {
			n.Children[side^1] = int32(-1 - inside)
		}
		t.nodes = append(t.nodes, n)
	}
	return head
}

// newTestMap builds a world split at x = 0. West of it is area 1 with a
// solid wall, east of it area 2 with a block of water. Portal 1 joins
// the two areas. Submodel 1 is a door slab around the origin.
func newTestMap() *testMap {
	t := &testMap{raw: make(map[int][]byte)}
	t.texinfo = []bsp.Texinfo{
		texinfo("e1u1/wall", 0),
		texinfo("e1u1/water", bsp.SurfWarp),
	}
	wall := t.addBrush(wallMins, wallMaxs, bsp.ContentsSolid, 0)
	water := t.addBrush(waterMins, waterMaxs, bsp.ContentsWater, 1)
	door := t.addBrush(doorMins, doorMaxs, bsp.ContentsSolid, 0)

	t.addLeaf(bsp.ContentsSolid, -1, 0)
	t.addLeaf(0, 0, 1)
	t.addLeaf(0, 1, 2)
	t.addLeaf(bsp.ContentsSolid, 0, 1, wall)
	t.addLeaf(bsp.ContentsWater, 1, 2, water)
	t.addLeaf(bsp.ContentsSolid, -1, 0, door)

	t.nodes = append(t.nodes, bsp.Node{PlaneNum: int32(t.addPlane(0, 1, 0))})
	east := t.addBoxNodes(waterMins, waterMaxs, leafEmptyEast, leafWater)
	west := t.addBoxNodes(wallMins, wallMaxs, leafEmptyWest, leafWall)
	t.nodes[0].Children = [2]int32{int32(east), int32(west)}
	t.addBoxNodes(doorMins, doorMaxs, leafEmptyWest, leafDoor)

	t.models = []bsp.Model{
		{Mins: [3]float32{-256, -256, -256}, Maxs: [3]float32{256, 256, 256}},
		{Mins: [3]float32(doorMins), Maxs: [3]float32(doorMaxs), HeadNode: doorHeadNode},
	}

	t.areas = []bsp.Area{
		{},
		{NumAreaPortals: 1, FirstAreaPortal: 0},
		{NumAreaPortals: 1, FirstAreaPortal: 1},
	}
	t.portals = []bsp.AreaPortal{
		{PortalNum: 1, OtherArea: 2},
		{PortalNum: 1, OtherArea: 1},
	}

	// two clusters: 0 sees itself, 1 sees both, both hear both
	t.vis = make([]byte, 20)
	binary.LittleEndian.PutUint32(t.vis[0:], 2)
	binary.LittleEndian.PutUint32(t.vis[4:], 20)
	binary.LittleEndian.PutUint32(t.vis[8:], 22)
	binary.LittleEndian.PutUint32(t.vis[12:], 21)
	binary.LittleEndian.PutUint32(t.vis[16:], 22)
	t.vis = append(t.vis, 0x01, 0x03, 0x03)

	t.entities = testEntities + "\x00"
	return t
}

func (t *testMap) bytes() []byte {
	var lumps [bsp.NumLumps][]byte
	lumps[bsp.LumpEntities] = []byte(t.entities)
	lumps[bsp.LumpPlanes] = bsp.EncodeLump(t.planes)
	lumps[bsp.LumpVisibility] = t.vis
	lumps[bsp.LumpNodes] = bsp.EncodeLump(t.nodes)
	lumps[bsp.LumpTexinfo] = bsp.EncodeLump(t.texinfo)
	lumps[bsp.LumpLeafs] = bsp.EncodeLump(t.leafs)
	lumps[bsp.LumpLeafBrushes] = bsp.EncodeLump(t.leafBrushes)
	lumps[bsp.LumpModels] = bsp.EncodeLump(t.models)
	lumps[bsp.LumpBrushes] = bsp.EncodeLump(t.brushes)
	lumps[bsp.LumpBrushSides] = bsp.EncodeLump(t.sides)
	lumps[bsp.LumpAreas] = bsp.EncodeLump(t.areas)
	lumps[bsp.LumpAreaPortals] = bsp.EncodeLump(t.portals)
	for l, b := range t.raw {
		lumps[l] = b
	}
	return bsp.Assemble(bsp.Version, lumps)
}

func (t *testMap) load(tb testing.TB) *Model {
	tb.Helper()
	m, err := Load(testMapName, t.bytes())
	if err != nil {
		tb.Fatalf("Load: %v", err)
	}
	return m
}

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func nearVec(a, b vec.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}
