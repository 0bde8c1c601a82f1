// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmodel answers collision queries against a loaded Quake 2 bsp:
// point contents, box traces, potentially visible sets and area
// connectivity.
package cmodel

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"quake2world/bsp"
	"quake2world/math/vec"
)

// Child is a node child reference. Non-negative values are node indices,
// negative values encode leaf -1-c.
type Child int32

func NodeChild(n int) Child { return Child(n) }
func LeafChild(l int) Child { return Child(-1 - l) }

func (c Child) IsLeaf() bool { return c < 0 }
func (c Child) Leaf() int    { return int(-1 - c) }
func (c Child) Node() int    { return int(c) }

type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     int // bsp.PlaneX ... bsp.PlaneNone
	SignBits int // bit i set if Normal[i] < 0
}

// Axial reports whether the plane is perpendicular to one of the axes.
func (p *Plane) Axial() bool {
	return p.Type < bsp.PlaneAnyX
}

// Distance returns the signed distance of v to the plane.
func (p *Plane) Distance(v vec.Vec3) float32 {
	if p.Axial() {
		return v[p.Type] - p.Dist
	}
	return vec.Dot(p.Normal, v) - p.Dist
}

type Node struct {
	Plane    int
	Children [2]Child // front, back
}

type Leaf struct {
	Contents       int32
	Cluster        int
	Area           int
	FirstLeafBrush int
	NumLeafBrushes int
}

type Brush struct {
	Contents  int32
	FirstSide int
	NumSides  int
}

type BrushSide struct {
	Plane   int
	Surface *Surface
}

// Surface is the collision relevant part of a texinfo.
type Surface struct {
	Name  string
	Flags int32
	Value int32
}

// Submodel is an inline brush model. Index 0 is the world.
type Submodel struct {
	Mins, Maxs vec.Vec3
	Origin     vec.Vec3
	HeadNode   int
}

type Area struct {
	NumPortals  int
	FirstPortal int

	floodNum   int
	floodValid int
}

type AreaPortal struct {
	PortalNum int
	OtherArea int
}

// Model is a loaded collision model. Its geometry never changes after
// Load returns and may be queried from any goroutine. Area portal state
// is guarded internally. HeadnodeForBox rewrites the shared box hull and
// must not race with traces against that hull.
type Model struct {
	id   uuid.UUID
	name string
	size int

	planes      []Plane
	nodes       []Node
	leafs       []Leaf
	leafBrushes []int
	brushes     []Brush
	brushSides  []BrushSide
	surfaces    []Surface
	submodels   []Submodel
	nullSurface Surface

	// counts of loaded records, without the box hull
	numPlanes int
	numNodes  int
	numLeafs  int

	emptyLeaf int

	numClusters int
	visOffsets  [][2]int32
	visibility  []byte

	entityString string

	box boxHull

	areaMu      sync.RWMutex
	areas       []Area
	areaPortals []AreaPortal
	portalOpen  []bool
	floodValid  int
}

// Empty returns the model in effect while no map is loaded. It has one
// leaf, one area and one cluster, and traces never hit anything.
func Empty() *Model {
	m := &Model{
		id:          uuid.New(),
		leafs:       []Leaf{{Cluster: 0}},
		numLeafs:    1,
		submodels:   []Submodel{{}},
		numClusters: 1,
		areas:       make([]Area, 1),
		portalOpen:  make([]bool, bsp.MaxAreaPortals+1),
	}
	_ = m.initBoxHull()
	return m
}

// ID identifies this particular load.
func (m *Model) ID() uuid.UUID { return m.id }

// Name is the map name passed to Load, "" for the empty model.
func (m *Model) Name() string { return m.name }

// Size is the length of the bsp file in bytes.
func (m *Model) Size() int { return m.size }

func (m *Model) NumModels() int   { return len(m.submodels) }
func (m *Model) NumClusters() int { return m.numClusters }
func (m *Model) NumLeafs() int    { return m.numLeafs }
func (m *Model) NumAreas() int    { return len(m.areas) }

// World returns submodel 0.
func (m *Model) World() *Submodel {
	return &m.submodels[0]
}

// InlineModel resolves "*N" references from the entity string.
func (m *Model) InlineModel(name string) (*Submodel, error) {
	const op = "InlineModel"
	if len(name) < 2 || name[0] != '*' {
		return nil, dropf(m.name, op, ErrBadModelName, "%q", name)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n >= len(m.submodels) {
		return nil, dropf(m.name, op, ErrBadModelName, "%q (%d models)", name, len(m.submodels))
	}
	return &m.submodels[n], nil
}

func (m *Model) EntityString() string { return m.entityString }

// Entities parses the entity string.
func (m *Model) Entities() []*bsp.Entity {
	return bsp.ParseEntities([]byte(m.entityString))
}

func (m *Model) leaf(op string, n int) (*Leaf, error) {
	if n < 0 || n >= m.numLeafs {
		return nil, dropf(m.name, op, ErrBadLeaf, "%d (%d leafs)", n, m.numLeafs)
	}
	return &m.leafs[n], nil
}

func (m *Model) LeafContents(n int) (int32, error) {
	l, err := m.leaf("LeafContents", n)
	if err != nil {
		return 0, err
	}
	return l.Contents, nil
}

func (m *Model) LeafCluster(n int) (int, error) {
	l, err := m.leaf("LeafCluster", n)
	if err != nil {
		return 0, err
	}
	return l.Cluster, nil
}

func (m *Model) LeafArea(n int) (int, error) {
	l, err := m.leaf("LeafArea", n)
	if err != nil {
		return 0, err
	}
	return l.Area, nil
}
