// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"encoding/binary"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"quake2world/bsp"
	"quake2world/conlog"
	"quake2world/math/vec"
)

// Load builds a collision model from the bytes of a bsp file. On error
// no partial model is returned. All load errors are Drop errors.
func Load(name string, data []byte) (*Model, error) {
	m, err := load(name, data)
	instrumentLoad(err, len(data))
	if err != nil {
		conlog.Logger().Warn().Err(err).Str("map", name).Msg("collision model load failed")
		return nil, err
	}
	conlog.Logger().Debug().
		Str("map", name).
		Str("id", m.id.String()).
		Int("planes", m.numPlanes).
		Int("nodes", m.numNodes).
		Int("leafs", m.numLeafs).
		Int("brushes", len(m.brushes)-1).
		Int("models", len(m.submodels)).
		Int("clusters", m.numClusters).
		Int("areas", len(m.areas)).
		Msg("collision model loaded")
	return m, nil
}

type loadStep struct {
	op   string
	load func(data []byte, h *bsp.Header) error
}

func load(name string, data []byte) (*Model, error) {
	h, err := bsp.ReadHeader(data)
	if err != nil {
		return nil, dropError(name, "ReadHeader", err)
	}
	m := &Model{
		id:   uuid.New(),
		name: name,
		size: len(data),
	}
	for _, s := range []loadStep{
		{"LoadSurfaces", m.loadSurfaces},
		{"LoadLeafs", m.loadLeafs},
		{"LoadLeafBrushes", m.loadLeafBrushes},
		{"LoadPlanes", m.loadPlanes},
		{"LoadBrushes", m.loadBrushes},
		{"LoadBrushSides", m.loadBrushSides},
		{"LoadSubmodels", m.loadSubmodels},
		{"LoadNodes", m.loadNodes},
		{"LoadAreas", m.loadAreas},
		{"LoadAreaPortals", m.loadAreaPortals},
		{"LoadVisibility", m.loadVisibility},
		{"LoadEntityString", m.loadEntityString},
		{"Validate", func([]byte, *bsp.Header) error { return m.validate() }},
		{"InitBoxHull", func([]byte, *bsp.Header) error { return m.initBoxHull() }},
	} {
		if err := s.load(data, h); err != nil {
			if _, ok := err.(*Error); ok {
				return nil, err
			}
			return nil, dropError(name, s.op, err)
		}
	}
	m.areaMu.Lock()
	err = m.floodAreaConnections()
	m.areaMu.Unlock()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// decode reads lump l and enforces the record count bounds.
func decode[T any](data []byte, h *bsp.Header, l, min, max int) ([]T, error) {
	recs, err := bsp.DecodeLump[T](data, h, l)
	if err != nil {
		return nil, err
	}
	if len(recs) < min {
		return nil, errors.Wrapf(ErrTooFew, "map with no %s", bsp.LumpName(l))
	}
	if len(recs) > max {
		return nil, errors.Wrapf(ErrTooMany, "map has too many %s (%d > %d)", bsp.LumpName(l), len(recs), max)
	}
	return recs, nil
}

func (m *Model) loadSurfaces(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Texinfo](data, h, bsp.LumpTexinfo, 1, bsp.MaxTexinfo)
	if err != nil {
		return err
	}
	m.surfaces = make([]Surface, len(in))
	for i, t := range in {
		m.surfaces[i] = Surface{
			Name:  bsp.CString(t.Texture[:]),
			Flags: t.Flags,
			Value: t.Value,
		}
	}
	return nil
}

func (m *Model) loadLeafs(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Leaf](data, h, bsp.LumpLeafs, 1, bsp.MaxLeafs)
	if err != nil {
		return err
	}
	m.leafs = make([]Leaf, len(in), len(in)+1)
	m.numLeafs = len(in)
	for i, l := range in {
		m.leafs[i] = Leaf{
			Contents:       l.Contents,
			Cluster:        int(l.Cluster),
			Area:           int(l.Area),
			FirstLeafBrush: int(l.FirstLeafBrush),
			NumLeafBrushes: int(l.NumLeafBrushes),
		}
	}
	if m.leafs[0].Contents != bsp.ContentsSolid {
		return errors.Wrapf(ErrLeafZeroNotSolid, "contents 0x%x", m.leafs[0].Contents)
	}
	m.emptyLeaf = -1
	for i := 1; i < len(m.leafs); i++ {
		if m.leafs[i].Contents == 0 {
			m.emptyLeaf = i
			break
		}
	}
	if m.emptyLeaf == -1 {
		return ErrNoEmptyLeaf
	}
	return nil
}

func (m *Model) loadLeafBrushes(data []byte, h *bsp.Header) error {
	in, err := decode[uint16](data, h, bsp.LumpLeafBrushes, 1, bsp.MaxLeafBrushes)
	if err != nil {
		return err
	}
	m.leafBrushes = make([]int, len(in), len(in)+1)
	for i, b := range in {
		m.leafBrushes[i] = int(b)
	}
	return nil
}

func (m *Model) loadPlanes(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Plane](data, h, bsp.LumpPlanes, 1, bsp.MaxPlanes)
	if err != nil {
		return err
	}
	m.planes = make([]Plane, len(in), len(in)+boxPlanes)
	m.numPlanes = len(in)
	for i, p := range in {
		if p.Type < bsp.PlaneX || p.Type > bsp.PlaneNone {
			return errors.Wrapf(ErrBadPlaneType, "plane %d has type %d", i, p.Type)
		}
		n := vec.Vec3(p.Normal)
		m.planes[i] = Plane{
			Normal:   n,
			Dist:     p.Dist,
			Type:     int(p.Type),
			SignBits: signBits(n),
		}
	}
	return nil
}

func (m *Model) loadBrushes(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Brush](data, h, bsp.LumpBrushes, 0, bsp.MaxBrushes)
	if err != nil {
		return err
	}
	m.brushes = make([]Brush, len(in), len(in)+1)
	for i, b := range in {
		m.brushes[i] = Brush{
			Contents:  b.Contents,
			FirstSide: int(b.FirstSide),
			NumSides:  int(b.NumSides),
		}
	}
	return nil
}

func (m *Model) loadBrushSides(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.BrushSide](data, h, bsp.LumpBrushSides, 0, bsp.MaxBrushSides)
	if err != nil {
		return err
	}
	m.brushSides = make([]BrushSide, len(in), len(in)+6)
	for i, s := range in {
		if int(s.PlaneNum) >= m.numPlanes {
			return errors.Wrapf(ErrBadIndex, "brush side %d: plane %d", i, s.PlaneNum)
		}
		if int(s.SurfNum) >= len(m.surfaces) {
			return errors.Wrapf(ErrBadIndex, "brush side %d: surface %d", i, s.SurfNum)
		}
		side := BrushSide{Plane: int(s.PlaneNum), Surface: &m.nullSurface}
		if s.SurfNum >= 0 {
			side.Surface = &m.surfaces[s.SurfNum]
		}
		m.brushSides[i] = side
	}
	return nil
}

func (m *Model) loadSubmodels(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Model](data, h, bsp.LumpModels, 1, bsp.MaxModels)
	if err != nil {
		return err
	}
	m.submodels = make([]Submodel, len(in))
	for i, s := range in {
		sm := Submodel{
			Origin:   vec.Vec3(s.Origin),
			HeadNode: int(s.HeadNode),
		}
		// spread the mins / maxs by a pixel
		for j := 0; j < 3; j++ {
			sm.Mins[j] = s.Mins[j] - 1
			sm.Maxs[j] = s.Maxs[j] + 1
		}
		m.submodels[i] = sm
	}
	return nil
}

func (m *Model) loadNodes(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Node](data, h, bsp.LumpNodes, 1, bsp.MaxNodes)
	if err != nil {
		return err
	}
	m.nodes = make([]Node, len(in), len(in)+6)
	m.numNodes = len(in)
	for i, n := range in {
		if n.PlaneNum < 0 || int(n.PlaneNum) >= m.numPlanes {
			return errors.Wrapf(ErrBadIndex, "node %d: plane %d", i, n.PlaneNum)
		}
		node := Node{Plane: int(n.PlaneNum)}
		for j, c := range n.Children {
			child := Child(c)
			if !m.validChild(child, len(in)) {
				return errors.Wrapf(ErrBadIndex, "node %d: child %d", i, c)
			}
			// nodes are stored in preorder, children always follow
			if !child.IsLeaf() && child.Node() <= i {
				return errors.Wrapf(ErrBadIndex, "node %d: child %d loops back", i, c)
			}
			node.Children[j] = child
		}
		m.nodes[i] = node
	}
	return nil
}

func (m *Model) validChild(c Child, numNodes int) bool {
	if c.IsLeaf() {
		return c.Leaf() < m.numLeafs
	}
	return c.Node() < numNodes
}

func (m *Model) loadAreas(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.Area](data, h, bsp.LumpAreas, 0, bsp.MaxAreas)
	if err != nil {
		return err
	}
	m.areas = make([]Area, len(in))
	for i, a := range in {
		m.areas[i] = Area{
			NumPortals:  int(a.NumAreaPortals),
			FirstPortal: int(a.FirstAreaPortal),
		}
	}
	return nil
}

func (m *Model) loadAreaPortals(data []byte, h *bsp.Header) error {
	in, err := decode[bsp.AreaPortal](data, h, bsp.LumpAreaPortals, 0, bsp.MaxAreaPortals)
	if err != nil {
		return err
	}
	m.areaPortals = make([]AreaPortal, len(in))
	for i, p := range in {
		if p.PortalNum < 0 || p.PortalNum > bsp.MaxAreaPortals {
			return errors.Wrapf(ErrBadIndex, "area portal %d: portal number %d", i, p.PortalNum)
		}
		if p.OtherArea < 0 || int(p.OtherArea) >= len(m.areas) {
			return errors.Wrapf(ErrBadIndex, "area portal %d: area %d", i, p.OtherArea)
		}
		m.areaPortals[i] = AreaPortal{
			PortalNum: int(p.PortalNum),
			OtherArea: int(p.OtherArea),
		}
	}
	m.portalOpen = make([]bool, bsp.MaxAreaPortals+1)
	return nil
}

func (m *Model) loadVisibility(data []byte, h *bsp.Header) error {
	raw := h.RawLump(data, bsp.LumpVisibility)
	if len(raw) > bsp.MaxVisibility {
		return errors.Wrapf(ErrTooMany, "visibility lump is %d bytes", len(raw))
	}
	if len(raw) == 0 {
		// no vis: every cluster the leafs mention sees everything
		m.numClusters = 0
		for _, l := range m.leafs {
			if l.Cluster+1 > m.numClusters {
				m.numClusters = l.Cluster + 1
			}
		}
		return nil
	}
	if len(raw) < 4 {
		return errors.Wrapf(ErrBadVisibility, "%d bytes", len(raw))
	}
	n := int(int32(binary.LittleEndian.Uint32(raw)))
	if n < 0 || 4+8*n > len(raw) {
		return errors.Wrapf(ErrBadVisibility, "%d clusters in %d bytes", n, len(raw))
	}
	m.visibility = make([]byte, len(raw))
	copy(m.visibility, raw)
	m.numClusters = n
	m.visOffsets = make([][2]int32, n)
	for i := 0; i < n; i++ {
		for j := 0; j < 2; j++ {
			o := int32(binary.LittleEndian.Uint32(raw[4+8*i+4*j:]))
			if o < 0 || int(o) >= len(raw) {
				return errors.Wrapf(ErrBadVisibility, "cluster %d offset %d", i, o)
			}
			m.visOffsets[i][j] = o
		}
	}
	return nil
}

func (m *Model) loadEntityString(data []byte, h *bsp.Header) error {
	raw := h.RawLump(data, bsp.LumpEntities)
	if len(raw) > bsp.MaxEntString {
		return errors.Wrapf(ErrTooMany, "entity string is %d bytes", len(raw))
	}
	if n := len(bsp.ParseEntities(raw)); n > bsp.MaxEntities {
		return errors.Wrapf(ErrTooMany, "%d entities", n)
	}
	m.entityString = strings.TrimRight(string(raw), "\x00")
	return nil
}

// validate checks the references between lumps loaded out of order.
func (m *Model) validate() error {
	for i, b := range m.leafBrushes {
		if b >= len(m.brushes) {
			return errors.Wrapf(ErrBadIndex, "leaf brush %d: brush %d", i, b)
		}
	}
	for i, l := range m.leafs {
		if l.FirstLeafBrush+l.NumLeafBrushes > len(m.leafBrushes) {
			return errors.Wrapf(ErrBadIndex, "leaf %d: leaf brushes %d+%d", i, l.FirstLeafBrush, l.NumLeafBrushes)
		}
		if l.Area < 0 || (l.Area > 0 && l.Area >= len(m.areas)) {
			return errors.Wrapf(ErrBadIndex, "leaf %d: area %d", i, l.Area)
		}
		if l.Cluster < -1 || l.Cluster >= m.numClusters {
			return errors.Wrapf(ErrBadIndex, "leaf %d: cluster %d", i, l.Cluster)
		}
	}
	for i, b := range m.brushes {
		if b.FirstSide < 0 || b.NumSides < 0 || b.FirstSide+b.NumSides > len(m.brushSides) {
			return errors.Wrapf(ErrBadIndex, "brush %d: sides %d+%d", i, b.FirstSide, b.NumSides)
		}
	}
	for i, s := range m.submodels {
		if !m.validChild(Child(s.HeadNode), m.numNodes) {
			return errors.Wrapf(ErrBadIndex, "model %d: head node %d", i, s.HeadNode)
		}
	}
	for i, a := range m.areas {
		if a.FirstPortal < 0 || a.NumPortals < 0 || a.FirstPortal+a.NumPortals > len(m.areaPortals) {
			return errors.Wrapf(ErrBadIndex, "area %d: portals %d+%d", i, a.FirstPortal, a.NumPortals)
		}
	}
	return m.checkPortalSymmetry()
}

// checkPortalSymmetry makes sure every portal is listed by both areas it
// joins. Flooding relies on that.
func (m *Model) checkPortalSymmetry() error {
	for i, a := range m.areas {
		for _, p := range m.areaPortals[a.FirstPortal : a.FirstPortal+a.NumPortals] {
			o := m.areas[p.OtherArea]
			found := false
			for _, q := range m.areaPortals[o.FirstPortal : o.FirstPortal+o.NumPortals] {
				if q.PortalNum == p.PortalNum && q.OtherArea == i {
					found = true
					break
				}
			}
			if !found {
				return errors.Wrapf(ErrAsymmetricPortal, "portal %d from area %d to %d", p.PortalNum, i, p.OtherArea)
			}
		}
	}
	return nil
}
