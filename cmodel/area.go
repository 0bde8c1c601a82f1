// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"quake2world/conlog"
	"quake2world/cvars"
)

// floodArea assumes areaMu is held for writing.
func (m *Model) floodArea(area, floodNum int) error {
	a := &m.areas[area]
	if a.floodValid == m.floodValid {
		if a.floodNum == floodNum {
			return nil
		}
		return fatalf(m.name, "FloodArea", ErrReflooded, "area %d (flood %d, was %d)", area, floodNum, a.floodNum)
	}
	a.floodNum = floodNum
	a.floodValid = m.floodValid
	for _, p := range m.areaPortals[a.FirstPortal : a.FirstPortal+a.NumPortals] {
		if !m.portalOpen[p.PortalNum] {
			continue
		}
		if err := m.floodArea(p.OtherArea, floodNum); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) floodAreaConnections() error {
	// all current floods are now invalid
	m.floodValid++
	floodNum := 0
	// area 0 is not used
	for i := 1; i < len(m.areas); i++ {
		if m.areas[i].floodValid == m.floodValid {
			continue // already flooded into
		}
		floodNum++
		if err := m.floodArea(i, floodNum); err != nil {
			return err
		}
	}
	return nil
}

// FloodAreaConnections recomputes the connected area groups from the
// current portal states.
func (m *Model) FloodAreaConnections() error {
	m.areaMu.Lock()
	defer m.areaMu.Unlock()
	return m.floodAreaConnections()
}

// SetAreaPortalState opens or closes a portal and refloods.
func (m *Model) SetAreaPortalState(portal int, open bool) error {
	m.areaMu.Lock()
	defer m.areaMu.Unlock()
	if portal < 0 || portal > len(m.areaPortals) {
		return fatalf(m.name, "SetAreaPortalState", ErrBadPortal, "portal %d (%d portals)", portal, len(m.areaPortals))
	}
	m.portalOpen[portal] = open
	return m.floodAreaConnections()
}

// PortalOpen reports the current state of a portal.
func (m *Model) PortalOpen(portal int) bool {
	m.areaMu.RLock()
	defer m.areaMu.RUnlock()
	if portal < 0 || portal >= len(m.portalOpen) {
		return false
	}
	return m.portalOpen[portal]
}

// AreasConnected reports whether a1 and a2 are joined through open
// portals.
func (m *Model) AreasConnected(a1, a2 int) bool {
	if cvars.CmNoAreas.Bool() {
		return true
	}
	m.areaMu.RLock()
	defer m.areaMu.RUnlock()
	if a1 < 0 || a1 >= len(m.areas) || a2 < 0 || a2 >= len(m.areas) {
		conlog.Warnf("AreasConnected: area %d or %d out of range (%d areas)", a1, a2, len(m.areas))
		return false
	}
	return m.areas[a1].floodNum == m.areas[a2].floodNum
}

// WriteAreaBits returns a bit vector of all the areas that are in the
// same flood as area. Area 0 connects to everything.
func (m *Model) WriteAreaBits(area int) []byte {
	m.areaMu.RLock()
	defer m.areaMu.RUnlock()
	bits := make([]byte, (len(m.areas)+7)>>3)
	if area < 0 || area >= len(m.areas) {
		conlog.Warnf("WriteAreaBits: area %d out of range (%d areas)", area, len(m.areas))
		return bits
	}
	if cvars.CmNoAreas.Bool() {
		// for debugging, send everything
		for i := range bits {
			bits[i] = 0xff
		}
		return bits
	}
	floodNum := m.areas[area].floodNum
	for i, a := range m.areas {
		if area == 0 || a.floodNum == floodNum {
			bits[i>>3] |= 1 << (i & 7)
		}
	}
	return bits
}

// HeadnodeVisible reports whether any leaf below node is in a cluster
// set in vis.
func (m *Model) HeadnodeVisible(node int, vis []byte) bool {
	if m.numNodes == 0 && node >= 0 {
		return false
	}
	return m.headnodeVisible(Child(node), vis)
}

func (m *Model) headnodeVisible(c Child, vis []byte) bool {
	if c.IsLeaf() {
		cluster := m.leafs[c.Leaf()].Cluster
		if cluster == -1 || cluster>>3 >= len(vis) {
			return false
		}
		return vis[cluster>>3]&(1<<(cluster&7)) != 0
	}
	n := &m.nodes[c.Node()]
	if m.headnodeVisible(n.Children[0], vis) {
		return true
	}
	return m.headnodeVisible(n.Children[1], vis)
}
