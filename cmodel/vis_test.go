// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecompressVis(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		row  int
		want []byte
	}{
		{"runs", []byte{7, 0, 5, 5, 0, 3, 1, 1}, 12, []byte{7, 0, 0, 0, 0, 0, 5, 0, 0, 0, 1, 1}},
		{"literal", []byte{0xff, 0x0f}, 2, []byte{0xff, 0x0f}},
		{"overrun", []byte{0, 10}, 4, []byte{0, 0, 0, 0}},
		{"truncated", []byte{0xff}, 3, []byte{0xff, 0, 0}},
		{"dangling zero", []byte{0x80, 0}, 3, []byte{0x80, 0, 0}},
		{"trailing data", []byte{1, 2, 3, 4}, 2, []byte{1, 2}},
	}
	for _, tc := range tests {
		out := make([]byte, tc.row)
		decompressVis(tc.in, out)
		if diff := cmp.Diff(tc.want, out); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestClusterVis(t *testing.T) {
	m := newTestMap().load(t)
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"pvs 0", m.ClusterPVS(0), []byte{0x01}},
		{"pvs 1", m.ClusterPVS(1), []byte{0x03}},
		{"phs 0", m.ClusterPHS(0), []byte{0x03}},
		{"phs 1", m.ClusterPHS(1), []byte{0x03}},
		{"pvs -1", m.ClusterPVS(-1), []byte{0x00}},
		{"phs -1", m.ClusterPHS(-1), []byte{0x00}},
		{"pvs out of range", m.ClusterPVS(5), []byte{0x00}},
	}
	for _, tc := range tests {
		if !bytes.Equal(tc.got, tc.want) {
			t.Errorf("%s = %x, want %x", tc.name, tc.got, tc.want)
		}
	}
}

func TestClusterVisWithoutVisData(t *testing.T) {
	tm := newTestMap()
	tm.vis = nil
	m := tm.load(t)
	if m.NumClusters() != 2 {
		t.Errorf("NumClusters = %d, want 2", m.NumClusters())
	}
	for c := 0; c < m.NumClusters(); c++ {
		if got := m.ClusterPVS(c); !bytes.Equal(got, []byte{0xff}) {
			t.Errorf("ClusterPVS(%d) = %x", c, got)
		}
	}
	if got := m.ClusterPVS(-1); !bytes.Equal(got, []byte{0}) {
		t.Errorf("ClusterPVS(-1) = %x", got)
	}
}

func TestClusterRowSize(t *testing.T) {
	m := newTestMap().load(t)
	want := (m.NumClusters() + 7) >> 3
	for c := -1; c < m.NumClusters(); c++ {
		if n := len(m.ClusterPVS(c)); n != want {
			t.Errorf("len(ClusterPVS(%d)) = %d, want %d", c, n, want)
		}
		if n := len(m.ClusterPHS(c)); n != want {
			t.Errorf("len(ClusterPHS(%d)) = %d, want %d", c, n, want)
		}
	}
}
