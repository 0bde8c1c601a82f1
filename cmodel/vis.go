// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"quake2world/bsp"
	"quake2world/conlog"
)

// decompressVis expands a run-length encoded row into out. A zero byte is
// followed by the number of zero bytes it stands for.
func decompressVis(in, out []byte) {
	row := len(out)
	o := 0
	for i := 0; o < row; {
		if i >= len(in) {
			conlog.Warnf("decompressVis: truncated row")
			return
		}
		if in[i] != 0 {
			out[o] = in[i]
			o++
			i++
			continue
		}
		if i+1 >= len(in) {
			conlog.Warnf("decompressVis: truncated row")
			return
		}
		c := int(in[i+1])
		i += 2
		if o+c > row {
			c = row - o
			conlog.Warnf("decompressVis: overrun")
		}
		// out is zeroed by the caller
		o += c
	}
}

func (m *Model) rowSize() int {
	return (m.numClusters + 7) >> 3
}

func (m *Model) clusterVis(cluster, kind int) []byte {
	row := make([]byte, m.rowSize())
	if cluster == -1 {
		return row
	}
	if len(m.visibility) == 0 {
		for i := range row {
			row[i] = 0xff
		}
		return row
	}
	if cluster < 0 || cluster >= m.numClusters {
		conlog.Warnf("clusterVis: bad cluster %d (%d clusters)", cluster, m.numClusters)
		return row
	}
	decompressVis(m.visibility[m.visOffsets[cluster][kind]:], row)
	return row
}

// ClusterPVS returns the potentially visible set of cluster, one bit per
// cluster. Cluster -1 sees nothing; a map without visibility data sees
// everything.
func (m *Model) ClusterPVS(cluster int) []byte {
	return m.clusterVis(cluster, bsp.VisPVS)
}

// ClusterPHS returns the potentially hearable set of cluster.
func (m *Model) ClusterPHS(cluster int) []byte {
	return m.clusterVis(cluster, bsp.VisPHS)
}
