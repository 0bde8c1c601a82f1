// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// little-endian "IBSP"
const Magic = 'I' | 'B'<<8 | 'S'<<16 | 'P'<<24

const (
	Version         = 38
	VersionExtended = 69
)

// upper design bounds
// leaf faces, leaf brushes, planes, and vertexes are still bounded by
// 16 bit limits
const (
	MaxModels      = 1024
	MaxBrushes     = 16384
	MaxEntities    = 2048
	MaxEntString   = 0x40000
	MaxTexinfo     = 16384
	MaxAreas       = 256
	MaxAreaPortals = 1024
	MaxPlanes      = 65536
	MaxNodes       = 65536
	MaxBrushSides  = 65536
	MaxLeafs       = 65536
	MaxLeafBrushes = 65536
	MaxVisibility  = 0x400000
)

// Lump indices in header order.
const (
	LumpEntities = iota
	LumpPlanes
	LumpVertexes
	LumpVisibility
	LumpNodes
	LumpTexinfo
	LumpFaces
	LumpLighting
	LumpLeafs
	LumpLeafFaces
	LumpLeafBrushes
	LumpEdges
	LumpFaceEdges
	LumpModels
	LumpBrushes
	LumpBrushSides
	LumpPop
	LumpAreas
	LumpAreaPortals
	LumpNormals // quake2world extension
	NumLumps
)

var lumpNames = [NumLumps]string{
	"entities", "planes", "vertexes", "visibility", "nodes", "texinfo",
	"faces", "lighting", "leafs", "leaf faces", "leaf brushes", "edges",
	"face edges", "models", "brushes", "brush sides", "pop", "areas",
	"area portals", "normals",
}

// LumpName is used in load errors.
func LumpName(l int) string {
	if l < 0 || l >= NumLumps {
		return "unknown"
	}
	return lumpNames[l]
}

// called d_bsp_lump_t in c
type Lump struct {
	Offset int32
	Length int32
}

type Header struct {
	Ident   int32
	Version int32
	Lumps   [NumLumps]Lump
}

// 0-2 are axial planes, 3-5 are non-axial planes snapped to the nearest
const (
	PlaneX = iota
	PlaneY
	PlaneZ
	PlaneAnyX
	PlaneAnyY
	PlaneAnyZ
	PlaneNone
)

// planes (x & ~1) and (x & ~1) + 1 are always opposites
type Plane struct {
	Normal [3]float32
	Dist   float32
	Type   int32
}

type Node struct {
	PlaneNum  int32
	Children  [2]int32 // negative numbers are -(leafs+1), not nodes
	Mins      [3]int16 // for frustum culling
	Maxs      [3]int16
	FirstFace uint16
	NumFaces  uint16 // counting both sides
}

type Texinfo struct {
	Vecs        [2][4]float32 // [s/t][xyz offset]
	Flags       int32         // surface values
	Value       int32         // light emission, etc
	Texture     [32]byte      // texture name (textures/*.tga)
	NextTexinfo int32         // no longer used, here to maintain compatibility
}

type Leaf struct {
	Contents       int32 // OR of all brushes
	Cluster        int16
	Area           int16
	Mins           [3]int16
	Maxs           [3]int16
	FirstLeafFace  uint16
	NumLeafFaces   uint16
	FirstLeafBrush uint16
	NumLeafBrushes uint16
}

type Brush struct {
	FirstSide int32
	NumSides  int32
	Contents  int32
}

type BrushSide struct {
	PlaneNum uint16 // facing out of the leaf
	SurfNum  int16
}

type Model struct {
	Mins      [3]float32
	Maxs      [3]float32
	Origin    [3]float32 // for sounds or lights
	HeadNode  int32
	FirstFace int32 // submodels just draw faces
	NumFaces  int32 // without walking the bsp tree
}

// each area has a list of portals that lead into other areas
// when portals are closed, other areas may not be visible or
// hearable even if the vis info says that it should be
type Area struct {
	NumAreaPortals  int32
	FirstAreaPortal int32
}

type AreaPortal struct {
	PortalNum int32
	OtherArea int32
}

// The visibility lump consists of a header with a count, then
// byte offsets for the PVS and PHS of each cluster, then the raw
// compressed bit vectors.
const (
	VisPVS = 0
	VisPHS = 1
)
