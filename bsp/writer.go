// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"
)

// EncodeLump is the inverse of DecodeLump.
func EncodeLump[T any](records []T) []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer only fail for types binary can not size
	if err := binary.Write(&buf, binary.LittleEndian, records); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Assemble lays out a header followed by the given lumps in order.
// Lumps left nil are written with zero length.
func Assemble(version int32, lumps [NumLumps][]byte) []byte {
	h := Header{Ident: Magic, Version: version}
	ofs := int32(binary.Size(h))
	for i, l := range lumps {
		h.Lumps[i] = Lump{Offset: ofs, Length: int32(len(l))}
		ofs += int32(len(l))
	}
	var buf bytes.Buffer
	buf.Grow(int(ofs))
	_ = binary.Write(&buf, binary.LittleEndian, &h)
	for _, l := range lumps {
		buf.Write(l)
	}
	return buf.Bytes()
}
