// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

var (
	ErrShortHeader   = errors.New("file too short for a bsp header")
	ErrBadMagic      = errors.New("not an IBSP file")
	ErrBadVersion    = errors.New("unsupported bsp version")
	ErrLumpBounds    = errors.New("lump outside of file")
	ErrFunnyLumpSize = errors.New("funny lump size")
)

// ReadHeader decodes and sanity checks the fixed header. All lumps are
// checked to lie within data.
func ReadHeader(data []byte) (*Header, error) {
	var h Header
	if len(data) < binary.Size(h) {
		return nil, ErrShortHeader
	}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	if h.Ident != Magic {
		return nil, errors.Wrapf(ErrBadMagic, "ident 0x%08x", uint32(h.Ident))
	}
	if h.Version != Version && h.Version != VersionExtended {
		return nil, errors.Wrapf(ErrBadVersion, "version %d", h.Version)
	}
	for i, l := range h.Lumps {
		if l.Offset < 0 || l.Length < 0 || int64(l.Offset)+int64(l.Length) > int64(len(data)) {
			return nil, errors.Wrapf(ErrLumpBounds, "%s lump (offset %d, length %d)",
				LumpName(i), l.Offset, l.Length)
		}
	}
	return &h, nil
}

// RawLump returns the bytes of lump l. The slice aliases data.
func (h *Header) RawLump(data []byte, l int) []byte {
	lump := h.Lumps[l]
	return data[lump.Offset : lump.Offset+lump.Length]
}

// DecodeLump reads lump l as a little-endian array of T. The lump length
// must be a multiple of the record size.
func DecodeLump[T any](data []byte, h *Header, l int) ([]T, error) {
	var zero T
	size := binary.Size(zero)
	raw := h.RawLump(data, l)
	if size <= 0 || len(raw)%size != 0 {
		return nil, errors.Wrapf(ErrFunnyLumpSize, "%s lump: %d bytes, record size %d",
			LumpName(l), len(raw), size)
	}
	out := make([]T, len(raw)/size)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s lump", LumpName(l))
	}
	return out, nil
}

// CString returns the bytes up to the first NUL as a string.
func CString(b []byte) string {
	if n := bytes.IndexByte(b, 0); n != -1 {
		b = b[:n]
	}
	return string(b)
}
