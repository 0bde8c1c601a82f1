// SPDX-License-Identifier: GPL-2.0-or-later

// Package pack reads PACK archives. Quake 2 .pak files use the same
// layout as the Quake 1 ones.
package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotPack      = errors.New("not a pack file")
	ErrDuplicate    = errors.New("files in pack are not unique")
	ErrEntryOutside = errors.New("pack entry outside of file")
)

type header struct {
	ID     [4]byte
	Offset int32
	Size   int32
}

type entry struct {
	Name   [56]byte
	Offset int32
	Size   int32
}

const entrySize = 64

type Pack struct {
	r     io.ReaderAt
	c     io.Closer
	files map[string]qfile
	name  string
}

type qfile struct {
	offset int64
	size   int64
}

// Open returns a io.SectionReader or os.ErrNotExist if the pak has no
// entry with the provided name. Names are matched case insensitively.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[strings.ToLower(name)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.r, q.offset, q.size), nil
}

// ReadFile returns the contents of the named entry.
func (p *Pack) ReadFile(name string) ([]byte, error) {
	s, err := p.Open(name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, s.Size())
	if _, err := io.ReadFull(s, b); err != nil {
		return nil, errors.Wrapf(err, "reading %s from %s", name, p.name)
	}
	return b, nil
}

// Names lists the entries in sorted order.
func (p *Pack) Names() []string {
	n := make([]string, 0, len(p.files))
	for k := range p.files {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	if p.c == nil {
		return nil
	}
	return p.c.Close()
}

func (p *Pack) init(size int64) error {
	var h header
	if err := binary.Read(io.NewSectionReader(p.r, 0, 12), binary.LittleEndian, &h); err != nil {
		return errors.Wrap(ErrNotPack, err.Error())
	}
	if !bytes.Equal([]byte("PACK"), h.ID[:]) {
		return ErrNotPack
	}
	if h.Offset < 0 || h.Size < 0 || int64(h.Offset)+int64(h.Size) > size {
		return errors.Wrapf(ErrEntryOutside, "directory at %d, %d bytes", h.Offset, h.Size)
	}
	filenum := h.Size / entrySize
	entries := make([]entry, filenum)
	dir := io.NewSectionReader(p.r, int64(h.Offset), int64(h.Size))
	if err := binary.Read(dir, binary.LittleEndian, entries); err != nil {
		return errors.Wrap(err, "reading pack directory")
	}
	p.files = make(map[string]qfile, filenum)
	for _, e := range entries {
		n := bytes.IndexByte(e.Name[:], 0)
		if n == -1 {
			n = len(e.Name)
		}
		name := strings.ToLower(string(e.Name[:n]))
		if _, ok := p.files[name]; ok {
			return errors.Wrap(ErrDuplicate, name)
		}
		if e.Offset < 0 || e.Size < 0 || int64(e.Offset)+int64(e.Size) > size {
			return errors.Wrapf(ErrEntryOutside, "%s at %d, %d bytes", name, e.Offset, e.Size)
		}
		p.files[name] = qfile{
			offset: int64(e.Offset),
			size:   int64(e.Size),
		}
	}
	return nil
}

// NewReader reads a pack from r, which holds size bytes.
func NewReader(r io.ReaderAt, size int64, name string) (*Pack, error) {
	p := &Pack{r: r, name: name}
	if err := p.init(size); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// NewPackReader opens the pack file at path. The file stays open until
// Close.
func NewPackReader(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	p, err := NewReader(f, fi.Size(), path)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.c = f
	return p, nil
}

// Write lays out a pack holding files, sorted by name.
func Write(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for n := range files {
		if len(n) >= 56 {
			return errors.Errorf("pack entry name too long: %s", n)
		}
		names = append(names, n)
	}
	sort.Strings(names)

	ofs := int32(12)
	entries := make([]entry, len(names))
	for i, n := range names {
		copy(entries[i].Name[:], n)
		entries[i].Offset = ofs
		entries[i].Size = int32(len(files[n]))
		ofs += entries[i].Size
	}
	h := header{Offset: ofs, Size: int32(len(entries) * entrySize)}
	copy(h.ID[:], "PACK")
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	for _, n := range names {
		if _, err := w.Write(files[n]); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, entries)
}
