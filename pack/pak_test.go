// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

var testFiles = map[string][]byte{
	"maps/base1.bsp":    []byte("IBSP not really"),
	"pics/colormap.pcx": {1, 2, 3},
	"Doc1.txt":          []byte("this is the first doc\r\n"),
}

func pakBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := Write(&buf, testFiles); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func TestPak(t *testing.T) {
	b := pakBytes(t)
	p, err := NewReader(bytes.NewReader(b), int64(len(b)), "pak0.pak")
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if p.String() != "pak0.pak" {
		t.Errorf("pack String error: want %v got %v", "pak0.pak", p.String())
	}
	want := []string{"doc1.txt", "maps/base1.bsp", "pics/colormap.pcx"}
	if diff := cmp.Diff(want, p.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	f, err := p.Open("DOC1.TXT")
	if err != nil {
		t.Fatalf("Open doc1: %v", err)
	}
	b1, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("Could not read doc1: %v", err)
	}
	if string(b1) != "this is the first doc\r\n" {
		t.Errorf("doc1 contents is %q", b1)
	}

	bsp, err := p.ReadFile("maps/base1.bsp")
	if err != nil || string(bsp) != "IBSP not really" {
		t.Errorf("ReadFile = %q, %v", bsp, err)
	}
	if _, err := p.Open("maps/base2.bsp"); err != os.ErrNotExist {
		t.Errorf("Open of missing entry = %v", err)
	}
}

func TestPakFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pak0.pak")
	if err := os.WriteFile(path, pakBytes(t), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := NewPackReader(path)
	if err != nil {
		t.Fatalf("could not open %s: %v", path, err)
	}
	defer p.Close()
	if b, err := p.ReadFile("pics/colormap.pcx"); err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("ReadFile = %v, %v", b, err)
	}
}

func TestNotPak(t *testing.T) {
	b := pakBytes(t)
	b[0] = 'X'
	if _, err := NewReader(bytes.NewReader(b), int64(len(b)), "bad.pak"); errors.Cause(err) != ErrNotPack {
		t.Errorf("NewReader = %v, want %v", err, ErrNotPack)
	}
	short := pakBytes(t)
	short = short[:len(short)-10]
	if _, err := NewReader(bytes.NewReader(short), int64(len(short)), "short.pak"); errors.Cause(err) != ErrEntryOutside {
		t.Errorf("NewReader of truncated pak = %v", err)
	}
}
