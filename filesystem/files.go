// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"quake2world/conlog"
	"quake2world/pack"
)

// BaseGame is the directory every game falls back to.
const BaseGame = "baseq2"

var (
	baseDir string
	gameDir string
	// highest priority first
	search []searchPath
	mutex  sync.RWMutex
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

type searchPath interface {
	Open(name string) (File, error)
	Close() error
	String() string
}

type dirPath string

func (d dirPath) Open(name string) (File, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(name)))
}

func (d dirPath) Close() error   { return nil }
func (d dirPath) String() string { return string(d) }

type packPath struct {
	p *pack.Pack
}

type closer struct {
	*io.SectionReader
}

func (*closer) Close() error {
	return nil
}

func (p packPath) Open(name string) (File, error) {
	// inside a pack file there is no 'root'. all files are relative to '.'
	f, err := p.p.Open(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, err
	}
	return &closer{f}, nil
}

func (p packPath) Close() error   { return p.p.Close() }
func (p packPath) String() string { return p.p.String() }

func GameDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return gameDir
}

// SearchPath lists the directories and packs in lookup order.
func SearchPath() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	r := make([]string, len(search))
	for i, s := range search {
		r[i] = s.String()
	}
	return r
}

// UseBaseDir resets the search path to dir/baseq2.
func UseBaseDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()
	baseDir = dir
	gameDir = filepath.Join(baseDir, BaseGame)
	replace(gameDirPaths(gameDir))
}

// UseGameDir searches the game directory before baseq2. An empty name or
// baseq2 itself only searches baseq2.
func UseGameDir(game string) {
	mutex.Lock()
	defer mutex.Unlock()
	base := filepath.Join(baseDir, BaseGame)
	paths := gameDirPaths(base)
	gameDir = base
	if game != "" && game != BaseGame {
		gameDir = filepath.Join(baseDir, game)
		paths = append(gameDirPaths(gameDir), paths...)
	}
	replace(paths)
}

func replace(paths []searchPath) {
	for _, s := range search {
		if err := s.Close(); err != nil {
			conlog.Warnf("closing %s: %v", s, err)
		}
	}
	search = paths
}

// gameDirPaths returns the packs of dir from pakN down to pak0, then dir.
func gameDirPaths(dir string) []searchPath {
	var paks []searchPath
	for i := 0; ; i++ {
		pfp := filepath.Join(dir, fmt.Sprintf("pak%d.pak", i))
		p, err := pack.NewPackReader(pfp)
		if err != nil {
			if !os.IsNotExist(err) {
				conlog.Warnf("skipping %s: %v", pfp, err)
			}
			break
		}
		conlog.DPrintf("added pack file %s (%d files)", pfp, len(p.Names()))
		paks = append([]searchPath{packPath{p}}, paks...)
	}
	return append(paks, dirPath(dir))
}

// Open returns the first match along the search path.
func Open(name string) (File, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	name = filepath.ToSlash(strings.TrimPrefix(name, "/"))
	for _, s := range search {
		f, err := s.Open(name)
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
