// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"quake2world/conlog"
)

var (
	mutex      sync.RWMutex
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	NOTIFY  flag = 1 << 1
	ROM     flag = 1 << 6
)

type Cvar struct {
	mu           sync.RWMutex
	archive      bool
	notify       bool
	rom          bool
	name         string
	stringValue  string
	defaultValue string
}

// All returns the registered cvars sorted by name.
func All() []*Cvar {
	mutex.RLock()
	defer mutex.RUnlock()
	r := append([]*Cvar(nil), cvarArray...)
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

// ResetAll sets every cvar back to its default value.
func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}

// Flags is the short form used in listings: A archive, N notify, R rom.
func (cv *Cvar) Flags() string {
	var b strings.Builder
	for _, f := range []struct {
		set bool
		c   byte
	}{{cv.archive, 'A'}, {cv.notify, 'N'}, {cv.rom, 'R'}} {
		if f.set {
			b.WriteByte(f.c)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (cv *Cvar) DefaultValue() string {
	return cv.defaultValue
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.mu.Lock()
	changed := cv.stringValue != s
	cv.stringValue = s
	cv.mu.Unlock()
	if cv.notify && changed {
		conlog.Printf("\"%s\" changed to \"%s\"\n", cv.name, s)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	return cv.stringValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

// Bool is true for any value but "0" and the empty string.
func (cv *Cvar) Bool() bool {
	s := cv.String()
	return s != "0" && s != ""
}

func Get(name string) (*Cvar, bool) {
	mutex.RLock()
	defer mutex.RUnlock()
	cv, ok := cvarByName[name]
	return cv, ok
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value, stringValue: value}
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	mutex.Lock()
	defer mutex.Unlock()
	if _, ok := cvarByName[name]; ok {
		return nil, fmt.Errorf("Can't register variable %s, already defined", name)
	}

	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.notify = flags&NOTIFY != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		log.Panic(n)
	}
	return cv
}

// Set assigns a registered cvar by name, reporting whether it exists.
func Set(name, value string) bool {
	cv, ok := Get(name)
	if !ok {
		conlog.Warnf("Cvar_Set: variable %v not found\n", name)
		return false
	}
	cv.SetByString(value)
	return true
}
