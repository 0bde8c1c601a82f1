// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"sync/atomic"

	"quake2world/conlog"
)

// World holds the active collision model. Loading a map swaps in a new
// model; queries keep using whatever Model they got from World.Model.
type World struct {
	model atomic.Pointer[Model]
}

func NewWorld() *World {
	w := &World{}
	w.model.Store(Empty())
	return w
}

// Model returns the active model, the empty model if nothing is loaded.
func (w *World) Model() *Model {
	if m := w.model.Load(); m != nil {
		return m
	}
	return Empty()
}

// Load replaces the active model. The previous map is dropped before
// loading starts so a failed load leaves the empty model in place.
func (w *World) Load(name string, data []byte) (*Model, error) {
	if old := w.model.Swap(Empty()); old != nil && old.name != "" {
		conlog.DPrintf("unloading %s", old.name)
	}
	m, err := Load(name, data)
	if err != nil {
		return nil, err
	}
	w.model.Store(m)
	return m, nil
}

// Unload makes the empty model active.
func (w *World) Unload() {
	w.model.Store(Empty())
}
