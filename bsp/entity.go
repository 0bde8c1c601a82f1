// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"sort"
)

// Entity is one { "key" "value" ... } block of the entity lump.
type Entity struct {
	properties map[string]string
	src        []byte
}

// NewEntity parses the key value pairs of a single entity block.
func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]string), src: p}
	for _, l := range bytes.Split(p, []byte("\n")) {
		key, rest, ok := quoted(l)
		if !ok {
			continue
		}
		value, _, ok := quoted(rest)
		if !ok {
			continue
		}
		e.properties[key] = value
	}
	return e
}

// quoted returns the first "..." token of l and what follows it.
func quoted(l []byte) (string, []byte, bool) {
	q := bytes.IndexByte(l, '"')
	if q == -1 {
		return "", nil, false
	}
	r := l[q+1:]
	q = bytes.IndexByte(r, '"')
	if q == -1 {
		return "", nil, false
	}
	return string(r[:q]), r[q+1:], true
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.properties[name]
	return v, ok
}

// ClassName returns the classname property.
func (e *Entity) ClassName() (string, bool) {
	return e.Property("classname")
}

// Model returns the inline model reference ("*N") of brush entities.
func (e *Entity) Model() (string, bool) {
	m, ok := e.Property("model")
	if !ok || len(m) < 2 || m[0] != '*' {
		return "", false
	}
	return m, true
}

// PropertyNames returns the keys in sorted order.
func (e *Entity) PropertyNames() []string {
	n := make([]string, 0, len(e.properties))
	for k := range e.properties {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (e *Entity) String() string {
	return string(e.src)
}

// ParseEntities splits the entity lump into its top level blocks.
// Braces inside quoted values are ignored. Unbalanced input yields nil.
func ParseEntities(data []byte) []*Entity {
	data = bytes.TrimRight(data, "\x00")
	var es []*Entity
	var depth int
	inQuote := false
	start := -1
	for i, b := range data {
		switch b {
		case '"':
			inQuote = !inQuote
		case '{':
			if inQuote {
				break
			}
			if start == -1 {
				start = i
			} else {
				depth++
			}
		case '}':
			if inQuote {
				break
			}
			if start == -1 {
				return nil
			}
			if depth == 0 {
				es = append(es, NewEntity(data[start:i+1]))
				start = -1
			} else {
				depth--
			}
		}
	}
	if start != -1 {
		return nil
	}
	return es
}
