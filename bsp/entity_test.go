// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const entityLump = `{
"classname" "worldspawn"
"message" "The {Edge}"
}
{
"classname" "func_door"
"model" "*1"
"angle" "-1"
}
{
"classname" "info_player_start"
"origin" "0 0 24"
}
` + "\x00"

func TestParseEntities(t *testing.T) {
	es := ParseEntities([]byte(entityLump))
	if len(es) != 3 {
		t.Fatalf("ParseEntities found %d entities, want 3", len(es))
	}
	if n, _ := es[0].ClassName(); n != "worldspawn" {
		t.Errorf("entity 0 classname = %q", n)
	}
	if m, _ := es[0].Property("message"); m != "The {Edge}" {
		t.Errorf("quoted braces not kept: %q", m)
	}
	if m, ok := es[1].Model(); !ok || m != "*1" {
		t.Errorf("door model = %q, %v", m, ok)
	}
	if _, ok := es[2].Model(); ok {
		t.Errorf("player start has an inline model")
	}
	want := []string{"classname", "origin"}
	if diff := cmp.Diff(want, es[2].PropertyNames()); diff != "" {
		t.Errorf("PropertyNames mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEntitiesUnbalanced(t *testing.T) {
	for _, in := range []string{"}", "{ \"a\" \"b\"", "{ } }"} {
		if es := ParseEntities([]byte(in)); es != nil {
			t.Errorf("ParseEntities(%q) = %v, want nil", in, es)
		}
	}
}
