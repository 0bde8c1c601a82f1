// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"testing"
)

func TestRegister(t *testing.T) {
	cv, err := Register("test_register", "0", NONE)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if cv.Bool() {
		t.Errorf("%s = %q is true", cv.Name(), cv.String())
	}
	if _, err := Register("test_register", "1", NONE); err == nil {
		t.Errorf("second Register did not fail")
	}
	if got, ok := Get("test_register"); !ok || got != cv {
		t.Errorf("Get(test_register) = %v, %v", got, ok)
	}
}

func TestSetAndReset(t *testing.T) {
	cv := MustRegister("test_set", "1", NONE)
	if !Set("test_set", "2.5") {
		t.Fatalf("Set failed")
	}
	if cv.String() != "2.5" {
		t.Errorf("Set = %q, want 2.5", cv.String())
	}
	ResetAll()
	if cv.String() != cv.DefaultValue() {
		t.Errorf("ResetAll = %q, want %q", cv.String(), cv.DefaultValue())
	}
	if Set("test_missing", "1") {
		t.Errorf("Set of unknown cvar succeeded")
	}
}

func TestROM(t *testing.T) {
	cv := MustRegister("test_rom", "7", ROM)
	cv.SetByString("8")
	if cv.String() != "7" {
		t.Errorf("ROM cvar changed to %v", cv.String())
	}
}

func TestAllAndFlags(t *testing.T) {
	MustRegister("test_flags_b", "0", ARCHIVE|NOTIFY)
	MustRegister("test_flags_a", "0", ROM)

	var names []string
	flags := make(map[string]string)
	for _, cv := range All() {
		names = append(names, cv.Name())
		flags[cv.Name()] = cv.Flags()
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("All not sorted: %q before %q", names[i-1], names[i])
		}
	}
	if got := flags["test_flags_a"]; got != "  R" {
		t.Errorf("test_flags_a flags = %q", got)
	}
	if got := flags["test_flags_b"]; got != "AN " {
		t.Errorf("test_flags_b flags = %q", got)
	}
}
