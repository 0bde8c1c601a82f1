// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWorldLoad(t *testing.T) {
	w := NewWorld()
	if m := w.Model(); m.Name() != "" || m.NumLeafs() != 1 {
		t.Errorf("new world holds %q with %d leafs", m.Name(), m.NumLeafs())
	}

	tm := newTestMap()
	m, err := w.Load(testMapName, tm.bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Model() != m {
		t.Errorf("loaded model is not active")
	}

	tm.leafs[0].Contents = 0
	if _, err := w.Load("maps/broken.bsp", tm.bytes()); !IsDrop(err) {
		t.Errorf("Load of broken map = %v", err)
	}
	if got := w.Model(); got == m || got.Name() != "" {
		t.Errorf("failed load left %q active", got.Name())
	}

	m2, err := w.Load(testMapName, newTestMap().bytes())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m2.ID() == m.ID() {
		t.Errorf("reload kept id %v", m.ID())
	}
	w.Unload()
	if w.Model().Name() != "" {
		t.Errorf("Unload left %q", w.Model().Name())
	}
}

func TestLoadMetrics(t *testing.T) {
	ok := cmMapLoads.With(prometheus.Labels{resultLabel: "ok"})
	failed := cmMapLoads.With(prometheus.Labels{resultLabel: "error"})
	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)
	tracesBefore := testutil.ToFloat64(cmTraces)

	tm := newTestMap()
	m := tm.load(t)
	tm.planes = nil
	if _, err := Load(testMapName, tm.bytes()); err == nil {
		t.Fatalf("Load without planes succeeded")
	}
	m.BoxTrace(zero, box16, zero, zero, 0, -1)

	if d := testutil.ToFloat64(ok) - okBefore; d != 1 {
		t.Errorf("ok loads grew by %v", d)
	}
	if d := testutil.ToFloat64(failed) - failedBefore; d != 1 {
		t.Errorf("failed loads grew by %v", d)
	}
	if d := testutil.ToFloat64(cmTraces) - tracesBefore; d != 1 {
		t.Errorf("traces grew by %v", d)
	}
	if got := testutil.ToFloat64(cmMapBytes); got != float64(m.Size()) {
		t.Errorf("map bytes = %v, want %d", got, m.Size())
	}
}
