// SPDX-License-Identifier: GPL-2.0-or-later

package cmodel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultLabel = "result"

var (
	cmTraces = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cm_traces_total",
		Help: "The number of box traces run.",
	})
	cmBrushTraces = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cm_brush_traces_total",
		Help: "The number of brushes clipped against by traces.",
	})
	cmPointContents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cm_point_contents_total",
		Help: "The number of point to leaf lookups.",
	})
	cmMapLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cm_map_loads_total",
		Help: "The number of map loads by result.",
	}, []string{resultLabel})
	cmMapBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cm_map_bytes",
		Help: "Size of the loaded bsp file.",
	})
)

func instrumentLoad(err error, size int) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cmMapLoads.
		With(prometheus.Labels{resultLabel: result}).
		Inc()
	if err == nil {
		cmMapBytes.Set(float64(size))
	}
}
