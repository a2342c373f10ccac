package raftstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics exposes routing outcomes as Prometheus metrics. Each
// router normally shares the default instance; tests register a fresh
// one against their own registry.
type routerMetrics struct {
	sends      *prometheus.CounterVec
	broadcasts prometheus.Counter
	regions    prometheus.Gauge
}

func newRouterMetrics(reg prometheus.Registerer) *routerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	builder := promauto.With(reg)
	return &routerMetrics{
		sends: builder.NewCounterVec(prometheus.CounterOpts{
			Namespace: "regionkv",
			Name:      "raftstore_router_send_total",
			Help:      "Router send attempts by message type and outcome.",
		}, []string{"type", "status"}),
		broadcasts: builder.NewCounter(prometheus.CounterOpts{
			Namespace: "regionkv",
			Name:      "raftstore_router_broadcast_total",
			Help:      "Messages enqueued by broadcasts.",
		}),
		regions: builder.NewGauge(prometheus.GaugeOpts{
			Namespace: "regionkv",
			Name:      "raftstore_router_regions",
			Help:      "Regions currently registered in the routing table.",
		}),
	}
}

var defaultRouterMetrics = newRouterMetrics(prometheus.DefaultRegisterer)
