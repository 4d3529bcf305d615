package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK      = "ok"
	resultError   = "error"
	resultLimited = "limited"
	resultPanic   = "panic"
)

type Metrics struct {
	Connections  prometheus.Gauge
	Events       *prometheus.CounterVec
	RelayDropped prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "messenger",
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Open realtime connections.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "ws",
			Name:      "events_total",
			Help:      "Inbound realtime events by type and result.",
		}, []string{"type", "result"}),
		RelayDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "messenger",
			Subsystem: "ws",
			Name:      "relay_dropped_total",
			Help:      "Outbound events dropped because the connection buffer was full.",
		}),
	}

	reg.MustRegister(m.Connections, m.Events, m.RelayDropped)

	return m
}
