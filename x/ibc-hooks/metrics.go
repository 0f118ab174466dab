package ibc_hooks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeNone     = "none"
	outcomeDropped  = "dropped"
	outcomeExecuted = "executed"
	outcomeFailed   = "failed"
)

type Metrics struct {
	Directives *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	return &Metrics{
		Directives: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "ibchooks_directives_total",
			Help: "Total number of inbound transfers seen by the hook, by directive outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(outcome string) {
	m.Directives.WithLabelValues(outcome).Inc()
}
