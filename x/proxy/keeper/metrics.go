package keeper

import (
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/cast"

	"github.com/oraichain/cw1-ibc-hooks/x/proxy/types"
)

const (
	resultOK       = "ok"
	resultError    = "error"
	resultReverted = "reverted"
)

type Metrics struct {
	ActionsExecuted *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	return &Metrics{
		ActionsExecuted: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "proxy_actions_executed_total",
			Help: "Total number of proxy actions executed, by kind and result (ok, error, reverted)",
		}, []string{"kind", "result"}),
	}
}

// observeBatch records every action of a batch once it has been committed or
// reverted. Actions that succeeded in a reverted batch count as reverted.
func (m *Metrics) observeBatch(outcomes []types.ActionOutcome, committed bool) {
	for _, outcome := range outcomes {
		result := resultOK
		switch {
		case !outcome.Succeeded():
			result = resultError
		case !committed:
			result = resultReverted
		}
		m.ActionsExecuted.WithLabelValues(string(outcome.Kind), result).Inc()
	}
}

// RegistererFromAppOptions returns the default prometheus registerer when
// telemetry is enabled in app.toml and nil otherwise.
func RegistererFromAppOptions(appOpts servertypes.AppOptions) prometheus.Registerer {
	if cast.ToBool(appOpts.Get("telemetry.enabled")) {
		return prometheus.DefaultRegisterer
	}
	return nil
}
