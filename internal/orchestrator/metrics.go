package orchestrator

import "github.com/prometheus/client_golang/prometheus"

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admind",
			Subsystem: "orchestrator",
			Name:      "operations_total",
			Help:      "Total operations dispatched, by outcome",
		},
		[]string{"entity", "operation", "outcome"},
	)

	silentRefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admind",
			Subsystem: "orchestrator",
			Name:      "silent_refreshes_total",
			Help:      "Successful background reloads",
		},
		[]string{"entity"},
	)
)

func init() {
	prometheus.MustRegister(operationsTotal, silentRefreshesTotal)
}
