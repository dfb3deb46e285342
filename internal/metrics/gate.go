package metrics

import "github.com/prometheus/client_golang/prometheus"

// Gate Prometheus metrics.
var (
	GateVerdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotgate",
			Name:      "gate_verdicts_total",
			Help:      "Total gate verdicts by outcome and rejection kind",
		},
		[]string{"outcome", "kind", "target_slot"},
	)

	GateErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slotgate",
			Name:      "gate_errors_total",
			Help:      "Total gate evaluation errors",
		},
		[]string{"error_type"},
	)

	GateBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "slotgate",
			Name:      "gate_batch_size",
			Help:      "Number of documents per batch evaluation",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)

var gateMetricsRegistered bool

// RegisterGateMetrics registers Prometheus gate metrics. Must be called once from main.
func RegisterGateMetrics() {
	if gateMetricsRegistered {
		return
	}
	prometheus.MustRegister(GateVerdictsTotal)
	prometheus.MustRegister(GateErrorsTotal)
	prometheus.MustRegister(GateBatchSize)
	gateMetricsRegistered = true
}
