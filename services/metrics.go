package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application metrics. It is separate from the default
// registry so tests can read counters without interference.
var Registry = prometheus.NewRegistry()

var (
	recalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "recalculations_total",
			Help:      "Document recalculations by document kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradeops",
			Name:      "exports_total",
			Help:      "Document exports by format and outcome.",
		},
		[]string{"format", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		recalculationsTotal,
		exportsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err):
		return "warning"
	default:
		return "error"
	}
}

// ObserveRecalculation counts one recalculation of a document of kind k.
func ObserveRecalculation(k DocumentKind, err error) {
	recalculationsTotal.WithLabelValues(string(k), outcome(err)).Inc()
}

// ObserveExport counts one export attempt in format.
func ObserveExport(format string, err error) {
	exportsTotal.WithLabelValues(format, outcome(err)).Inc()
}

// MetricsHandler serves Registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
