package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "health_atlas"

var (
	documentLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_loads_total",
			Help:      "Total number of analytics documents loaded, by source tier",
		},
		[]string{"source"},
	)

	fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Total number of external calls substituted with a local computation",
		},
		[]string{"service"},
	)

	reports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Total number of compiled reports",
		},
		[]string{"template", "format"},
	)
)

func RecordDocumentLoad(source string) {
	documentLoads.WithLabelValues(source).Inc()
}

func RecordFallback(service string) {
	fallbacks.WithLabelValues(service).Inc()
}

func RecordReport(template, format string) {
	reports.WithLabelValues(template, format).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
