// Package metrics holds the Prometheus collectors for the storefront API.
//
// Mount Handler on GET /metrics and add middleware.MetricsMiddleware to the
// gin engine; services record domain events through the helpers below.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wooahhan"

var (
	// RequestDuration is labelled by the route template, not the raw path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// GatewayCalls counts generative AI calls by operation (chat, image)
	// and outcome (ok, error, disabled, empty).
	GatewayCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "genai",
			Name:      "calls_total",
			Help:      "Total generative AI calls.",
		},
		[]string{"operation", "outcome"},
	)

	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "genai",
			Name:      "call_duration_seconds",
			Help:      "Duration of generative AI calls in seconds.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"operation"},
	)

	CartOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart mutations by operation.",
		},
		[]string{"operation"}, // add | update | remove | clear
	)

	CheckoutsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "completed_total",
			Help:      "Completed checkouts by payment method.",
		},
		[]string{"method"},
	)

	SessionsSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "swept_total",
		Help:      "Idle sessions removed by the sweeper.",
	})
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	Registry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		GatewayCalls,
		GatewayDuration,
		CartOperations,
		CheckoutsCompleted,
		SessionsSwept,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveGateway records one generative AI call:
//
//	defer metrics.ObserveGateway("chat", &outcome, time.Now())
func ObserveGateway(operation string, outcome *string, start time.Time) {
	GatewayCalls.WithLabelValues(operation, *outcome).Inc()
	GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func RecordCartOperation(operation string) {
	CartOperations.WithLabelValues(operation).Inc()
}

func RecordCheckout(method string) {
	CheckoutsCompleted.WithLabelValues(method).Inc()
}
