package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

// Metrics holds the Prometheus collectors for tool calls and upstream traffic.
// All record methods are safe on a nil receiver so components can run without
// metrics wired in.
type Metrics struct {
	// ToolCallsTotal counts tool invocations by tool name and outcome.
	ToolCallsTotal *prometheus.CounterVec
	// ToolCallDuration tracks end-to-end tool latency.
	ToolCallDuration *prometheus.HistogramVec
	// UpstreamRequestsTotal counts GraphQL round trips by operation and outcome.
	UpstreamRequestsTotal *prometheus.CounterVec
	// UpstreamRequestDuration tracks GraphQL round trip latency.
	UpstreamRequestDuration *prometheus.HistogramVec
	// PagesTotal counts listing pages consumed by page walks.
	PagesTotal prometheus.Counter
	// ProductsTotal counts products emitted by page walks.
	ProductsTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ToolCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mcp_tool_calls_total",
			Help: "Total number of tool calls by tool and outcome",
		}, []string{"tool", "outcome"}),
		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_mcp_tool_call_duration_seconds",
			Help:    "Duration of tool calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		}, []string{"tool"}),
		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_mcp_upstream_requests_total",
			Help: "Total number of GraphQL requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		UpstreamRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_mcp_upstream_request_duration_seconds",
			Help:    "Duration of GraphQL requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		PagesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_mcp_walk_pages_total",
			Help: "Total number of listing pages consumed",
		}),
		ProductsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_mcp_walk_products_total",
			Help: "Total number of products emitted by listing walks",
		}),
	}
}

// RecordToolCall observes one finished tool call.
func (m *Metrics) RecordToolCall(tool, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// RecordUpstreamRequest observes one GraphQL round trip.
func (m *Metrics) RecordUpstreamRequest(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordPage counts one consumed listing page and the products it carried.
func (m *Metrics) RecordPage(products int) {
	if m == nil {
		return
	}
	m.PagesTotal.Inc()
	m.ProductsTotal.Add(float64(products))
}
