package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// MCP client metrics
	MCPConnectsTotal    *prometheus.CounterVec
	MCPConnected        prometheus.Gauge
	MCPConnectionsOpen  prometheus.Gauge
	MCPToolsAdvertised  prometheus.Gauge
	MCPRepliesTotal     *prometheus.CounterVec
	MCPToolCallsTotal   *prometheus.CounterVec
	MCPToolCallDuration *prometheus.HistogramVec

	// System metrics
	GoRoutines  prometheus.Gauge
	MemoryUsage prometheus.Gauge
}

// NewMetrics creates all metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// MCP client metrics
		MCPConnectsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_connects_total",
				Help: "Total number of connect attempts",
			},
			[]string{"status"}, // success, error
		),
		MCPConnected: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcp_connected",
				Help: "Whether the session is currently connected (1) or not (0)",
			},
		),
		MCPConnectionsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcp_connections_open",
				Help: "Number of transport connections currently open",
			},
		),
		MCPToolsAdvertised: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mcp_tools_advertised",
				Help: "Number of tools advertised by the connected server",
			},
		),
		MCPRepliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_weather_replies_total",
				Help: "Total number of weather replies by outcome",
			},
			[]string{"kind"}, // ok or an error code
		),
		MCPToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_tool_calls_total",
				Help: "Total number of remote tool calls",
			},
			[]string{"tool_name", "status"}, // success, error
		),
		MCPToolCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_tool_call_duration_seconds",
				Help:    "Duration of remote tool calls in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"tool_name"},
		),

		// System metrics
		GoRoutines: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "go_goroutines_current",
				Help: "Number of goroutines that currently exist",
			},
		),
		MemoryUsage: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "memory_usage_bytes",
				Help: "Current memory usage in bytes",
			},
		),
	}
}

// RecordHTTPRequest records metrics for an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// IncHTTPRequestsInFlight increments the in-flight requests counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight requests counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}

// RecordConnect records the outcome of a connect attempt
func (m *Metrics) RecordConnect(ok bool, toolCount int) {
	if !ok {
		m.MCPConnectsTotal.WithLabelValues("error").Inc()
		m.MCPConnected.Set(0)
		m.MCPToolsAdvertised.Set(0)
		return
	}
	m.MCPConnectsTotal.WithLabelValues("success").Inc()
	m.MCPConnected.Set(1)
	m.MCPToolsAdvertised.Set(float64(toolCount))
}

// RecordReply records the outcome of a weather request
func (m *Metrics) RecordReply(kind string) {
	if kind == "" {
		kind = "ok"
	}
	m.MCPRepliesTotal.WithLabelValues(kind).Inc()
}

// RecordConnectionOpened records a transport connection being opened
func (m *Metrics) RecordConnectionOpened() {
	m.MCPConnectionsOpen.Inc()
}

// RecordConnectionClosed records a transport connection being released
func (m *Metrics) RecordConnectionClosed() {
	m.MCPConnectionsOpen.Dec()
}

// RecordToolCall records a remote tool call
func (m *Metrics) RecordToolCall(toolName, status string, duration time.Duration) {
	m.MCPToolCallsTotal.WithLabelValues(toolName, status).Inc()
	m.MCPToolCallDuration.WithLabelValues(toolName).Observe(duration.Seconds())
}

// UpdateSystemMetrics updates system-level metrics
func (m *Metrics) UpdateSystemMetrics(goroutines int, memoryBytes uint64) {
	m.GoRoutines.Set(float64(goroutines))
	m.MemoryUsage.Set(float64(memoryBytes))
}
