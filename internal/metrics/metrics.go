// Package metrics provides Prometheus metrics for policymcp.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all Prometheus metrics for policymcp.
type Metrics struct {
	ToolCallsTotal   *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	ResourceReadsTotal   *prometheus.CounterVec
	ResourceReadDuration *prometheus.HistogramVec

	UsersTotal        prometheus.Gauge
	DocumentTextBytes prometheus.Gauge

	ServerUptimeSeconds prometheus.GaugeFunc
	ServerStartTime     time.Time
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		ServerStartTime: time.Now(),
	}

	m.ToolCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policymcp_tool_calls_total",
			Help: "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	m.ToolCallDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policymcp_tool_call_duration_seconds",
			Help:    "Duration of MCP tool calls in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"tool"},
	)

	m.ResourceReadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policymcp_resource_reads_total",
			Help: "Total number of MCP resource reads",
		},
		[]string{"resource", "status"},
	)

	m.ResourceReadDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policymcp_resource_read_duration_seconds",
			Help:    "Duration of MCP resource reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	m.UsersTotal = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "policymcp_users_total",
			Help: "Number of user records in the store after the last append",
		},
	)

	m.DocumentTextBytes = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "policymcp_document_text_bytes",
			Help: "Size in bytes of the text extracted at the last read",
		},
	)

	m.ServerUptimeSeconds = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "policymcp_server_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.ServerStartTime).Seconds() },
	)

	return m
}

// RecordToolCall records a tool call with its status.
func (m *Metrics) RecordToolCall(tool string, err error, duration time.Duration) {
	m.ToolCallsTotal.WithLabelValues(tool, status(err)).Inc()
	m.ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordResourceRead records a resource read with its status.
func (m *Metrics) RecordResourceRead(resource string, err error, duration time.Duration) {
	m.ResourceReadsTotal.WithLabelValues(resource, status(err)).Inc()
	m.ResourceReadDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

// SetUsers updates the user record gauge.
func (m *Metrics) SetUsers(n int) {
	m.UsersTotal.Set(float64(n))
}

// SetDocumentTextBytes updates the document size gauge.
func (m *Metrics) SetDocumentTextBytes(n int) {
	m.DocumentTextBytes.Set(float64(n))
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
