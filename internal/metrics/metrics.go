// Package metrics exposes the Prometheus collectors of the retention engine.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Cleanup trigger label values.
const (
	TriggerScheduled = "scheduled"
	TriggerOnDemand  = "on_demand"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

type Metrics struct {
	cleanupRuns       *prometheus.CounterVec
	cleanupDuration   *prometheus.HistogramVec
	deletedChats      *prometheus.CounterVec
	deletedMessages   *prometheus.CounterVec
	cleanupUserFaults prometheus.Counter
	lastScheduledRun  prometheus.Gauge
	batchOps          *prometheus.CounterVec
	batchAffected     *prometheus.CounterVec
	quotaRejections   *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// InitPrometheusMetrics creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil). Go runtime and process collectors
// are registered too when withRuntime is set.
func InitPrometheusMetrics(namespace string, reg prometheus.Registerer, withRuntime bool) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		cleanupRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_runs_total",
				Help:      "Cleanup executions by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		cleanupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cleanup_duration_seconds",
				Help:      "Duration of cleanup executions",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"trigger"},
		),
		deletedChats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_deleted_chats_total",
				Help:      "Chats deleted by cleanup",
			},
			[]string{"trigger"},
		),
		deletedMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_deleted_messages_total",
				Help:      "Messages deleted by cleanup",
			},
			[]string{"trigger"},
		),
		cleanupUserFaults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cleanup_user_failures_total",
				Help:      "Per-user failures isolated during scheduled cleanup",
			},
		),
		lastScheduledRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cleanup_last_scheduled_run_timestamp_seconds",
				Help:      "Unix time the last scheduled cleanup finished",
			},
		),
		batchOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_operations_total",
				Help:      "Batch mutations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		batchAffected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batch_affected_chats_total",
				Help:      "Chats changed by batch mutations",
			},
			[]string{"operation"},
		),
		quotaRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quota_rejections_total",
				Help:      "Operations rejected by a per-user ceiling",
			},
			[]string{"kind"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status class",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		m.cleanupRuns,
		m.cleanupDuration,
		m.deletedChats,
		m.deletedMessages,
		m.cleanupUserFaults,
		m.lastScheduledRun,
		m.batchOps,
		m.batchAffected,
		m.quotaRejections,
		m.httpRequests,
		m.httpDuration,
	)
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// RecordCleanup records one cleanup execution.
func (m *Metrics) RecordCleanup(trigger, outcome string, chats, messages int, d time.Duration) {
	if m == nil {
		return
	}
	m.cleanupRuns.WithLabelValues(trigger, outcome).Inc()
	m.cleanupDuration.WithLabelValues(trigger).Observe(d.Seconds())
	m.deletedChats.WithLabelValues(trigger).Add(float64(chats))
	m.deletedMessages.WithLabelValues(trigger).Add(float64(messages))
}

// RecordUserFailure counts a user skipped by a scheduled run.
func (m *Metrics) RecordUserFailure() {
	if m == nil {
		return
	}
	m.cleanupUserFaults.Inc()
}

// MarkScheduledRun stamps the completion time of a scheduled run.
func (m *Metrics) MarkScheduledRun(at time.Time) {
	if m == nil {
		return
	}
	m.lastScheduledRun.Set(float64(at.Unix()))
}

// RecordBatch records one batch mutation.
func (m *Metrics) RecordBatch(op, outcome string, affected int) {
	if m == nil {
		return
	}
	m.batchOps.WithLabelValues(op, outcome).Inc()
	m.batchAffected.WithLabelValues(op).Add(float64(affected))
}

// RecordQuotaRejection counts an operation rejected by a ceiling.
func (m *Metrics) RecordQuotaRejection(kind string) {
	if m == nil {
		return
	}
	m.quotaRejections.WithLabelValues(kind).Inc()
}

// RecordHTTP records one served request.
func (m *Metrics) RecordHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
