// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status code",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_events_emitted_total",
			Help: "Task events accepted by the notification queue",
		},
		[]string{"event"},
	)
	EventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_events_dropped_total",
			Help: "Task events dropped because the notification queue was full or closed",
		},
		[]string{"event"},
	)
	SinkFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_event_sink_failures_total",
			Help: "Event deliveries that a sink failed to handle",
		},
		[]string{"sink"},
	)

	JobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_processed_total",
			Help: "Background jobs processed by type and result",
		},
		[]string{"type", "result"},
	)

	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)

	TasksPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_purged_total",
			Help: "Soft-deleted tasks physically removed by the cleanup sweep",
		},
	)

	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients",
			Help: "Currently connected websocket subscribers",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		EventsEmitted,
		EventsDropped,
		SinkFailures,
		JobsProcessed,
		RLRequests,
		RLBlocked,
		TasksPurged,
		WSClients,
	)
}
