// Package metrics defines the application's Prometheus metrics. It is the
// single source of truth for metric names, labels, and help strings; metrics
// register themselves with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasker"

// HTTPRequestsTotal counts completed HTTP requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/api/tasks/{id}")
//   - status: numeric response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method, route, and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request handling time end-to-end.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// TasksCompletedTotal counts transitions of a task into the Completed status,
// whether via mark_complete or a status-changing update.
var TasksCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of task transitions into the Completed status.",
	},
)
