// Package metrics holds the Prometheus collectors of the application.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is private to the app so tests can build several servers in one process.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freelance",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "freelance",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	ProjectsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "freelance",
		Name:      "projects_created_total",
		Help:      "Projects posted.",
	})

	Applications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freelance",
		Name:      "applications_total",
		Help:      "Apply attempts by outcome (created, duplicate, failed).",
	}, []string{"outcome"})

	StatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "freelance",
		Name:      "application_status_changes_total",
		Help:      "Application status updates by new status.",
	}, []string{"status"})

	NotificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "freelance",
		Name:      "notification_failures_total",
		Help:      "Notification emails that could not be delivered.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		ProjectsCreated,
		Applications,
		StatusChanges,
		NotificationFailures,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
