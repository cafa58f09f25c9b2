package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	scheduleCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openhours",
			Name:      "schedule_commit_total",
			Help:      "Count of weekly schedule commits by outcome.",
		},
		[]string{"status"},
	)

	overrideOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openhours",
			Name:      "override_total",
			Help:      "Count of override operations by action.",
		},
		[]string{"action"},
	)

	statusResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openhours",
			Name:      "status_resolved_total",
			Help:      "Count of open-now resolutions by result.",
		},
		[]string{"result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openhours",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(scheduleCommits, overrideOps, statusResolved, httpRequests)
	})
}

func IncCommit(status string) {
	scheduleCommits.WithLabelValues(status).Inc()
}

func IncOverride(action string) {
	overrideOps.WithLabelValues(action).Inc()
}

func IncStatusResolved(open bool) {
	result := "closed"
	if open {
		result = "open"
	}
	statusResolved.WithLabelValues(result).Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
