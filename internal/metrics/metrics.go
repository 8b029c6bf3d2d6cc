package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classboard",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by handler.",
		},
		[]string{"handler"},
	)

	gridCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classboard",
			Name:      "grid_commits_total",
			Help:      "Count of grid replace operations by result.",
		},
		[]string{"result"},
	)

	commentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classboard",
			Name:      "comment_writes_total",
			Help:      "Count of comment upserts and deletes.",
		},
		[]string{"op"},
	)

	degradedFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "classboard",
			Name:      "degraded_fetch_total",
			Help:      "Count of comment/lecture fetches that degraded to empty.",
		},
		[]string{"source"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, gridCommits, commentWrites, degradedFetches)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

func IncGridCommit(result string) {
	gridCommits.WithLabelValues(result).Inc()
}

func IncCommentWrite(op string) {
	commentWrites.WithLabelValues(op).Inc()
}

func IncDegradedFetch(source string) {
	degradedFetches.WithLabelValues(source).Inc()
}
