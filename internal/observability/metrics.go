package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostMutations counts post create/update/delete operations by outcome.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_post_mutations_total",
		Help: "Total number of post mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	// ListRequests counts listing queries by filter shape.
	ListRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_list_requests_total",
		Help: "Total number of listing queries by filter shape",
	}, []string{"search", "category"})

	// DatabaseQueryLatency records database query latency by operation.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// RecordMutation increments the mutation counter for the operation.
func RecordMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	PostMutations.WithLabelValues(operation, outcome).Inc()
}

// RecordList increments the listing counter, labelling whether a search
// term or category filter was present.
func RecordList(hasSearch, hasCategory bool) {
	ListRequests.WithLabelValues(boolLabel(hasSearch), boolLabel(hasCategory)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
