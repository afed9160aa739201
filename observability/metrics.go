// Package observability exposes Prometheus metrics for pipeline runs.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_stats",
		Subsystem: "pipeline",
		Name:      "uploads_total",
		Help:      "Uploaded exports by source kind and outcome.",
	}, []string{"kind", "outcome"})
	rowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_stats",
		Subsystem: "pipeline",
		Name:      "rows_total",
		Help:      "Source rows processed, split into kept and dropped.",
	}, []string{"status"})
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_stats",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Dataset cache lookups by result.",
	}, []string{"result"})
	processDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activity_stats",
		Subsystem: "pipeline",
		Name:      "process_duration_seconds",
		Help:      "Time spent parsing and processing one export.",
		Buckets:   prometheus.DefBuckets,
	})
	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_stats",
		Subsystem: "server",
		Name:      "sessions",
		Help:      "Upload sessions currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(uploadsTotal, rowsTotal, cacheLookups, processDuration, activeSessions)
}

// RecordUpload counts one upload attempt.
func RecordUpload(kind string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	uploadsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordRows counts kept and dropped rows of a processed export.
func RecordRows(kept, dropped int) {
	rowsTotal.WithLabelValues("kept").Add(float64(kept))
	rowsTotal.WithLabelValues("dropped").Add(float64(dropped))
}

// RecordCacheLookup counts a dataset cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveProcessing records how long processing took.
func ObserveProcessing(d time.Duration) {
	processDuration.Observe(d.Seconds())
}

// SetSessions reports the number of live sessions.
func SetSessions(n int) {
	activeSessions.Set(float64(n))
}
