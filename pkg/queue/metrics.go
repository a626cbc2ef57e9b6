package queue

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queueJobsTotal    *prometheus.CounterVec
	queueRetriesTotal *prometheus.CounterVec
	queueDLQTotal     *prometheus.CounterVec
	queueJobSeconds   *prometheus.HistogramVec
	queueMetricsOnce  sync.Once
)

func ensureQueueMetrics() {
	queueMetricsOnce.Do(func() {
		queueJobsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_queue_jobs_total",
				Help: "Processed queue jobs by type and result",
			},
			[]string{"job", "result"},
		)
		queueRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_queue_retries_total",
				Help: "Jobs rescheduled for a later retry",
			},
			[]string{"job"},
		)
		queueDLQTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_queue_dlq_total",
				Help: "Jobs moved to the dead letter queue",
			},
			[]string{"job"},
		)
		queueJobSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_queue_job_seconds",
				Help:    "Job handling time",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		)
	})
}
