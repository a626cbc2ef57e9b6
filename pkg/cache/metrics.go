package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheRequests    *prometheus.CounterVec
	cacheMetricsOnce sync.Once
)

func ensureCacheMetrics() {
	cacheMetricsOnce.Do(func() {
		cacheRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_cache_requests_total",
				Help: "Cache lookups by layer and result",
			},
			[]string{"layer", "result"},
		)
	})
}

func observeCacheRequest(layer, result string) {
	ensureCacheMetrics()
	cacheRequests.WithLabelValues(layer, result).Inc()
}
