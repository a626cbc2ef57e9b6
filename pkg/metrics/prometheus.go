package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	messagesSent     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
	targetsIngested  *prometheus.CounterVec
	summaryRecompute *prometheus.CounterVec
	dispersionLevel  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		messagesSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_messages_sent_total",
				Help: "Total number of messages sent to backend",
			},
			[]string{"backend", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coinpulse_last_price",
				Help: "Last recorded price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		targetsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_analyst_targets_ingested_total",
				Help: "Total number of analyst targets accepted for storage",
			},
			[]string{"symbol"},
		),
		summaryRecompute: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_summary_recompute_total",
				Help: "Total number of consensus summary recomputations",
			},
			[]string{"symbol", "result"},
		),
		dispersionLevel: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coinpulse_dispersion_signal_level",
				Help: "Latest dispersion signal level (1-5) per symbol",
			},
			[]string{"symbol"},
		),
	}
}

// RecordMessageSent records a message sent to a backend.
func (r *Recorder) RecordMessageSent(backend, symbol string) {
	r.messagesSent.WithLabelValues(backend, symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordTargetIngested records an accepted analyst target.
func (r *Recorder) RecordTargetIngested(symbol string) {
	r.targetsIngested.WithLabelValues(symbol).Inc()
}

// RecordSummaryRecompute records a consensus recomputation outcome.
func (r *Recorder) RecordSummaryRecompute(symbol, result string) {
	r.summaryRecompute.WithLabelValues(symbol, result).Inc()
}

// RecordDispersionLevel records the latest dispersion signal level for a symbol.
func (r *Recorder) RecordDispersionLevel(symbol string, level int) {
	r.dispersionLevel.WithLabelValues(symbol).Set(float64(level))
}
