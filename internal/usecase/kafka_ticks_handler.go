package usecase

import (
	"context"
	"encoding/json"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	pkgkafka "CoinPulse/pkg/kafka"
)

// KafkaTicksHandler consumes tick messages and writes them to the tick store.
type KafkaTicksHandler struct {
	topic   string
	storage domrepo.TickStore
	metrics domrepo.Metrics
}

func NewKafkaTicksHandler(topic string, storage domrepo.TickStore, metrics domrepo.Metrics) *KafkaTicksHandler {
	return &KafkaTicksHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaTicksHandler) Topic() string { return h.topic }

func (h *KafkaTicksHandler) Handle(ctx context.Context, b []byte) error {
	var t models.Tick
	if err := json.Unmarshal(b, &t); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if t.Timestamp > 1e11 { // ms
		t.Timestamp = t.Timestamp / 1000
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(t.Timestamp, 0)).Seconds())

	start := time.Now()
	err := h.storage.Store(ctx, &t)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordMessageSent("clickhouse", t.Symbol)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTicksHandler)(nil)
