package usecase

import (
	"context"
	"encoding/json"

	domrepo "CoinPulse/internal/domain/repository"
	pkgkafka "CoinPulse/pkg/kafka"
)

// KafkaTargetsHandler consumes analyst-target messages and runs them through
// the same validation and transactional recompute path as POST /api/data.
type KafkaTargetsHandler struct {
	topic    string
	ingestor *DataIngestor
	metrics  domrepo.Metrics
}

func NewKafkaTargetsHandler(topic string, ingestor *DataIngestor, metrics domrepo.Metrics) *KafkaTargetsHandler {
	return &KafkaTargetsHandler{topic: topic, ingestor: ingestor, metrics: metrics}
}

func (h *KafkaTargetsHandler) Topic() string { return h.topic }

func (h *KafkaTargetsHandler) Handle(ctx context.Context, b []byte) error {
	if err := h.ingestor.IngestTarget(ctx, json.RawMessage(b)); err != nil {
		h.metrics.RecordError("consumer_target")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaTargetsHandler)(nil)
