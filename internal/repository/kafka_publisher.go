package repository

import (
	"context"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	pkgkafka "CoinPulse/pkg/kafka"
)

// KafkaTickPublisher implements Publisher for the tick topic. Keyed by symbol
// so per-symbol ordering survives partitioning.
type KafkaTickPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaTickPublisher creates the tick publisher.
func NewKafkaTickPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaTickPublisher{producer: producer, topic: topic}
}

func (p *KafkaTickPublisher) Publish(ctx context.Context, t *models.Tick) error {
	return p.producer.Publish(ctx, p.topic, []byte(t.Symbol), t)
}

func (p *KafkaTickPublisher) PublishBatch(ctx context.Context, ticks []*models.Tick) error {
	if len(ticks) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(ticks))
	for i, t := range ticks {
		msgs[i] = pkgkafka.Message{Key: []byte(t.Symbol), Value: t}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaTickPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// KafkaLogSink adapts the producer to the logger collector's publisher
// contract so error batches land on a Kafka topic.
type KafkaLogSink struct {
	producer *pkgkafka.Producer
}

// NewKafkaLogSink creates the log sink.
func NewKafkaLogSink(producer *pkgkafka.Producer) *KafkaLogSink {
	return &KafkaLogSink{producer: producer}
}

func (s *KafkaLogSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.producer.Publish(ctx, topic, nil, payload)
}
