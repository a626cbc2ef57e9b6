package queue

import (
	"context"
	"testing"

	"CoinPulse/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type recordingJob struct {
	handled int
	err     error
}

func (j *recordingJob) Name() string { return "dispersion-analysis" }
func (j *recordingJob) Type() string { return "dispersion" }

func (j *recordingJob) Handle(ctx context.Context, payload interface{}) error {
	j.handled++
	return j.err
}

func TestProcessMessageCountsJobOutcome(t *testing.T) {
	ensureQueueMetrics()

	q := NewRedisQueue(logger.NewDefault(), &QueueConfig{}, nil, ModeConsumerOnly)
	job := &recordingJob{}
	q.RegisterJob(job)

	before := testutil.ToFloat64(queueJobsTotal.WithLabelValues("dispersion", "ok"))

	q.processMessage(Message{
		ID:      "1",
		Type:    "dispersion",
		Payload: map[string]interface{}{"symbol": "BTC"},
	})

	if job.handled != 1 {
		t.Fatalf("job handled %d times, want 1", job.handled)
	}
	if d := testutil.ToFloat64(queueJobsTotal.WithLabelValues("dispersion", "ok")) - before; d != 1 {
		t.Fatalf("ok counter delta = %v, want 1", d)
	}
}

func TestProcessMessageSkipsUnregisteredType(t *testing.T) {
	ensureQueueMetrics()

	q := NewRedisQueue(logger.NewDefault(), &QueueConfig{}, nil, ModeConsumerOnly)
	job := &recordingJob{}
	q.RegisterJob(job)

	before := testutil.ToFloat64(queueJobsTotal.WithLabelValues("dispersion", "ok"))

	q.processMessage(Message{ID: "2", Type: "unknown", Payload: nil})

	if job.handled != 0 {
		t.Fatalf("job should not run for unknown type, handled %d", job.handled)
	}
	if d := testutil.ToFloat64(queueJobsTotal.WithLabelValues("dispersion", "ok")) - before; d != 0 {
		t.Fatalf("ok counter delta = %v, want 0", d)
	}
}
