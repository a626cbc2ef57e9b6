package usecase

import (
	"context"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
	applogger "CoinPulse/pkg/logger"
)

func TestAnalyzeSymbolStoresSnapshot(t *testing.T) {
	ticks := &fakeTickStore{quotes: []*models.ExchangeQuote{
		{Exchange: "binance", Symbol: "BTC", Price: 100, Volume: 900},
		{Exchange: "kraken", Symbol: "BTC", Price: 104, Volume: 100},
	}}
	store := &fakeDispersionStore{}
	a := NewDispersionAnalyzer(ticks, store, nopMetrics{}, applogger.NewDefault(), time.Minute)

	snap, err := a.AnalyzeSymbol(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if snap == nil {
		t.Fatalf("expected a snapshot")
	}
	if len(store.snapshots) != 1 {
		t.Fatalf("snapshot not persisted")
	}
	if snap.Symbol != "BTC" {
		t.Fatalf("symbol = %q, want BTC", snap.Symbol)
	}
	if snap.PriceDispersion <= 0 {
		t.Fatalf("dispersion should be positive for spread quotes, got %v", snap.PriceDispersion)
	}
}

func TestAnalyzeSymbolNoQuotes(t *testing.T) {
	ticks := &fakeTickStore{}
	store := &fakeDispersionStore{}
	a := NewDispersionAnalyzer(ticks, store, nopMetrics{}, applogger.NewDefault(), time.Minute)

	snap, err := a.AnalyzeSymbol(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot for empty window")
	}
	if len(store.snapshots) != 0 {
		t.Fatalf("nothing should be persisted for empty window")
	}
}

func TestDispersionJobHandle(t *testing.T) {
	ticks := &fakeTickStore{quotes: []*models.ExchangeQuote{
		{Exchange: "binance", Symbol: "ETH", Price: 3400, Volume: 500},
		{Exchange: "coinbase", Symbol: "ETH", Price: 3410, Volume: 450},
	}}
	store := &fakeDispersionStore{}
	a := NewDispersionAnalyzer(ticks, store, nopMetrics{}, applogger.NewDefault(), time.Minute)
	job := NewDispersionJob(a)

	if job.Type() != "dispersion_snapshot" {
		t.Fatalf("unexpected job type %q", job.Type())
	}

	payload := map[string]interface{}{"symbol": "ETH"}
	if err := job.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(store.snapshots) != 1 {
		t.Fatalf("job should persist a snapshot")
	}

	if err := job.Handle(context.Background(), map[string]interface{}{}); err == nil {
		t.Fatalf("empty symbol should fail")
	}
}

func TestTickProcessorBackendRouting(t *testing.T) {
	tick := &models.Tick{Symbol: "BTC", Exchange: "binance", Price: 100, Volume: 1, Timestamp: time.Now().Unix()}

	pub := &fakePublisher{}
	store := &fakeTickStore{}

	kafkaProc := NewTickProcessor(pub, store, nopMetrics{}, "kafka", 100, time.Second)
	if err := kafkaProc.Process(context.Background(), tick); err != nil {
		t.Fatalf("kafka process failed: %v", err)
	}
	if len(pub.published) != 1 || len(store.stored) != 0 {
		t.Fatalf("kafka backend should publish, not store")
	}

	chProc := NewTickProcessor(pub, store, nopMetrics{}, "clickhouse", 100, time.Second)
	if err := chProc.ProcessBatch(context.Background(), []*models.Tick{tick, tick}); err != nil {
		t.Fatalf("clickhouse process failed: %v", err)
	}
	if len(store.stored) != 2 {
		t.Fatalf("clickhouse backend should store batch, got %d", len(store.stored))
	}

	badProc := NewTickProcessor(pub, store, nopMetrics{}, "s3", 100, time.Second)
	if err := badProc.Process(context.Background(), tick); err == nil {
		t.Fatalf("unknown backend should error")
	}
}
