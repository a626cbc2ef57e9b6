package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"CoinPulse/internal/domain/models"
	xhttp "CoinPulse/pkg/http"
	applogger "CoinPulse/pkg/logger"
)

func newTestIngestor() (*DataIngestor, *fakeTargetStore, *fakeMarketStore) {
	targets := newFakeTargetStore()
	market := newFakeMarketStore()
	return NewDataIngestor(targets, market, applogger.NewDefault()), targets, market
}

func TestIngestUnknownType(t *testing.T) {
	ing, _, _ := newTestIngestor()

	err := ing.Ingest(context.Background(), &models.IngestRequest{
		Type: "stock_split",
		Data: json.RawMessage(`{}`),
	})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestIngestAnalystTarget(t *testing.T) {
	ing, targets, _ := newTestIngestor()

	data := json.RawMessage(`{
		"analyst_id": "amber-research",
		"symbol": "BTC",
		"current_price": 100000,
		"target_price": 120000,
		"timeframe": "medium_term",
		"confidence_level": 8
	}`)
	err := ing.Ingest(context.Background(), &models.IngestRequest{Type: models.IngestAnalystTarget, Data: data})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if len(targets.inserted) != 1 {
		t.Fatalf("expected 1 inserted target, got %d", len(targets.inserted))
	}
	got := targets.inserted[0]
	if !got.IsActive {
		t.Fatalf("target should be active")
	}
	if math.Abs(got.PriceChangePercent-20.0) > 1e-9 {
		t.Fatalf("price change percent = %v, want 20.0", got.PriceChangePercent)
	}
	if got.PublishedAt.IsZero() {
		t.Fatalf("published_at should default to now")
	}
}

func TestIngestAnalystTargetTimeframeDefaults(t *testing.T) {
	ing, targets, _ := newTestIngestor()

	// no timeframe in the payload
	data := json.RawMessage(`{
		"analyst_id": "a1",
		"symbol": "BTC",
		"current_price": 100000,
		"target_price": 110000,
		"confidence_level": 5
	}`)
	if err := ing.IngestTarget(context.Background(), data); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(targets.inserted) != 1 {
		t.Fatalf("expected 1 inserted target, got %d", len(targets.inserted))
	}
	if got := targets.inserted[0].Timeframe; got != "medium_term" {
		t.Fatalf("timeframe = %q, want default medium_term", got)
	}
}

func TestIngestAnalystTargetRatioBounds(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		wantErr bool
	}{
		{"sane upside", 100, 500, false},
		{"sane downside", 100, 20, false},
		{"above 10x", 100, 1500, true},
		{"below 0.1x", 100, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, _, _ := newTestIngestor()
			data, _ := json.Marshal(map[string]interface{}{
				"analyst_id":       "a1",
				"symbol":           "BTC",
				"current_price":    tt.current,
				"target_price":     tt.target,
				"timeframe":        "short_term",
				"confidence_level": 5,
			})
			err := ing.IngestTarget(context.Background(), data)
			if tt.wantErr {
				var appErr *xhttp.AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("expected AppError, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIngestAnalystTargetValidation(t *testing.T) {
	ing, targets, _ := newTestIngestor()

	// bad timeframe and confidence out of range
	data := json.RawMessage(`{
		"analyst_id": "a1",
		"symbol": "BTC",
		"current_price": 100,
		"target_price": 120,
		"timeframe": "next_week",
		"confidence_level": 42
	}`)
	err := ing.IngestTarget(context.Background(), data)
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected validation AppError, got %v", err)
	}
	if len(targets.inserted) != 0 {
		t.Fatalf("nothing should be written on validation failure")
	}
}

func TestIngestCoinData(t *testing.T) {
	ing, _, market := newTestIngestor()

	data := json.RawMessage(`{
		"symbol": "ETH",
		"name": "Ethereum",
		"current_price": 3400,
		"market_cap": 410000000000,
		"volume_24h": 18000000000,
		"price_change_24h": -1.2
	}`)
	if err := ing.Ingest(context.Background(), &models.IngestRequest{Type: models.IngestCoinData, Data: data}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	coin, err := market.GetCoin(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("coin not stored: %v", err)
	}
	if coin.Name != "Ethereum" || coin.CurrentPrice != 3400 {
		t.Fatalf("unexpected coin row: %+v", coin)
	}
}

func TestIngestTweetSentiment(t *testing.T) {
	ing, _, market := newTestIngestor()

	data := json.RawMessage(`{
		"symbol": "SOL",
		"author": "solstats",
		"content": "validator yields up",
		"sentiment_score": 0.6,
		"followers": 12000
	}`)
	if err := ing.Ingest(context.Background(), &models.IngestRequest{Type: models.IngestTweet, Data: data}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(market.sentiments) != 1 {
		t.Fatalf("expected 1 sentiment, got %d", len(market.sentiments))
	}
	if market.sentiments[0].SentimentScore != 0.6 {
		t.Fatalf("score = %v, want 0.6", market.sentiments[0].SentimentScore)
	}
}

func TestIngestCorrelationDefaultsWindow(t *testing.T) {
	ing, _, market := newTestIngestor()

	data := json.RawMessage(`{
		"symbol": "XRP",
		"correlation_btc": 0.7,
		"correlation_eth": 0.5,
		"beta": 1.1
	}`)
	if err := ing.Ingest(context.Background(), &models.IngestRequest{Type: models.IngestCorrelation, Data: data}); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if len(market.correlations) != 1 {
		t.Fatalf("expected 1 correlation, got %d", len(market.correlations))
	}
	if market.correlations[0].WindowDays != 30 {
		t.Fatalf("window_days = %d, want default 30", market.correlations[0].WindowDays)
	}
}

func TestSeederInsertsTargetsThroughStore(t *testing.T) {
	targets := newFakeTargetStore()
	market := newFakeMarketStore()
	s := NewSeeder(market, targets, applogger.NewDefault())

	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !market.seeded {
		t.Fatalf("market seed not invoked")
	}
	if len(targets.inserted) == 0 {
		t.Fatalf("seeder should insert sample targets via the target store")
	}
	for _, tgt := range targets.inserted {
		if tgt.PriceChangePercent == 0 {
			t.Fatalf("seeded target missing computed price change: %+v", tgt)
		}
	}
}
