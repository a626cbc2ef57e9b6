package repository

import (
	"context"
	"time"

	"CoinPulse/internal/domain/models"
)

type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, t *models.Tick) error
	PublishBatch(ctx context.Context, ticks []*models.Tick) error
	Close() error
}

// TickStore persists high-volume tick history (ClickHouse).
type TickStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, t *models.Tick) error
	StoreBatch(ctx context.Context, ticks []*models.Tick) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error)
	LatestQuotes(ctx context.Context, symbol string, window time.Duration) ([]*models.ExchangeQuote, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// TargetStore persists analyst targets and the derived consensus summary.
// InsertTarget recomputes the symbol's summary inside the same transaction;
// a failed recompute rolls the insert back.
type TargetStore interface {
	InsertTarget(ctx context.Context, t *models.AnalystTarget) error
	RecentTargets(ctx context.Context, symbol string, limit int) ([]*models.AnalystTarget, error)
	GetSummary(ctx context.Context, symbol string) (*models.CoinAnalystSummary, error)
}

// MarketStore persists coins, sentiments and correlations.
type MarketStore interface {
	UpsertCoin(ctx context.Context, c *models.Cryptocurrency) error
	GetCoin(ctx context.Context, symbol string) (*models.Cryptocurrency, error)
	ListCoins(ctx context.Context) ([]*models.Cryptocurrency, error)
	InsertSentiment(ctx context.Context, s *models.TweetSentiment) error
	RecentSentiments(ctx context.Context, symbol string, limit int) ([]*models.TweetSentiment, error)
	InsertCorrelation(ctx context.Context, c *models.CorrelationAnalysis) error
	LatestCorrelation(ctx context.Context, symbol string) (*models.CorrelationAnalysis, error)
	Seed(ctx context.Context) error
}

// DispersionStore persists cross-exchange dispersion snapshots.
type DispersionStore interface {
	InsertSnapshot(ctx context.Context, s *models.DispersionSnapshot) error
	LatestSnapshot(ctx context.Context, symbol string) (*models.DispersionSnapshot, error)
	LatestPerSymbol(ctx context.Context) ([]*models.DispersionSnapshot, error)
}

type Metrics interface {
	RecordMessageSent(backend, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordTargetIngested(symbol string)
	RecordSummaryRecompute(symbol, result string)
	RecordDispersionLevel(symbol string, level int)
}
