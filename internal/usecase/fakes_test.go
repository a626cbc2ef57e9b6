package usecase

import (
	"context"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/repository"
)

type fakeTargetStore struct {
	inserted  []*models.AnalystTarget
	summaries map[string]*models.CoinAnalystSummary
	insertErr error
}

func newFakeTargetStore() *fakeTargetStore {
	return &fakeTargetStore{summaries: make(map[string]*models.CoinAnalystSummary)}
}

func (f *fakeTargetStore) InsertTarget(ctx context.Context, t *models.AnalystTarget) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTargetStore) RecentTargets(ctx context.Context, symbol string, limit int) ([]*models.AnalystTarget, error) {
	var out []*models.AnalystTarget
	for _, t := range f.inserted {
		if t.Symbol == symbol {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTargetStore) GetSummary(ctx context.Context, symbol string) (*models.CoinAnalystSummary, error) {
	s, ok := f.summaries[symbol]
	if !ok {
		return nil, repository.ErrSummaryNotFound
	}
	return s, nil
}

type fakeMarketStore struct {
	coins        map[string]*models.Cryptocurrency
	sentiments   []*models.TweetSentiment
	correlations []*models.CorrelationAnalysis
	seeded       bool
}

func newFakeMarketStore() *fakeMarketStore {
	return &fakeMarketStore{coins: make(map[string]*models.Cryptocurrency)}
}

func (f *fakeMarketStore) UpsertCoin(ctx context.Context, c *models.Cryptocurrency) error {
	f.coins[c.Symbol] = c
	return nil
}

func (f *fakeMarketStore) GetCoin(ctx context.Context, symbol string) (*models.Cryptocurrency, error) {
	c, ok := f.coins[symbol]
	if !ok {
		return nil, repository.ErrCoinNotFound
	}
	return c, nil
}

func (f *fakeMarketStore) ListCoins(ctx context.Context) ([]*models.Cryptocurrency, error) {
	out := make([]*models.Cryptocurrency, 0, len(f.coins))
	for _, c := range f.coins {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeMarketStore) InsertSentiment(ctx context.Context, s *models.TweetSentiment) error {
	f.sentiments = append(f.sentiments, s)
	return nil
}

func (f *fakeMarketStore) RecentSentiments(ctx context.Context, symbol string, limit int) ([]*models.TweetSentiment, error) {
	var out []*models.TweetSentiment
	for _, s := range f.sentiments {
		if s.Symbol == symbol {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMarketStore) InsertCorrelation(ctx context.Context, c *models.CorrelationAnalysis) error {
	f.correlations = append(f.correlations, c)
	return nil
}

func (f *fakeMarketStore) LatestCorrelation(ctx context.Context, symbol string) (*models.CorrelationAnalysis, error) {
	for i := len(f.correlations) - 1; i >= 0; i-- {
		if f.correlations[i].Symbol == symbol {
			return f.correlations[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMarketStore) Seed(ctx context.Context) error {
	f.seeded = true
	return nil
}

type fakeTickStore struct {
	mu     sync.Mutex
	stored []*models.Tick
	quotes []*models.ExchangeQuote
	ticks  []*models.Tick
}

func (f *fakeTickStore) Init(ctx context.Context) error { return nil }

func (f *fakeTickStore) Store(ctx context.Context, t *models.Tick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, t)
	return nil
}

func (f *fakeTickStore) StoreBatch(ctx context.Context, ticks []*models.Tick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, ticks...)
	return nil
}

func (f *fakeTickStore) storedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

func (f *fakeTickStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error) {
	return f.ticks, nil
}

func (f *fakeTickStore) LatestQuotes(ctx context.Context, symbol string, window time.Duration) ([]*models.ExchangeQuote, error) {
	return f.quotes, nil
}

func (f *fakeTickStore) Health(ctx context.Context) error { return nil }
func (f *fakeTickStore) Close() error                     { return nil }

type fakeDispersionStore struct {
	snapshots []*models.DispersionSnapshot
}

func (f *fakeDispersionStore) InsertSnapshot(ctx context.Context, s *models.DispersionSnapshot) error {
	f.snapshots = append(f.snapshots, s)
	return nil
}

func (f *fakeDispersionStore) LatestSnapshot(ctx context.Context, symbol string) (*models.DispersionSnapshot, error) {
	for i := len(f.snapshots) - 1; i >= 0; i-- {
		if f.snapshots[i].Symbol == symbol {
			return f.snapshots[i], nil
		}
	}
	return nil, repository.ErrSnapshotNotFound
}

func (f *fakeDispersionStore) LatestPerSymbol(ctx context.Context) ([]*models.DispersionSnapshot, error) {
	latest := make(map[string]*models.DispersionSnapshot)
	for _, s := range f.snapshots {
		latest[s.Symbol] = s
	}
	out := make([]*models.DispersionSnapshot, 0, len(latest))
	for _, s := range latest {
		out = append(out, s)
	}
	return out, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordMessageSent(backend, symbol string)      {}
func (nopMetrics) RecordError(kind string)                       {}
func (nopMetrics) RecordLastPrice(symbol string, price float64)  {}
func (nopMetrics) RecordLatency(op string, seconds float64)      {}
func (nopMetrics) RecordTargetIngested(symbol string)            {}
func (nopMetrics) RecordSummaryRecompute(symbol, result string)  {}
func (nopMetrics) RecordDispersionLevel(symbol string, level int) {}

type fakePublisher struct {
	published []*models.Tick
}

func (f *fakePublisher) Publish(ctx context.Context, t *models.Tick) error {
	f.published = append(f.published, t)
	return nil
}

func (f *fakePublisher) PublishBatch(ctx context.Context, ticks []*models.Tick) error {
	f.published = append(f.published, ticks...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
