package usecase

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/internal/services/dispersion"
	applogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/queue"
)

const dispersionJobType = "dispersion_snapshot"

// Default ranking size for market overview.
const defaultTopN = 5

// DispersionAnalyzer computes cross-exchange dispersion snapshots from tick
// history and persists them.
type DispersionAnalyzer struct {
	ticks   domrepo.TickStore
	store   domrepo.DispersionStore
	metrics domrepo.Metrics
	logger  *applogger.Logger
	window  time.Duration
}

// NewDispersionAnalyzer creates a new DispersionAnalyzer instance.
func NewDispersionAnalyzer(
	ticks domrepo.TickStore,
	store domrepo.DispersionStore,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	window time.Duration,
) *DispersionAnalyzer {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &DispersionAnalyzer{ticks: ticks, store: store, metrics: metrics, logger: logger, window: window}
}

// AnalyzeSymbol builds and persists one snapshot for a symbol. Returns nil
// snapshot when the window holds no quotes.
func (a *DispersionAnalyzer) AnalyzeSymbol(ctx context.Context, symbol string) (*models.DispersionSnapshot, error) {
	quotes, err := a.ticks.LatestQuotes(ctx, symbol, a.window)
	if err != nil {
		a.metrics.RecordError("dispersion_quotes")
		return nil, fmt.Errorf("latest quotes: %w", err)
	}

	snap := dispersion.Analyze(symbol, quotes, time.Now().UTC())
	if snap == nil {
		a.logger.Debug("no quotes for dispersion", applogger.String("symbol", symbol))
		return nil, nil
	}

	if err := a.store.InsertSnapshot(ctx, snap); err != nil {
		a.metrics.RecordError("dispersion_store")
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	a.metrics.RecordDispersionLevel(symbol, snap.SignalLevel)
	a.logger.Info("dispersion snapshot stored",
		applogger.String("symbol", symbol),
		applogger.Float64("dispersion", snap.PriceDispersion),
		applogger.Int("level", snap.SignalLevel),
		applogger.String("type", snap.SignalType),
	)
	return snap, nil
}

// Latest returns the most recent snapshot for a symbol.
func (a *DispersionAnalyzer) Latest(ctx context.Context, symbol string) (*models.DispersionSnapshot, error) {
	return a.store.LatestSnapshot(ctx, symbol)
}

// MarketOverview aggregates the newest snapshot of every symbol.
func (a *DispersionAnalyzer) MarketOverview(ctx context.Context) (*models.MarketDispersionSummary, error) {
	snaps, err := a.store.LatestPerSymbol(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest per symbol: %w", err)
	}
	return dispersion.MarketSummary(snaps, defaultTopN, time.Now().UTC()), nil
}

// --- queue integration ---

type dispersionPayload struct {
	Symbol string `json:"symbol"`
}

// DispersionJob processes scheduled snapshot requests from the Redis queue.
type DispersionJob struct {
	analyzer *DispersionAnalyzer
}

// NewDispersionJob creates the queue job.
func NewDispersionJob(analyzer *DispersionAnalyzer) *DispersionJob {
	return &DispersionJob{analyzer: analyzer}
}

func (j *DispersionJob) Name() string { return "dispersion-snapshot" }
func (j *DispersionJob) Type() string { return dispersionJobType }

func (j *DispersionJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[dispersionPayload](payload)
	if err != nil {
		return err
	}
	if p.Symbol == "" {
		return fmt.Errorf("dispersion job: empty symbol")
	}
	_, err = j.analyzer.AnalyzeSymbol(ctx, p.Symbol)
	return err
}

var _ queue.Job = (*DispersionJob)(nil)

// DispersionScheduler enqueues a snapshot job per tracked symbol on a fixed
// interval.
type DispersionScheduler struct {
	publisher queue.QueueService
	symbols   []string
	interval  time.Duration
	logger    *applogger.Logger
	stopCh    chan struct{}
}

// NewDispersionScheduler creates the scheduler.
func NewDispersionScheduler(publisher queue.QueueService, symbols []string, interval time.Duration, logger *applogger.Logger) *DispersionScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DispersionScheduler{
		publisher: publisher,
		symbols:   symbols,
		interval:  interval,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the scheduling loop.
func (s *DispersionScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.enqueueAll(ctx)
			}
		}
	}()
	s.logger.Info("dispersion scheduler started",
		applogger.Int("symbols", len(s.symbols)),
		applogger.Duration("interval", s.interval),
	)
}

// Stop halts the scheduling loop.
func (s *DispersionScheduler) Stop() {
	close(s.stopCh)
}

func (s *DispersionScheduler) enqueueAll(ctx context.Context) {
	for _, sym := range s.symbols {
		if err := s.publisher.PublishMessage(ctx, dispersionJobType, dispersionPayload{Symbol: sym}); err != nil {
			s.logger.Error("enqueue dispersion job failed",
				applogger.String("symbol", sym),
				applogger.Error(err),
			)
		}
	}
}
