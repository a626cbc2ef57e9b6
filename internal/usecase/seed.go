package usecase

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	applogger "CoinPulse/pkg/logger"
)

// Seeder bulk-inserts fixed sample rows across the market tables. Analyst
// targets go through the target store so each insert recomputes the
// symbol's consensus summary.
type Seeder struct {
	market  domrepo.MarketStore
	targets domrepo.TargetStore
	logger  *applogger.Logger
}

// NewSeeder creates a new Seeder instance.
func NewSeeder(market domrepo.MarketStore, targets domrepo.TargetStore, logger *applogger.Logger) *Seeder {
	return &Seeder{market: market, targets: targets, logger: logger}
}

// Seed populates sample data. Safe to call repeatedly; coin rows upsert,
// the rest append.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.market.Seed(ctx); err != nil {
		return fmt.Errorf("seed market data: %w", err)
	}

	now := time.Now().UTC()
	samples := []*models.AnalystTarget{
		{AnalystID: "amber-research", Symbol: "BTC", CurrentPrice: 97500, TargetPrice: 120000, Timeframe: "short_term", ConfidenceLevel: 7, IsActive: true, PublishedAt: now.Add(-24 * time.Hour)},
		{AnalystID: "delphi-macro", Symbol: "BTC", CurrentPrice: 97500, TargetPrice: 135000, Timeframe: "medium_term", ConfidenceLevel: 8, IsActive: true, PublishedAt: now.Add(-48 * time.Hour)},
		{AnalystID: "chainview", Symbol: "BTC", CurrentPrice: 97500, TargetPrice: 180000, Timeframe: "long_term", ConfidenceLevel: 6, IsActive: true, PublishedAt: now.Add(-72 * time.Hour)},
		{AnalystID: "delphi-macro", Symbol: "ETH", CurrentPrice: 3420, TargetPrice: 4100, Timeframe: "short_term", ConfidenceLevel: 7, IsActive: true, PublishedAt: now.Add(-24 * time.Hour)},
		{AnalystID: "l2-watch", Symbol: "ETH", CurrentPrice: 3420, TargetPrice: 5200, Timeframe: "medium_term", ConfidenceLevel: 6, IsActive: true, PublishedAt: now.Add(-36 * time.Hour)},
		{AnalystID: "solstats", Symbol: "SOL", CurrentPrice: 188, TargetPrice: 260, Timeframe: "medium_term", ConfidenceLevel: 8, IsActive: true, PublishedAt: now.Add(-12 * time.Hour)},
	}

	for _, t := range samples {
		t.PriceChangePercent = (t.TargetPrice - t.CurrentPrice) / t.CurrentPrice * 100
		if err := s.targets.InsertTarget(ctx, t); err != nil {
			return fmt.Errorf("seed target %s/%s: %w", t.Symbol, t.AnalystID, err)
		}
	}

	s.logger.Info("seed completed", applogger.Int("targets", len(samples)))
	return nil
}
