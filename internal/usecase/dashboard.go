package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/cache"
	applogger "CoinPulse/pkg/logger"
)

// Read limits for the coin detail payload.
const (
	maxDetailTargets    = 10
	maxDetailSentiments = 20
)

// Dashboard serves the read side of the API with optional response caching.
type Dashboard struct {
	market     domrepo.MarketStore
	targets    domrepo.TargetStore
	cache      cache.Service
	coinTTL    time.Duration
	summaryTTL time.Duration
	logger     *applogger.Logger
}

// NewDashboard creates a new Dashboard instance. A nil cache disables caching.
func NewDashboard(
	market domrepo.MarketStore,
	targets domrepo.TargetStore,
	cacheSvc cache.Service,
	coinTTL, summaryTTL time.Duration,
	logger *applogger.Logger,
) *Dashboard {
	if coinTTL <= 0 {
		coinTTL = 30 * time.Second
	}
	if summaryTTL <= 0 {
		summaryTTL = 30 * time.Second
	}
	return &Dashboard{
		market:     market,
		targets:    targets,
		cache:      cacheSvc,
		coinTTL:    coinTTL,
		summaryTTL: summaryTTL,
		logger:     logger,
	}
}

// CoinDetail returns the coin row plus recent targets, sentiments and the
// latest correlation.
func (d *Dashboard) CoinDetail(ctx context.Context, symbol string) (*models.CoinDetail, error) {
	key := coinDetailKey(symbol)
	if d.cache != nil {
		var cached models.CoinDetail
		if err := d.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			d.logger.Warn("coin cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	coin, err := d.market.GetCoin(ctx, symbol)
	if err != nil {
		return nil, err
	}
	targets, err := d.targets.RecentTargets(ctx, symbol, maxDetailTargets)
	if err != nil {
		return nil, fmt.Errorf("recent targets: %w", err)
	}
	sentiments, err := d.market.RecentSentiments(ctx, symbol, maxDetailSentiments)
	if err != nil {
		return nil, fmt.Errorf("recent sentiments: %w", err)
	}
	correlation, err := d.market.LatestCorrelation(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("latest correlation: %w", err)
	}

	detail := &models.CoinDetail{
		Coin:        coin,
		Targets:     targets,
		Sentiments:  sentiments,
		Correlation: correlation,
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, detail, d.coinTTL); err != nil {
			d.logger.Warn("coin cache write failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
	return detail, nil
}

// Summary returns the consensus summary for a symbol.
func (d *Dashboard) Summary(ctx context.Context, symbol string) (*models.CoinAnalystSummary, error) {
	key := summaryKey(symbol)
	if d.cache != nil {
		var cached models.CoinAnalystSummary
		if err := d.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			d.logger.Warn("summary cache read failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}

	summary, err := d.targets.GetSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, summary, d.summaryTTL); err != nil {
			d.logger.Warn("summary cache write failed", applogger.String("symbol", symbol), applogger.Error(err))
		}
	}
	return summary, nil
}

// InvalidateSymbol drops cached responses after a write touching the symbol.
func (d *Dashboard) InvalidateSymbol(ctx context.Context, symbol string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, coinDetailKey(symbol), summaryKey(symbol)); err != nil {
		d.logger.Warn("cache invalidation failed", applogger.String("symbol", symbol), applogger.Error(err))
	}
}

func coinDetailKey(symbol string) string { return "coin_detail:" + symbol }
func summaryKey(symbol string) string    { return "summary:" + symbol }
