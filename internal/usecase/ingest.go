package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	xhttp "CoinPulse/pkg/http"
	applogger "CoinPulse/pkg/logger"
	"CoinPulse/pkg/util"
)

// ErrUnknownType is returned for unrecognized ingest payload types.
var ErrUnknownType = errors.New("unknown data type")

// Target/current price ratio sanity bounds.
const (
	minTargetRatio = 0.1
	maxTargetRatio = 10.0
)

// DataIngestor routes typed payloads from POST /api/data and the Kafka
// analyst-targets topic into the matching store. Exactly one table is
// written per call; analyst targets additionally recompute the symbol's
// consensus summary inside the store transaction.
type DataIngestor struct {
	targets domrepo.TargetStore
	market  domrepo.MarketStore
	logger  *applogger.Logger
}

// NewDataIngestor creates a new DataIngestor instance.
func NewDataIngestor(targets domrepo.TargetStore, market domrepo.MarketStore, logger *applogger.Logger) *DataIngestor {
	return &DataIngestor{targets: targets, market: market, logger: logger}
}

// Ingest dispatches on req.Type. Unknown types return ErrUnknownType and
// write nothing.
func (i *DataIngestor) Ingest(ctx context.Context, req *models.IngestRequest) error {
	switch req.Type {
	case models.IngestCoinData:
		return i.ingestCoin(ctx, req.Data)
	case models.IngestAnalystTarget:
		return i.IngestTarget(ctx, req.Data)
	case models.IngestTweet:
		return i.ingestSentiment(ctx, req.Data)
	case models.IngestCorrelation:
		return i.ingestCorrelation(ctx, req.Data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownType, req.Type)
	}
}

func (i *DataIngestor) ingestCoin(ctx context.Context, data json.RawMessage) error {
	var p models.CoinDataPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	return i.market.UpsertCoin(ctx, &models.Cryptocurrency{
		Symbol:         p.Symbol,
		Name:           p.Name,
		CurrentPrice:   p.CurrentPrice,
		MarketCap:      p.MarketCap,
		Volume24h:      p.Volume24h,
		PriceChange24h: p.PriceChange24h,
	})
}

// IngestTarget validates and stores an analyst target. Exposed separately so
// the Kafka handler can share the exact path of the HTTP write.
func (i *DataIngestor) IngestTarget(ctx context.Context, data json.RawMessage) error {
	var p models.AnalystTargetPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}

	ratio := p.TargetPrice / p.CurrentPrice
	if ratio < minTargetRatio || ratio > maxTargetRatio {
		return xhttp.BadRequestError("target_price").
			WithParam("reason", "target price out of sane range").
			WithParam("ratio", fmt.Sprintf("%.4f", ratio))
	}

	target := &models.AnalystTarget{
		AnalystID:          p.AnalystID,
		Symbol:             p.Symbol,
		CurrentPrice:       p.CurrentPrice,
		TargetPrice:        p.TargetPrice,
		PriceChangePercent: (p.TargetPrice - p.CurrentPrice) / p.CurrentPrice * 100,
		Timeframe:          string(domrepo.NormalizeTimeframe(p.Timeframe)),
		ConfidenceLevel:    p.ConfidenceLevel,
		IsActive:           true,
		PublishedAt:        util.ParseTimeDefault(p.PublishedAt, time.Now().UTC()),
	}
	if err := i.targets.InsertTarget(ctx, target); err != nil {
		return err
	}
	i.logger.Info("analyst target ingested",
		applogger.String("symbol", target.Symbol),
		applogger.String("timeframe", target.Timeframe),
		applogger.Float64("target_price", target.TargetPrice),
	)
	return nil
}

func (i *DataIngestor) ingestSentiment(ctx context.Context, data json.RawMessage) error {
	var p models.TweetSentimentPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	return i.market.InsertSentiment(ctx, &models.TweetSentiment{
		Symbol:         p.Symbol,
		Author:         p.Author,
		Content:        p.Content,
		SentimentScore: p.SentimentScore,
		Followers:      p.Followers,
		PostedAt:       util.ParseTimeDefault(p.PostedAt, time.Now().UTC()),
	})
}

func (i *DataIngestor) ingestCorrelation(ctx context.Context, data json.RawMessage) error {
	var p models.CorrelationPayload
	if err := decodePayload(data, &p); err != nil {
		return err
	}
	return i.market.InsertCorrelation(ctx, &models.CorrelationAnalysis{
		Symbol:         p.Symbol,
		CorrelationBTC: p.CorrelationBTC,
		CorrelationETH: p.CorrelationETH,
		Beta:           p.Beta,
		WindowDays:     p.WindowDays,
		ComputedAt:     time.Now().UTC(),
	})
}

// decodePayload unmarshals, applies defaults, and validates a typed payload.
func decodePayload(data json.RawMessage, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return xhttp.BadRequestError("invalid payload").WithError(err)
	}
	if verrs := xhttp.ValidateStruct(dest); verrs != nil {
		appErr := xhttp.BadRequestError("payload validation failed")
		if list, ok := verrs.([]xhttp.ValidationError); ok {
			for _, e := range list {
				appErr = appErr.WithParam(e.Field, e.Message)
			}
		}
		return appErr
	}
	return nil
}
