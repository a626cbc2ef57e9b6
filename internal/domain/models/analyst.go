package models

import "time"

// Consensus directions derived from mean price change percent.
const (
	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
	DirectionNeutral = "neutral"
)

// AnalystTarget is a single published price target.
type AnalystTarget struct {
	ID                 int64     `json:"id"`
	AnalystID          string    `json:"analyst_id"`
	Symbol             string    `json:"symbol"`
	CurrentPrice       float64   `json:"current_price"`
	TargetPrice        float64   `json:"target_price"`
	PriceChangePercent float64   `json:"price_change_percent"`
	Timeframe          string    `json:"timeframe"`
	ConfidenceLevel    int       `json:"confidence_level"`
	IsActive           bool      `json:"is_active"`
	PublishedAt        time.Time `json:"published_at"`
	CreatedAt          time.Time `json:"created_at"`
}

// CoinAnalystSummary is the per-symbol consensus over active targets.
// Averages and medians are nil when the bucket has no rows; zero would be
// indistinguishable from a real price of 0.
type CoinAnalystSummary struct {
	Symbol             string    `json:"symbol"`
	TotalAnalysts      int       `json:"total_analysts"`
	ShortTermCount     int       `json:"short_term_count"`
	ShortTermAvg       *float64  `json:"short_term_avg"`
	ShortTermMedian    *float64  `json:"short_term_median"`
	MediumTermCount    int       `json:"medium_term_count"`
	MediumTermAvg      *float64  `json:"medium_term_avg"`
	MediumTermMedian   *float64  `json:"medium_term_median"`
	LongTermCount      int       `json:"long_term_count"`
	LongTermAvg        *float64  `json:"long_term_avg"`
	LongTermMedian     *float64  `json:"long_term_median"`
	ConsensusDirection string    `json:"consensus_direction"`
	ConfidenceLevel    *float64  `json:"confidence_level"`
	PriceDispersion    *float64  `json:"price_dispersion"`
	LastUpdated        time.Time `json:"last_updated"`
}
