package models

// Requests for ingestion HTTP endpoints. Defined in domain for consistency and reuse.

import "encoding/json"

// Ingest payload types accepted by POST /api/data.
const (
	IngestCoinData      = "coin_data"
	IngestAnalystTarget = "analyst_target"
	IngestTweet         = "tweet_sentiment"
	IngestCorrelation   = "correlation_analysis"
)

// IngestRequest is the wrapper body for POST /api/data.
type IngestRequest struct {
	Type string          `json:"type" validate:"required,oneof=coin_data analyst_target tweet_sentiment correlation_analysis"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// CoinDataPayload upserts a cryptocurrency row.
type CoinDataPayload struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	CurrentPrice   float64 `json:"current_price" validate:"gt=0"`
	MarketCap      float64 `json:"market_cap" validate:"gte=0"`
	Volume24h      float64 `json:"volume_24h" validate:"gte=0"`
	PriceChange24h float64 `json:"price_change_24h"`
}

// AnalystTargetPayload inserts an analyst target and triggers a consensus
// recompute for the symbol.
type AnalystTargetPayload struct {
	AnalystID       string  `json:"analyst_id" validate:"required"`
	Symbol          string  `json:"symbol" validate:"required"`
	CurrentPrice    float64 `json:"current_price" validate:"gt=0"`
	TargetPrice     float64 `json:"target_price" validate:"gt=0"`
	Timeframe       string  `json:"timeframe" validate:"omitempty,oneof=short_term medium_term long_term"`
	ConfidenceLevel int     `json:"confidence_level" validate:"gte=1,lte=10"`
	PublishedAt     string  `json:"published_at"`
}

// TweetSentimentPayload inserts a scored tweet.
type TweetSentimentPayload struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Author         string  `json:"author" validate:"required"`
	Content        string  `json:"content" validate:"required"`
	SentimentScore float64 `json:"sentiment_score" validate:"gte=-1,lte=1"`
	Followers      int64   `json:"followers" validate:"gte=0"`
	PostedAt       string  `json:"posted_at"`
}

// CorrelationPayload inserts a correlation snapshot.
type CorrelationPayload struct {
	Symbol         string  `json:"symbol" validate:"required"`
	CorrelationBTC float64 `json:"correlation_btc" validate:"gte=-1,lte=1"`
	CorrelationETH float64 `json:"correlation_eth" validate:"gte=-1,lte=1"`
	Beta           float64 `json:"beta"`
	WindowDays     int     `json:"window_days" default:"30" validate:"gte=1,lte=365"`
}

// TicksRequest queries tick history for a symbol.
type TicksRequest struct {
	From  string `query:"from" json:"from"`
	To    string `query:"to" json:"to"`
	Limit int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=10000"`
}
