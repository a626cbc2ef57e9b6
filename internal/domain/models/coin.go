package models

import "time"

// Cryptocurrency is the latest market snapshot for a tracked coin.
type Cryptocurrency struct {
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	CurrentPrice   float64   `json:"current_price"`
	MarketCap      float64   `json:"market_cap"`
	Volume24h      float64   `json:"volume_24h"`
	PriceChange24h float64   `json:"price_change_24h"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Tick is a single trade observation from an exchange stream.
type Tick struct {
	Symbol    string  `json:"symbol"`
	Exchange  string  `json:"exchange"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	Timestamp int64   `json:"timestamp"` // unix seconds
}

// CoinDetail is the composite payload served for a single coin.
type CoinDetail struct {
	Coin        *Cryptocurrency      `json:"coin"`
	Targets     []*AnalystTarget     `json:"analyst_targets"`
	Sentiments  []*TweetSentiment    `json:"tweet_sentiments"`
	Correlation *CorrelationAnalysis `json:"correlation_analysis"`
}
