package models

import "time"

// Signal types emitted by the dispersion analyzer.
const (
	SignalDivergence  = "divergence"
	SignalConvergence = "convergence"
	SignalNeutral     = "neutral"
)

// ExchangeQuote is the latest price/volume for a symbol on one exchange.
type ExchangeQuote struct {
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Volume   float64 `json:"volume"`
}

// DispersionSnapshot is a persisted cross-exchange dispersion observation.
type DispersionSnapshot struct {
	ID                  int64     `json:"id"`
	Symbol              string    `json:"symbol"`
	PriceDispersion     float64   `json:"price_dispersion"`     // (max-min)/avg * 100
	VolumeConcentration float64   `json:"volume_concentration"` // HHI, 0..10000
	SignalLevel         int       `json:"signal_level"`         // 1..5
	SignalType          string    `json:"signal_type"`
	ComputedAt          time.Time `json:"computed_at"`
}

// CoinDispersion ranks a symbol by its latest dispersion.
type CoinDispersion struct {
	Symbol          string  `json:"symbol"`
	PriceDispersion float64 `json:"price_dispersion"`
	SignalLevel     int     `json:"signal_level"`
}

// MarketDispersionSummary aggregates the latest snapshot per symbol.
type MarketDispersionSummary struct {
	CoinsAnalyzed    int               `json:"coins_analyzed"`
	AvgDispersion    float64           `json:"avg_dispersion"`
	MaxDispersion    float64           `json:"max_dispersion"`
	MinDispersion    float64           `json:"min_dispersion"`
	HighSignalCount  int               `json:"high_signal_count"` // level >= 4
	LowSignalCount   int               `json:"low_signal_count"`  // level <= 2
	TopDispersion    []*CoinDispersion `json:"top_dispersion"`
	LowestDispersion []*CoinDispersion `json:"lowest_dispersion"`
	ComputedAt       time.Time         `json:"computed_at"`
}
