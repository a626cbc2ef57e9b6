package models

import "time"

// TweetSentiment is a scored social media post about a coin.
type TweetSentiment struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	Author         string    `json:"author"`
	Content        string    `json:"content"`
	SentimentScore float64   `json:"sentiment_score"` // -1.0 .. 1.0
	Followers      int64     `json:"followers"`
	PostedAt       time.Time `json:"posted_at"`
}

// CorrelationAnalysis is a rolling-window correlation snapshot against BTC/ETH.
type CorrelationAnalysis struct {
	ID             int64     `json:"id"`
	Symbol         string    `json:"symbol"`
	CorrelationBTC float64   `json:"correlation_btc"`
	CorrelationETH float64   `json:"correlation_eth"`
	Beta           float64   `json:"beta"`
	WindowDays     int       `json:"window_days"`
	ComputedAt     time.Time `json:"computed_at"`
}
