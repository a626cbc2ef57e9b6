package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	applogger "CoinPulse/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCoinNotFound is returned when a symbol has no cryptocurrency row.
var ErrCoinNotFound = errors.New("coin not found")

// PostgresMarketStore implements MarketStore for coins, sentiments and
// correlations.
type PostgresMarketStore struct {
	db     *pgxpool.Pool
	logger *applogger.Logger
}

// NewPostgresMarketStore creates the market store.
func NewPostgresMarketStore(db *pgxpool.Pool, logger *applogger.Logger) domrepo.MarketStore {
	return &PostgresMarketStore{db: db, logger: logger}
}

func (s *PostgresMarketStore) UpsertCoin(ctx context.Context, c *models.Cryptocurrency) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cryptocurrencies
			(symbol, name, current_price, market_cap, volume_24h, price_change_24h, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			current_price = EXCLUDED.current_price,
			market_cap = EXCLUDED.market_cap,
			volume_24h = EXCLUDED.volume_24h,
			price_change_24h = EXCLUDED.price_change_24h,
			last_updated = now()`,
		c.Symbol, c.Name, c.CurrentPrice, c.MarketCap, c.Volume24h, c.PriceChange24h,
	)
	if err != nil {
		return fmt.Errorf("upsert coin: %w", err)
	}
	return nil
}

func (s *PostgresMarketStore) GetCoin(ctx context.Context, symbol string) (*models.Cryptocurrency, error) {
	var c models.Cryptocurrency
	err := s.db.QueryRow(ctx, `
		SELECT symbol, name, current_price, market_cap, volume_24h, price_change_24h, last_updated
		FROM cryptocurrencies
		WHERE symbol = $1`, symbol).Scan(
		&c.Symbol, &c.Name, &c.CurrentPrice, &c.MarketCap, &c.Volume24h,
		&c.PriceChange24h, &c.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoinNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PostgresMarketStore) ListCoins(ctx context.Context) ([]*models.Cryptocurrency, error) {
	rows, err := s.db.Query(ctx, `
		SELECT symbol, name, current_price, market_cap, volume_24h, price_change_24h, last_updated
		FROM cryptocurrencies
		ORDER BY market_cap DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coins []*models.Cryptocurrency
	for rows.Next() {
		var c models.Cryptocurrency
		if err := rows.Scan(
			&c.Symbol, &c.Name, &c.CurrentPrice, &c.MarketCap, &c.Volume24h,
			&c.PriceChange24h, &c.LastUpdated,
		); err != nil {
			return nil, err
		}
		coins = append(coins, &c)
	}
	return coins, rows.Err()
}

func (s *PostgresMarketStore) InsertSentiment(ctx context.Context, t *models.TweetSentiment) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO tweet_sentiments (symbol, author, content, sentiment_score, followers, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		t.Symbol, t.Author, t.Content, t.SentimentScore, t.Followers, t.PostedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert sentiment: %w", err)
	}
	return nil
}

func (s *PostgresMarketStore) RecentSentiments(ctx context.Context, symbol string, limit int) ([]*models.TweetSentiment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, symbol, author, content, sentiment_score, followers, posted_at
		FROM tweet_sentiments
		WHERE symbol = $1
		ORDER BY posted_at DESC
		LIMIT $2`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sentiments []*models.TweetSentiment
	for rows.Next() {
		var t models.TweetSentiment
		if err := rows.Scan(
			&t.ID, &t.Symbol, &t.Author, &t.Content, &t.SentimentScore,
			&t.Followers, &t.PostedAt,
		); err != nil {
			return nil, err
		}
		sentiments = append(sentiments, &t)
	}
	return sentiments, rows.Err()
}

func (s *PostgresMarketStore) InsertCorrelation(ctx context.Context, c *models.CorrelationAnalysis) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO correlation_analysis
			(symbol, correlation_btc, correlation_eth, beta, window_days, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.Symbol, c.CorrelationBTC, c.CorrelationETH, c.Beta, c.WindowDays, c.ComputedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert correlation: %w", err)
	}
	return nil
}

func (s *PostgresMarketStore) LatestCorrelation(ctx context.Context, symbol string) (*models.CorrelationAnalysis, error) {
	var c models.CorrelationAnalysis
	err := s.db.QueryRow(ctx, `
		SELECT id, symbol, correlation_btc, correlation_eth, beta, window_days, computed_at
		FROM correlation_analysis
		WHERE symbol = $1
		ORDER BY computed_at DESC
		LIMIT 1`, symbol).Scan(
		&c.ID, &c.Symbol, &c.CorrelationBTC, &c.CorrelationETH, &c.Beta,
		&c.WindowDays, &c.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Seed bulk-inserts fixed sample rows across the market tables.
func (s *PostgresMarketStore) Seed(ctx context.Context) error {
	now := time.Now().UTC()

	coins := []*models.Cryptocurrency{
		{Symbol: "BTC", Name: "Bitcoin", CurrentPrice: 97500, MarketCap: 1.92e12, Volume24h: 4.2e10, PriceChange24h: 2.4},
		{Symbol: "ETH", Name: "Ethereum", CurrentPrice: 3420, MarketCap: 4.1e11, Volume24h: 1.8e10, PriceChange24h: -1.1},
		{Symbol: "SOL", Name: "Solana", CurrentPrice: 188, MarketCap: 8.9e10, Volume24h: 3.6e9, PriceChange24h: 5.7},
		{Symbol: "XRP", Name: "Ripple", CurrentPrice: 2.31, MarketCap: 1.3e11, Volume24h: 5.1e9, PriceChange24h: 0.8},
	}
	for _, c := range coins {
		if err := s.UpsertCoin(ctx, c); err != nil {
			return err
		}
	}

	sentiments := []*models.TweetSentiment{
		{Symbol: "BTC", Author: "cryptowhale", Content: "BTC accumulation at these levels looks healthy", SentimentScore: 0.72, Followers: 412000, PostedAt: now.Add(-2 * time.Hour)},
		{Symbol: "BTC", Author: "bearishtakes", Content: "Funding rates overheated again, expecting a flush", SentimentScore: -0.45, Followers: 88000, PostedAt: now.Add(-5 * time.Hour)},
		{Symbol: "ETH", Author: "defi_degen", Content: "ETH L2 volume keeps climbing, bullish structurally", SentimentScore: 0.61, Followers: 150000, PostedAt: now.Add(-3 * time.Hour)},
		{Symbol: "SOL", Author: "solmaxi", Content: "SOL throughput numbers this week are insane", SentimentScore: 0.83, Followers: 64000, PostedAt: now.Add(-1 * time.Hour)},
	}
	for _, t := range sentiments {
		if err := s.InsertSentiment(ctx, t); err != nil {
			return err
		}
	}

	correlations := []*models.CorrelationAnalysis{
		{Symbol: "ETH", CorrelationBTC: 0.87, CorrelationETH: 1, Beta: 1.24, WindowDays: 30, ComputedAt: now},
		{Symbol: "SOL", CorrelationBTC: 0.71, CorrelationETH: 0.78, Beta: 1.62, WindowDays: 30, ComputedAt: now},
		{Symbol: "XRP", CorrelationBTC: 0.58, CorrelationETH: 0.52, Beta: 0.94, WindowDays: 30, ComputedAt: now},
	}
	for _, c := range correlations {
		if err := s.InsertCorrelation(ctx, c); err != nil {
			return err
		}
	}

	s.logger.Info("sample data seeded",
		applogger.Int("coins", len(coins)),
		applogger.Int("sentiments", len(sentiments)),
		applogger.Int("correlations", len(correlations)),
	)
	return nil
}
