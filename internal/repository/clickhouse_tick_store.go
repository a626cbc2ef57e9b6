package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
)

// ClickHouseTickStore implements TickStore for ClickHouse.
type ClickHouseTickStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseTickStore creates the ClickHouse tick store.
func NewClickHouseTickStore(db *sql.DB, table string) domrepo.TickStore {
	return &ClickHouseTickStore{db: db, table: table}
}

func (s *ClickHouseTickStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseTickStore) Store(ctx context.Context, t *models.Tick) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, symbol, exchange, price, volume) VALUES (?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		time.Unix(t.Timestamp, 0),
		t.Symbol,
		t.Exchange,
		t.Price,
		t.Volume,
	)
	return err
}

func (s *ClickHouseTickStore) StoreBatch(ctx context.Context, ticks []*models.Tick) error {
	if len(ticks) == 0 {
		return nil
	}
	// Multi-row VALUES insert to reduce round-trips, chunked at 2000 rows.
	const chunkSize = 2000
	for start := 0; start < len(ticks); start += chunkSize {
		end := start + chunkSize
		if end > len(ticks) {
			end = len(ticks)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, t := range ticks[start:end] {
			if t == nil || t.Symbol == "" || t.Timestamp == 0 {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args,
				time.Unix(t.Timestamp, 0),
				t.Symbol,
				t.Exchange,
				t.Price,
				t.Volume,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, symbol, exchange, price, volume) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseTickStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error) {
	q := fmt.Sprintf("SELECT symbol, exchange, ts, price, volume FROM %s WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ticks []*models.Tick
	for rows.Next() {
		var t models.Tick
		var ts time.Time
		if err := rows.Scan(&t.Symbol, &t.Exchange, &ts, &t.Price, &t.Volume); err != nil {
			return nil, err
		}
		t.Timestamp = ts.Unix()
		ticks = append(ticks, &t)
	}
	return ticks, rows.Err()
}

// LatestQuotes returns the most recent price and summed volume per exchange
// within the window. Feeds the dispersion analyzer.
func (s *ClickHouseTickStore) LatestQuotes(ctx context.Context, symbol string, window time.Duration) ([]*models.ExchangeQuote, error) {
	q := fmt.Sprintf(`
		SELECT exchange, argMax(price, ts) AS price, sum(volume) AS volume
		FROM %s
		WHERE symbol = ? AND ts >= ?
		GROUP BY exchange`, s.table)
	rows, err := s.db.QueryContext(ctx, q, symbol, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.ExchangeQuote
	for rows.Next() {
		quote := &models.ExchangeQuote{Symbol: symbol}
		if err := rows.Scan(&quote.Exchange, &quote.Price, &quote.Volume); err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}

func (s *ClickHouseTickStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseTickStore) Close() error {
	return nil // Managed by pkg
}
