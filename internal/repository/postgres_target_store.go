package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/internal/services/consensus"
	applogger "CoinPulse/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSummaryNotFound is returned when no consensus summary exists for a symbol.
var ErrSummaryNotFound = errors.New("summary not found")

// PostgresTargetStore implements TargetStore. InsertTarget and the consensus
// recompute run in one transaction so a failed recompute rolls the insert back.
type PostgresTargetStore struct {
	db      *pgxpool.Pool
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

// NewPostgresTargetStore creates the analyst target store.
func NewPostgresTargetStore(db *pgxpool.Pool, metrics domrepo.Metrics, logger *applogger.Logger) domrepo.TargetStore {
	return &PostgresTargetStore{db: db, metrics: metrics, logger: logger}
}

func (s *PostgresTargetStore) InsertTarget(ctx context.Context, t *models.AnalystTarget) error {
	start := time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO analyst_targets
			(analyst_id, symbol, current_price, target_price, price_change_percent,
			 timeframe, confidence_level, is_active, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		t.AnalystID, t.Symbol, t.CurrentPrice, t.TargetPrice, t.PriceChangePercent,
		t.Timeframe, t.ConfidenceLevel, t.IsActive, t.PublishedAt,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert target: %w", err)
	}

	if err := s.recomputeSummary(ctx, tx, t.Symbol); err != nil {
		if s.metrics != nil {
			s.metrics.RecordSummaryRecompute(t.Symbol, "error")
		}
		return fmt.Errorf("recompute summary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTargetIngested(t.Symbol)
		s.metrics.RecordSummaryRecompute(t.Symbol, "ok")
		s.metrics.RecordLatency("insert_target", time.Since(start).Seconds())
	}
	s.logger.Debug("analyst target stored",
		applogger.String("symbol", t.Symbol),
		applogger.Int64("id", t.ID),
	)
	return nil
}

// recomputeSummary rebuilds the symbol's consensus row from its active
// targets. FOR UPDATE serializes concurrent writers on the same symbol.
func (s *PostgresTargetStore) recomputeSummary(ctx context.Context, tx pgx.Tx, symbol string) error {
	rows, err := tx.Query(ctx, `
		SELECT id, analyst_id, symbol, current_price, target_price,
		       price_change_percent, timeframe, confidence_level, is_active,
		       published_at, created_at
		FROM analyst_targets
		WHERE symbol = $1 AND is_active
		FOR UPDATE`, symbol)
	if err != nil {
		return err
	}
	targets, err := scanTargets(rows)
	if err != nil {
		return err
	}

	summary := consensus.Compute(symbol, targets, time.Now().UTC())

	_, err = tx.Exec(ctx, `
		INSERT INTO coin_analyst_summary
			(symbol, total_analysts,
			 short_term_count, short_term_avg, short_term_median,
			 medium_term_count, medium_term_avg, medium_term_median,
			 long_term_count, long_term_avg, long_term_median,
			 consensus_direction, confidence_level, price_dispersion, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (symbol) DO UPDATE SET
			total_analysts = EXCLUDED.total_analysts,
			short_term_count = EXCLUDED.short_term_count,
			short_term_avg = EXCLUDED.short_term_avg,
			short_term_median = EXCLUDED.short_term_median,
			medium_term_count = EXCLUDED.medium_term_count,
			medium_term_avg = EXCLUDED.medium_term_avg,
			medium_term_median = EXCLUDED.medium_term_median,
			long_term_count = EXCLUDED.long_term_count,
			long_term_avg = EXCLUDED.long_term_avg,
			long_term_median = EXCLUDED.long_term_median,
			consensus_direction = EXCLUDED.consensus_direction,
			confidence_level = EXCLUDED.confidence_level,
			price_dispersion = EXCLUDED.price_dispersion,
			last_updated = EXCLUDED.last_updated`,
		summary.Symbol, summary.TotalAnalysts,
		summary.ShortTermCount, summary.ShortTermAvg, summary.ShortTermMedian,
		summary.MediumTermCount, summary.MediumTermAvg, summary.MediumTermMedian,
		summary.LongTermCount, summary.LongTermAvg, summary.LongTermMedian,
		summary.ConsensusDirection, summary.ConfidenceLevel, summary.PriceDispersion,
		summary.LastUpdated,
	)
	return err
}

func (s *PostgresTargetStore) RecentTargets(ctx context.Context, symbol string, limit int) ([]*models.AnalystTarget, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, analyst_id, symbol, current_price, target_price,
		       price_change_percent, timeframe, confidence_level, is_active,
		       published_at, created_at
		FROM analyst_targets
		WHERE symbol = $1
		ORDER BY published_at DESC
		LIMIT $2`, symbol, limit)
	if err != nil {
		return nil, err
	}
	return scanTargets(rows)
}

func (s *PostgresTargetStore) GetSummary(ctx context.Context, symbol string) (*models.CoinAnalystSummary, error) {
	var sum models.CoinAnalystSummary
	err := s.db.QueryRow(ctx, `
		SELECT symbol, total_analysts,
		       short_term_count, short_term_avg, short_term_median,
		       medium_term_count, medium_term_avg, medium_term_median,
		       long_term_count, long_term_avg, long_term_median,
		       consensus_direction, confidence_level, price_dispersion, last_updated
		FROM coin_analyst_summary
		WHERE symbol = $1`, symbol).Scan(
		&sum.Symbol, &sum.TotalAnalysts,
		&sum.ShortTermCount, &sum.ShortTermAvg, &sum.ShortTermMedian,
		&sum.MediumTermCount, &sum.MediumTermAvg, &sum.MediumTermMedian,
		&sum.LongTermCount, &sum.LongTermAvg, &sum.LongTermMedian,
		&sum.ConsensusDirection, &sum.ConfidenceLevel, &sum.PriceDispersion,
		&sum.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}
	return &sum, nil
}

func scanTargets(rows pgx.Rows) ([]*models.AnalystTarget, error) {
	defer rows.Close()

	var targets []*models.AnalystTarget
	for rows.Next() {
		var t models.AnalystTarget
		if err := rows.Scan(
			&t.ID, &t.AnalystID, &t.Symbol, &t.CurrentPrice, &t.TargetPrice,
			&t.PriceChangePercent, &t.Timeframe, &t.ConfidenceLevel, &t.IsActive,
			&t.PublishedAt, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		targets = append(targets, &t)
	}
	return targets, rows.Err()
}
