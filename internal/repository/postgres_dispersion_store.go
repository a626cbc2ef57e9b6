package repository

import (
	"context"
	"errors"
	"fmt"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSnapshotNotFound is returned when a symbol has no dispersion rows.
var ErrSnapshotNotFound = errors.New("dispersion snapshot not found")

// PostgresDispersionStore implements DispersionStore.
type PostgresDispersionStore struct {
	db *pgxpool.Pool
}

// NewPostgresDispersionStore creates the dispersion snapshot store.
func NewPostgresDispersionStore(db *pgxpool.Pool) domrepo.DispersionStore {
	return &PostgresDispersionStore{db: db}
}

func (s *PostgresDispersionStore) InsertSnapshot(ctx context.Context, snap *models.DispersionSnapshot) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO exchange_price_dispersion
			(symbol, price_dispersion, volume_concentration, signal_level, signal_type, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		snap.Symbol, snap.PriceDispersion, snap.VolumeConcentration,
		snap.SignalLevel, snap.SignalType, snap.ComputedAt,
	).Scan(&snap.ID)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresDispersionStore) LatestSnapshot(ctx context.Context, symbol string) (*models.DispersionSnapshot, error) {
	var snap models.DispersionSnapshot
	err := s.db.QueryRow(ctx, `
		SELECT id, symbol, price_dispersion, volume_concentration, signal_level, signal_type, computed_at
		FROM exchange_price_dispersion
		WHERE symbol = $1
		ORDER BY computed_at DESC
		LIMIT 1`, symbol).Scan(
		&snap.ID, &snap.Symbol, &snap.PriceDispersion, &snap.VolumeConcentration,
		&snap.SignalLevel, &snap.SignalType, &snap.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// LatestPerSymbol returns the newest snapshot for every symbol.
func (s *PostgresDispersionStore) LatestPerSymbol(ctx context.Context) ([]*models.DispersionSnapshot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT ON (symbol)
			id, symbol, price_dispersion, volume_concentration, signal_level, signal_type, computed_at
		FROM exchange_price_dispersion
		ORDER BY symbol, computed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*models.DispersionSnapshot
	for rows.Next() {
		var snap models.DispersionSnapshot
		if err := rows.Scan(
			&snap.ID, &snap.Symbol, &snap.PriceDispersion, &snap.VolumeConcentration,
			&snap.SignalLevel, &snap.SignalType, &snap.ComputedAt,
		); err != nil {
			return nil, err
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}
