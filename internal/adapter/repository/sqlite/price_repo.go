package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// priceRepository implements domain.PriceRepository
type priceRepository struct {
	db *DB
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *DB) domain.PriceRepository {
	return &priceRepository{db: db}
}

// Get loads the series stored under the exact key
func (r *priceRepository) Get(ctx context.Context, key domain.SeriesKey) (*domain.PriceSeries, error) {
	selectSeriesQuery := `
		SELECT id FROM price_series
		WHERE ticker = ? AND start_date = ? AND end_date = ? AND interval = ?
	`

	var seriesID string
	err := r.db.QueryRowContext(ctx, selectSeriesQuery,
		key.Ticker,
		key.Start.Format(time.DateOnly),
		key.End.Format(time.DateOnly),
		key.Interval,
	).Scan(&seriesID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeriesNotCached, key.Ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query price series: %w", err)
	}

	// Zero padded ISO dates sort chronologically as text
	selectPointsQuery := `
		SELECT point_date, close_price FROM price_points
		WHERE series_id = ?
		ORDER BY point_date
	`

	rows, err := r.db.QueryContext(ctx, selectPointsQuery, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price points: %w", err)
	}
	defer rows.Close()

	series := &domain.PriceSeries{Ticker: key.Ticker}
	for rows.Next() {
		var dateStr, closeStr string
		if err := rows.Scan(&dateStr, &closeStr); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}

		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse point date: %w", err)
		}
		closePrice, err := decimal.NewFromString(closeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse close price: %w", err)
		}

		series.Points = append(series.Points, domain.PricePoint{Date: date, Close: closePrice})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price points: %w", err)
	}

	return series, nil
}

// Put stores the series under key, replacing any previous entry
func (r *priceRepository) Put(ctx context.Context, key domain.SeriesKey, series *domain.PriceSeries) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	startStr := key.Start.Format(time.DateOnly)
	endStr := key.End.Format(time.DateOnly)

	// Drop any stale entry first, the points go with it via the cascade
	deleteQuery := `
		DELETE FROM price_series
		WHERE ticker = ? AND start_date = ? AND end_date = ? AND interval = ?
	`

	if _, err := dbTx.ExecContext(ctx, deleteQuery, key.Ticker, startStr, endStr, key.Interval); err != nil {
		return fmt.Errorf("failed to delete stale series: %w", err)
	}

	insertSeriesQuery := `
		INSERT INTO price_series (id, ticker, start_date, end_date, interval, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	seriesID := uuid.New().String()
	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := dbTx.ExecContext(ctx, insertSeriesQuery,
		seriesID, key.Ticker, startStr, endStr, key.Interval, fetchedAt); err != nil {
		return fmt.Errorf("failed to insert price series: %w", err)
	}

	insertPointQuery := `
		INSERT INTO price_points (series_id, point_date, close_price)
		VALUES (?, ?, ?)
	`

	for _, point := range series.Points {
		if _, err := dbTx.ExecContext(ctx, insertPointQuery,
			seriesID, point.Date.Format(time.DateOnly), point.Close.String()); err != nil {
			return fmt.Errorf("failed to insert price point: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Purge removes series fetched before the cutoff and reports how many
func (r *priceRepository) Purge(ctx context.Context, fetchedBefore time.Time) (int64, error) {
	purgeQuery := `DELETE FROM price_series WHERE fetched_at < ?`

	res, err := r.db.ExecContext(ctx, purgeQuery, fetchedBefore.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to purge price series: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged series: %w", err)
	}
	return affected, nil
}
