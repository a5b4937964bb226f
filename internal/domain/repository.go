package domain

import (
	"context"
	"time"
)

// PriceRepository defines the interface for cached price series persistence
type PriceRepository interface {
	// Get retrieves a cached series by its key
	// Returns ErrSeriesNotCached when no entry matches the key
	Get(ctx context.Context, key SeriesKey) (*PriceSeries, error)

	// Put stores a fetched series under its key, replacing any previous
	// entry for the same key
	Put(ctx context.Context, key SeriesKey, series *PriceSeries) error

	// Purge removes cache entries fetched before the cutoff
	// Returns the number of series removed
	Purge(ctx context.Context, fetchedBefore time.Time) (int64, error)
}

// MarketDataProvider defines the interface for fetching historical prices
// from an external market data source
type MarketDataProvider interface {
	// MonthlyCloses returns the adjusted monthly closing prices for a ticker
	// over [start, end], ordered by date ascending
	// Returns ErrUnknownTicker when the source has no data for the symbol
	MonthlyCloses(ctx context.Context, ticker string, start, end time.Time) (*PriceSeries, error)
}
