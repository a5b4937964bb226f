// Package marketdata serves monthly price history through a local cache.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// PriceService resolves price series cache-first, falling back to the market
// data provider and caching whatever it fetched.
type PriceService struct {
	Repo     domain.PriceRepository
	Provider domain.MarketDataProvider
	log      zerolog.Logger
}

// NewPriceService creates a new price service
func NewPriceService(repo domain.PriceRepository, provider domain.MarketDataProvider, log zerolog.Logger) *PriceService {
	return &PriceService{
		Repo:     repo,
		Provider: provider,
		log:      log.With().Str("component", "marketdata").Logger(),
	}
}

// GetSeries returns the monthly closes for one ticker over [start, end].
// Logic:
// 1. Serve from the cache when the exact series is stored
// 2. Otherwise fetch from the provider and cache the result
// 3. A cache write failure is logged but does not fail the request
func (s *PriceService) GetSeries(ctx context.Context, ticker string, start, end time.Time) (*domain.PriceSeries, error) {
	key := domain.SeriesKey{Ticker: ticker, Start: start, End: end, Interval: domain.IntervalMonthly}

	cached, err := s.Repo.Get(ctx, key)
	if err == nil {
		s.log.Debug().Str("ticker", ticker).Int("points", len(cached.Points)).
			Msg("price series served from cache")
		return cached, nil
	}
	if !errors.Is(err, domain.ErrSeriesNotCached) {
		return nil, fmt.Errorf("failed to read price cache: %w", err)
	}

	fetched, err := s.Provider.MonthlyCloses(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	if fetched == nil || len(fetched.Points) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTicker, ticker)
	}

	if err := s.Repo.Put(ctx, key, fetched); err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("failed to cache price series")
	} else {
		s.log.Debug().Str("ticker", ticker).Int("points", len(fetched.Points)).
			Msg("price series fetched and cached")
	}

	return fetched, nil
}

// AlignedSeries fetches every ticker over [start, end] and trims all series
// to the dates they share, preserving chronological order. Each trimmed
// series must keep at least two points for a simulation to run on it.
func (s *PriceService) AlignedSeries(ctx context.Context, tickers []string, start, end time.Time) ([]domain.PriceSeries, error) {
	series := make([]domain.PriceSeries, 0, len(tickers))
	for _, ticker := range tickers {
		got, err := s.GetSeries(ctx, ticker, start, end)
		if err != nil {
			return nil, err
		}
		series = append(series, *got)
	}

	aligned := intersect(series)
	for i := range aligned {
		if len(aligned[i].Points) < 2 {
			return nil, fmt.Errorf("%w: %s has %d price points shared with the other tickers",
				domain.ErrInsufficientData, aligned[i].Ticker, len(aligned[i].Points))
		}
	}
	return aligned, nil
}

// intersect keeps only the dates present in every series.
func intersect(series []domain.PriceSeries) []domain.PriceSeries {
	if len(series) < 2 {
		return series
	}

	// Count each date once per series so a ticker requested twice, such as
	// a benchmark that is also part of the basket, does not skew the count.
	counts := make(map[int64]int)
	for _, s := range series {
		seen := make(map[int64]struct{}, len(s.Points))
		for _, p := range s.Points {
			ts := p.Date.Unix()
			if _, ok := seen[ts]; ok {
				continue
			}
			seen[ts] = struct{}{}
			counts[ts]++
		}
	}

	out := make([]domain.PriceSeries, len(series))
	for i, s := range series {
		points := make([]domain.PricePoint, 0, len(s.Points))
		for _, p := range s.Points {
			if counts[p.Date.Unix()] == len(series) {
				points = append(points, p)
			}
		}
		out[i] = domain.PriceSeries{Ticker: s.Ticker, Points: points}
	}
	return out
}
