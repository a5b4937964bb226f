package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// IntervalMonthly is the sampling interval of all cached and simulated series.
const IntervalMonthly = "1mo"

// PricePoint is a single closing price observation
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// PriceSeries holds the ordered monthly closing prices for one ticker
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

// Validate ensures the series adheres to domain rules:
// at least two points, strictly increasing dates, strictly positive closes
func (s *PriceSeries) Validate() error {
	if len(s.Points) < 2 {
		return fmt.Errorf("%w: %s has %d point(s)", ErrInsufficientData, s.Ticker, len(s.Points))
	}

	for i, p := range s.Points {
		if !p.Close.IsPositive() {
			return fmt.Errorf("%w: %s at %s closed at %s", ErrInvalidPrice, s.Ticker, p.Date.Format(time.DateOnly), p.Close)
		}
		if i > 0 && !p.Date.After(s.Points[i-1].Date) {
			return fmt.Errorf("series %s dates must be strictly increasing at index %d", s.Ticker, i)
		}
	}

	return nil
}

// AlignedWith reports whether both series share an identical timestamp index.
// Length and every per-index date must match exactly.
func (s *PriceSeries) AlignedWith(other *PriceSeries) bool {
	if len(s.Points) != len(other.Points) {
		return false
	}
	for i := range s.Points {
		if !s.Points[i].Date.Equal(other.Points[i].Date) {
			return false
		}
	}
	return true
}

// SeriesKey identifies one cached price series fetch.
// Two fetches share a cache entry only when ticker, date range, and sampling
// interval all match.
type SeriesKey struct {
	Ticker   string
	Start    time.Time
	End      time.Time
	Interval string
}

// ValuePoint is the total portfolio value at the close of one simulated month
type ValuePoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// PortfolioValueSeries is the ordered output of a simulation run.
// For an input of N monthly prices it holds exactly N-1 points: the first
// price funds the starting position and emits no output.
type PortfolioValueSeries []ValuePoint

// Final returns the last value of the series, or zero for an empty series
func (s PortfolioValueSeries) Final() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s[len(s)-1].Value
}
