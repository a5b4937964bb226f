// Package comparison orchestrates portfolio versus benchmark simulations.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
	"github.com/geekendzone/dcasim-backend/internal/usecase/analysis"
	"github.com/geekendzone/dcasim-backend/internal/usecase/frequency"
	"github.com/geekendzone/dcasim-backend/internal/usecase/simulation"
)

// PriceFetcher provides monthly price series trimmed to a shared date index.
type PriceFetcher interface {
	AlignedSeries(ctx context.Context, tickers []string, start, end time.Time) ([]domain.PriceSeries, error)
}

// ComparisonService runs a contribution plan against a portfolio basket and
// a benchmark over the same price history.
type ComparisonService struct {
	Prices PriceFetcher
}

// NewComparisonService creates a new comparison service
func NewComparisonService(prices PriceFetcher) *ComparisonService {
	return &ComparisonService{Prices: prices}
}

// Input carries the parameters of one comparison request.
type Input struct {
	Tickers       []string
	Benchmark     string
	Start         time.Time
	End           time.Time
	Amount        decimal.Decimal
	Frequency     domain.Frequency
	InitialAmount decimal.Decimal
}

// Compare runs the same plan against the basket and the benchmark.
// Logic:
// 1. Validate the plan, the tickers and the date range
// 2. Normalize the contribution to its monthly equivalent
// 3. Fetch one aligned date index covering the basket and the benchmark
// 4. Simulate the basket with the contribution split across its tickers
// 5. Simulate the benchmark with the full contribution on its own
// 6. Summarize both runs and assemble the comparison
func (s *ComparisonService) Compare(ctx context.Context, input Input) (*domain.Comparison, error) {
	plan := domain.ContributionPlan{
		Amount:        input.Amount,
		Frequency:     input.Frequency,
		InitialAmount: input.InitialAmount,
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if len(input.Tickers) == 0 {
		return nil, errors.New("at least one portfolio ticker is required")
	}
	if input.Benchmark == "" {
		return nil, errors.New("benchmark ticker is required")
	}
	if !input.Start.Before(input.End) {
		return nil, fmt.Errorf("start date %s is not before end date %s",
			input.Start.Format(time.DateOnly), input.End.Format(time.DateOnly))
	}

	monthly, err := frequency.ToMonthly(input.Amount, input.Frequency)
	if err != nil {
		return nil, err
	}

	// The benchmark rides along in the same fetch so both simulations see
	// the exact same date index.
	all := make([]string, 0, len(input.Tickers)+1)
	all = append(all, input.Tickers...)
	all = append(all, input.Benchmark)

	series, err := s.Prices.AlignedSeries(ctx, all, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	basket := series[:len(series)-1]
	benchmark := series[len(series)-1]

	// Both result series are paired point by point later, so the benchmark
	// must share the basket's date axis. Alignment inside the basket is
	// checked by the simulation itself.
	if !benchmark.AlignedWith(&basket[0]) {
		return nil, fmt.Errorf("%w: %s vs %s",
			domain.ErrMismatchedSeries, benchmark.Ticker, basket[0].Ticker)
	}

	portfolioValues, err := simulation.Run(simulation.Input{
		Assets:        basket,
		MonthlyAmount: monthly,
		InitialAmount: input.InitialAmount,
	})
	if err != nil {
		return nil, err
	}

	benchmarkValues, err := simulation.Run(simulation.Input{
		Assets:        []domain.PriceSeries{benchmark},
		MonthlyAmount: monthly,
		InitialAmount: input.InitialAmount,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Comparison{
		ID:              uuid.New(),
		Tickers:         input.Tickers,
		BenchmarkTicker: input.Benchmark,
		Start:           input.Start,
		End:             input.End,
		Plan:            plan,
		MonthlyAmount:   monthly,
		Portfolio: domain.StrategyResult{
			Values:     portfolioValues,
			FinalValue: portfolioValues.Final(),
			Summary:    analysis.Summarize(portfolioValues, monthly, input.InitialAmount),
		},
		Benchmark: domain.StrategyResult{
			Values:     benchmarkValues,
			FinalValue: benchmarkValues.Final(),
			Summary:    analysis.Summarize(benchmarkValues, monthly, input.InitialAmount),
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
