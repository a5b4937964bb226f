// Package simulation runs dollar cost averaging strategies over price history.
package simulation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// Input describes a single simulation run.
type Input struct {
	// Assets holds one monthly price series per holding. All series must
	// share the same date index.
	Assets []domain.PriceSeries
	// MonthlyAmount is contributed at every point after the first and is
	// split evenly across assets.
	MonthlyAmount decimal.Decimal
	// InitialAmount is invested once at the first price point. Zero skips
	// the initial purchase.
	InitialAmount decimal.Decimal
}

// assetState tracks one holding through the simulation.
type assetState struct {
	shares   decimal.Decimal
	leftover decimal.Decimal
}

// buy spends the carried leftover plus the new contribution on whole shares.
// The remainder is always smaller than the share price and carries over to
// the next purchase.
func (s *assetState) buy(contribution, price decimal.Decimal) {
	available := s.leftover.Add(contribution)
	bought, remainder := available.QuoRem(price, 0)
	s.shares = s.shares.Add(bought)
	s.leftover = remainder
}

// Run simulates periodic whole-share purchases across the given assets.
// Logic:
// 1. Validate the amounts, every price series, and that all series share one date index
// 2. Split each contribution evenly across assets
// 3. Invest the initial amount at the first price point, which produces no output point
// 4. At every later point, buy per asset and record the total portfolio value
func Run(input Input) (domain.PortfolioValueSeries, error) {
	if input.MonthlyAmount.IsNegative() || input.InitialAmount.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", domain.ErrInvalidContribution)
	}
	if len(input.Assets) == 0 {
		return nil, errors.New("at least one price series is required")
	}

	first := &input.Assets[0]
	for i := range input.Assets {
		if err := input.Assets[i].Validate(); err != nil {
			return nil, err
		}
		if !input.Assets[i].AlignedWith(first) {
			return nil, fmt.Errorf("%w: %s vs %s",
				domain.ErrMismatchedSeries, input.Assets[i].Ticker, first.Ticker)
		}
	}

	numAssets := decimal.NewFromInt(int64(len(input.Assets)))
	perAssetMonthly := input.MonthlyAmount.Div(numAssets)
	perAssetInitial := input.InitialAmount.Div(numAssets)

	states := make([]assetState, len(input.Assets))

	// The first price point only funds the baseline.
	if input.InitialAmount.IsPositive() {
		for i := range states {
			states[i].buy(perAssetInitial, input.Assets[i].Points[0].Close)
		}
	}

	steps := len(first.Points)
	values := make(domain.PortfolioValueSeries, 0, steps-1)
	for step := 1; step < steps; step++ {
		total := decimal.Zero
		for i := range states {
			price := input.Assets[i].Points[step].Close
			states[i].buy(perAssetMonthly, price)
			total = total.Add(states[i].shares.Mul(price))
		}
		values = append(values, domain.ValuePoint{Date: first.Points[step].Date, Value: total})
	}

	return values, nil
}
