// Package analysis derives summary statistics from simulated value series.
package analysis

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Summarize computes performance statistics for a simulated value series.
// The amounts mirror the simulation inputs and determine the invested total:
// one monthly contribution per output point plus the optional initial amount.
func Summarize(values domain.PortfolioValueSeries, monthlyAmount, initialAmount decimal.Decimal) domain.Summary {
	steps := decimal.NewFromInt(int64(len(values)))
	invested := initialAmount.Add(monthlyAmount.Mul(steps))

	summary := domain.Summary{
		TotalInvested: invested,
		Profit:        decimal.Zero,
		ProfitPct:     decimal.Zero,
		HighestValue:  decimal.Zero,
		LowestValue:   decimal.Zero,
	}
	if len(values) == 0 {
		return summary
	}

	final := values.Final()
	summary.Profit = final.Sub(invested)
	if invested.IsPositive() {
		summary.ProfitPct = summary.Profit.Div(invested).Mul(hundred)
	}

	summary.HighestValue = values[0].Value
	summary.LowestValue = values[0].Value
	for _, v := range values[1:] {
		if v.Value.GreaterThan(summary.HighestValue) {
			summary.HighestValue = v.Value
		}
		if v.Value.LessThan(summary.LowestValue) {
			summary.LowestValue = v.Value
		}
	}

	summary.MaxDrawdownPct = maxDrawdown(values)

	growth := monthlyGrowth(values)
	if len(growth) > 0 {
		summary.MeanMonthlyGrowth = stat.Mean(growth, nil)
	}
	// stat.StdDev divides by n-1 and needs at least two samples.
	if len(growth) > 1 {
		summary.GrowthVolatility = stat.StdDev(growth, nil)
	}

	return summary
}

// maxDrawdown returns the largest peak-to-trough decline in percent.
func maxDrawdown(values domain.PortfolioValueSeries) float64 {
	var peak, worst float64
	for _, v := range values {
		val := v.Value.InexactFloat64()
		if val > peak {
			peak = val
		}
		if peak > 0 {
			drawdown := (peak - val) / peak * 100
			if drawdown > worst {
				worst = drawdown
			}
		}
	}
	return worst
}

// monthlyGrowth computes month over month growth rates. Points following a
// zero value are skipped since no rate is defined there.
func monthlyGrowth(values domain.PortfolioValueSeries) []float64 {
	growth := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1].Value.InexactFloat64()
		if prev == 0 {
			continue
		}
		cur := values[i].Value.InexactFloat64()
		growth = append(growth, (cur-prev)/prev)
	}
	return growth
}
