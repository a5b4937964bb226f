package analysis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

func valueSeries(values ...string) domain.PortfolioValueSeries {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.PortfolioValueSeries, len(values))
	for i, v := range values {
		series[i] = domain.ValuePoint{
			Date:  start.AddDate(0, i, 0),
			Value: decimal.RequireFromString(v),
		}
	}
	return series
}

func TestSummarize(t *testing.T) {
	// Setup
	values := valueSeries("100", "300")

	// Execute
	summary := Summarize(values, decimal.NewFromInt(100), decimal.Zero)

	// Assert
	assert.Equal(t, "200", summary.TotalInvested.String())
	assert.Equal(t, "100", summary.Profit.String())
	assert.Equal(t, "50", summary.ProfitPct.String())
	assert.Equal(t, "300", summary.HighestValue.String())
	assert.Equal(t, "100", summary.LowestValue.String())
	assert.Equal(t, 0.0, summary.MaxDrawdownPct)
	assert.InDelta(t, 2.0, summary.MeanMonthlyGrowth, 1e-12)
	assert.Equal(t, 0.0, summary.GrowthVolatility, "a single growth sample has no spread")
}

func TestSummarize_IncludesInitialAmount(t *testing.T) {
	values := valueSeries("100", "200")

	summary := Summarize(values, decimal.NewFromInt(10), decimal.NewFromInt(80))

	assert.Equal(t, "100", summary.TotalInvested.String())
	assert.Equal(t, "100", summary.Profit.String())
	assert.Equal(t, "100", summary.ProfitPct.String())
}

func TestSummarize_Drawdown(t *testing.T) {
	values := valueSeries("100", "200", "100")

	summary := Summarize(values, decimal.Zero, decimal.Zero)

	assert.InDelta(t, 50.0, summary.MaxDrawdownPct, 1e-12)
	assert.InDelta(t, 0.25, summary.MeanMonthlyGrowth, 1e-12)
	// Samples 1.0 and -0.5 around mean 0.25, sample stddev sqrt(1.125).
	assert.InDelta(t, 1.0606601717798212, summary.GrowthVolatility, 1e-12)
}

func TestSummarize_LossIsNegative(t *testing.T) {
	values := valueSeries("90", "80")

	summary := Summarize(values, decimal.NewFromInt(50), decimal.Zero)

	assert.Equal(t, "100", summary.TotalInvested.String())
	assert.Equal(t, "-20", summary.Profit.String())
	assert.Equal(t, "-20", summary.ProfitPct.String())
}

func TestSummarize_EmptySeries(t *testing.T) {
	summary := Summarize(nil, decimal.NewFromInt(100), decimal.Zero)

	assert.Equal(t, "0", summary.TotalInvested.String())
	assert.Equal(t, "0", summary.Profit.String())
	assert.Equal(t, 0.0, summary.MaxDrawdownPct)
}

func TestSummarize_ZeroInvested(t *testing.T) {
	// A zero contribution run holds no shares and invests nothing.
	values := valueSeries("0", "0")

	summary := Summarize(values, decimal.Zero, decimal.Zero)

	assert.Equal(t, "0", summary.TotalInvested.String())
	assert.Equal(t, "0", summary.ProfitPct.String())
	assert.Equal(t, 0.0, summary.MeanMonthlyGrowth)
	assert.Equal(t, 0.0, summary.GrowthVolatility)
}
