package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comparison is the result of feeding the same contribution stream into a
// stock basket and into a single benchmark index over one shared date range
type Comparison struct {
	ID              uuid.UUID
	Tickers         []string
	BenchmarkTicker string
	Start           time.Time
	End             time.Time
	Plan            ContributionPlan
	MonthlyAmount   decimal.Decimal // Plan amount normalized to a monthly rate
	Portfolio       StrategyResult
	Benchmark       StrategyResult
	CreatedAt       time.Time
}

// StrategyResult holds the simulated series and derived figures for one side
// of a comparison
type StrategyResult struct {
	Values     PortfolioValueSeries
	FinalValue decimal.Decimal
	Summary    Summary
}

// Summary carries the display scalars derived from one simulated series.
// The decimal fields stay exact; the float fields are statistical and only
// ever rendered, never fed back into simulation arithmetic.
type Summary struct {
	TotalInvested     decimal.Decimal
	Profit            decimal.Decimal
	ProfitPct         decimal.Decimal
	HighestValue      decimal.Decimal
	LowestValue       decimal.Decimal
	MaxDrawdownPct    float64
	MeanMonthlyGrowth float64
	GrowthVolatility  float64
}
