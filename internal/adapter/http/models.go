package http

import (
	"time"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// ComparisonRequest represents the body of POST /api/v1/comparisons
type ComparisonRequest struct {
	Tickers       []string `json:"tickers" binding:"required,min=1"`
	Benchmark     string   `json:"benchmark" binding:"required"`
	StartDate     string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate       string   `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Amount        string   `json:"amount" binding:"required"`
	Frequency     string   `json:"frequency" binding:"required"` // WEEKLY, MONTHLY or ANNUAL
	InitialAmount string   `json:"initial_amount,omitempty"`
	IncludeSeries bool     `json:"include_series,omitempty"`
}

// ComparisonResponse represents a finished comparison
type ComparisonResponse struct {
	ID              string         `json:"id"`
	Tickers         []string       `json:"tickers"`
	BenchmarkTicker string         `json:"benchmark_ticker"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	MonthlyAmount   string         `json:"monthly_amount"`
	Portfolio       StrategyReport `json:"portfolio"`
	Benchmark       StrategyReport `json:"benchmark"`
	CreatedAt       time.Time      `json:"created_at"`
}

// StrategyReport describes the outcome of one simulated strategy
type StrategyReport struct {
	FinalValue string           `json:"final_value"`
	Summary    SummaryReport    `json:"summary"`
	Series     []ValuePointJSON `json:"series,omitempty"`
}

// SummaryReport carries the derived statistics of one strategy
type SummaryReport struct {
	TotalInvested     string  `json:"total_invested"`
	Profit            string  `json:"profit"`
	ProfitPct         string  `json:"profit_pct"`
	HighestValue      string  `json:"highest_value"`
	LowestValue       string  `json:"lowest_value"`
	MaxDrawdownPct    float64 `json:"max_drawdown_pct"`
	MeanMonthlyGrowth float64 `json:"mean_monthly_growth"`
	GrowthVolatility  float64 `json:"growth_volatility"`
}

// ValuePointJSON is one month of simulated portfolio value
type ValuePointJSON struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func toComparisonResponse(cmp *domain.Comparison, includeSeries bool) ComparisonResponse {
	return ComparisonResponse{
		ID:              cmp.ID.String(),
		Tickers:         cmp.Tickers,
		BenchmarkTicker: cmp.BenchmarkTicker,
		StartDate:       cmp.Start.Format(time.DateOnly),
		EndDate:         cmp.End.Format(time.DateOnly),
		MonthlyAmount:   cmp.MonthlyAmount.String(),
		Portfolio:       toStrategyReport(cmp.Portfolio, includeSeries),
		Benchmark:       toStrategyReport(cmp.Benchmark, includeSeries),
		CreatedAt:       cmp.CreatedAt,
	}
}

func toStrategyReport(result domain.StrategyResult, includeSeries bool) StrategyReport {
	report := StrategyReport{
		FinalValue: result.FinalValue.String(),
		Summary: SummaryReport{
			TotalInvested:     result.Summary.TotalInvested.String(),
			Profit:            result.Summary.Profit.String(),
			ProfitPct:         result.Summary.ProfitPct.String(),
			HighestValue:      result.Summary.HighestValue.String(),
			LowestValue:       result.Summary.LowestValue.String(),
			MaxDrawdownPct:    result.Summary.MaxDrawdownPct,
			MeanMonthlyGrowth: result.Summary.MeanMonthlyGrowth,
			GrowthVolatility:  result.Summary.GrowthVolatility,
		},
	}
	if includeSeries {
		report.Series = make([]ValuePointJSON, len(result.Values))
		for i, point := range result.Values {
			report.Series[i] = ValuePointJSON{
				Date:  point.Date.Format(time.DateOnly),
				Value: point.Value.String(),
			}
		}
	}
	return report
}
