// Package frequency normalizes contribution amounts across schedules.
package frequency

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// ToMonthly converts a contribution amount from its schedule to the
// equivalent monthly amount.
// Logic:
// 1. WEEKLY amounts are annualized over 52 weeks, then spread across 12 months
// 2. MONTHLY amounts pass through unchanged
// 3. ANNUAL amounts are spread evenly across 12 months
// 4. Any other frequency is rejected with ErrInvalidFrequency
func ToMonthly(amount decimal.Decimal, freq domain.Frequency) (decimal.Decimal, error) {
	switch freq {
	case domain.FrequencyWeekly:
		return amount.Mul(weeksPerYear).Div(monthsPerYear), nil
	case domain.FrequencyMonthly:
		return amount, nil
	case domain.FrequencyAnnual:
		return amount.Div(monthsPerYear), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, string(freq))
	}
}
