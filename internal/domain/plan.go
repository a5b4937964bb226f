package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ContributionPlan represents the cash stream committed to a simulation run.
// Amount is expressed in the plan's own frequency and normalized to a monthly
// rate before simulation. InitialAmount is an optional lump sum invested at
// the first available price before periodic contributions begin.
type ContributionPlan struct {
	Amount        decimal.Decimal
	Frequency     Frequency
	InitialAmount decimal.Decimal
}

// Validate ensures the plan adheres to domain rules
// Returns an error if validation fails
func (p *ContributionPlan) Validate() error {
	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s", ErrInvalidContribution, p.Amount)
	}

	if p.InitialAmount.IsNegative() {
		return fmt.Errorf("%w: initial amount %s", ErrInvalidContribution, p.InitialAmount)
	}

	return p.Frequency.Validate()
}
