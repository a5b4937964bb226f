package domain

import "fmt"

// Frequency represents how often the recurring contribution is made
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyAnnual  Frequency = "ANNUAL"
)

// Validate ensures the frequency is one of the supported enumerants
func (f Frequency) Validate() error {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyAnnual:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, string(f))
	}
}
