package alpaca

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthStart(t *testing.T) {
	// Alpaca reports monthly bars at 04:00 or 05:00 UTC depending on DST.
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "bar timestamp in exchange time",
			in:   time.Date(2024, time.March, 1, 0, 0, 0, 0, newYork),
			want: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already midnight utc",
			in:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "mid month timestamp",
			in:   time.Date(2024, time.March, 15, 13, 37, 0, 0, time.UTC),
			want: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthStart(tt.in))
		})
	}
}
