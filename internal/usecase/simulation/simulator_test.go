package simulation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

func monthlySeries(ticker string, closes ...string) domain.PriceSeries {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]domain.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = domain.PricePoint{
			Date:  start.AddDate(0, i, 0),
			Close: decimal.RequireFromString(c),
		}
	}
	return domain.PriceSeries{Ticker: ticker, Points: points}
}

func valueStrings(values domain.PortfolioValueSeries) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Value.String()
	}
	return out
}

func TestRun_SingleAsset(t *testing.T) {
	// Setup
	input := Input{
		Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "10", "20")},
		MonthlyAmount: decimal.NewFromInt(100),
	}

	// Execute
	values, err := Run(input)

	// Assert: 10 shares after the first buy, 15 after the second
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, []string{"100", "300"}, valueStrings(values))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), values[0].Date)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), values[1].Date)
}

func TestRun_TwoAssetsSplitEvenly(t *testing.T) {
	// Setup: 50 per asset. A buys 7 whole shares at 7, B buys 4 at 11.
	input := Input{
		Assets: []domain.PriceSeries{
			monthlySeries("AAA", "5", "7"),
			monthlySeries("BBB", "10", "11"),
		},
		MonthlyAmount: decimal.NewFromInt(100),
	}

	// Execute
	values, err := Run(input)

	// Assert: 49 + 44, the leftovers stay uninvested per asset
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, []string{"93"}, valueStrings(values))
}

func TestRun_LeftoverCarriesOver(t *testing.T) {
	// Setup
	input := Input{
		Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "3", "3")},
		MonthlyAmount: decimal.NewFromInt(5),
	}

	// Execute
	values, err := Run(input)

	// Assert: first buy leaves 2 over, so the second buy affords 2 more shares
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "9"}, valueStrings(values))
}

func TestRun_InitialAmount(t *testing.T) {
	// Setup: lump sum at the first point, no periodic contributions
	input := Input{
		Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "10", "20")},
		MonthlyAmount: decimal.Zero,
		InitialAmount: decimal.NewFromInt(100),
	}

	// Execute
	values, err := Run(input)

	// Assert: 10 shares held from the start, valued at every later point
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "200"}, valueStrings(values))
}

func TestRun_InitialAndMonthlyCombined(t *testing.T) {
	// Setup
	input := Input{
		Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "10", "20")},
		MonthlyAmount: decimal.NewFromInt(10),
		InitialAmount: decimal.NewFromInt(50),
	}

	// Execute
	values, err := Run(input)

	// Assert: 5 upfront, 1 more at 10, none affordable at 20
	require.NoError(t, err)
	assert.Equal(t, []string{"60", "120"}, valueStrings(values))
}

func TestRun_ZeroContribution(t *testing.T) {
	// Setup
	input := Input{
		Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "10", "20")},
		MonthlyAmount: decimal.Zero,
	}

	// Execute
	values, err := Run(input)

	// Assert: nothing is ever bought but every step is still reported
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, []string{"0", "0"}, valueStrings(values))
}

func TestRun_ValidationErrors(t *testing.T) {
	shifted := monthlySeries("BBB", "10", "10", "20")
	for i := range shifted.Points {
		shifted.Points[i].Date = shifted.Points[i].Date.AddDate(0, 0, 15)
	}

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name: "negative monthly amount",
			input: Input{
				Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "20")},
				MonthlyAmount: decimal.NewFromInt(-1),
			},
			wantErr: domain.ErrInvalidContribution,
		},
		{
			name: "negative initial amount",
			input: Input{
				Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "20")},
				MonthlyAmount: decimal.NewFromInt(100),
				InitialAmount: decimal.NewFromInt(-1),
			},
			wantErr: domain.ErrInvalidContribution,
		},
		{
			name: "single price point",
			input: Input{
				Assets:        []domain.PriceSeries{monthlySeries("AAA", "10")},
				MonthlyAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrInsufficientData,
		},
		{
			name: "zero price",
			input: Input{
				Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "0", "20")},
				MonthlyAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrInvalidPrice,
		},
		{
			name: "negative price",
			input: Input{
				Assets:        []domain.PriceSeries{monthlySeries("AAA", "10", "-5")},
				MonthlyAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrInvalidPrice,
		},
		{
			name: "series lengths differ",
			input: Input{
				Assets: []domain.PriceSeries{
					monthlySeries("AAA", "10", "10", "20"),
					monthlySeries("BBB", "10", "10"),
				},
				MonthlyAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrMismatchedSeries,
		},
		{
			name: "series dates differ",
			input: Input{
				Assets: []domain.PriceSeries{
					monthlySeries("AAA", "10", "10", "20"),
					shifted,
				},
				MonthlyAmount: decimal.NewFromInt(100),
			},
			wantErr: domain.ErrMismatchedSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRun_NoAssets(t *testing.T) {
	_, err := Run(Input{MonthlyAmount: decimal.NewFromInt(100)})

	assert.Error(t, err)
}

func TestRun_IsDeterministic(t *testing.T) {
	input := Input{
		Assets: []domain.PriceSeries{
			monthlySeries("AAA", "17", "23", "19", "31"),
			monthlySeries("BBB", "101", "97", "113", "109"),
		},
		MonthlyAmount: decimal.RequireFromString("250.75"),
		InitialAmount: decimal.NewFromInt(1000),
	}

	firstRun, err := Run(input)
	require.NoError(t, err)
	secondRun, err := Run(input)
	require.NoError(t, err)

	assert.Equal(t, firstRun, secondRun)
}
