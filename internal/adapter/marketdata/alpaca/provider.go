// Package alpaca fetches monthly price history from the Alpaca Market Data API.
package alpaca

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// Provider implements domain.MarketDataProvider on top of the Alpaca SDK.
type Provider struct {
	client *marketdata.Client
}

// Ensure Provider implements the interface
var _ domain.MarketDataProvider = (*Provider)(nil)

// NewProvider returns a new Alpaca provider. Empty credentials fall back to
// the APCA_* environment variables read by the SDK itself.
func NewProvider(apiKey, apiSecret, baseURL string) *Provider {
	return &Provider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
	}
}

// MonthlyCloses fetches split and dividend adjusted monthly bars for ticker.
// The SDK client carries no context support, so ctx goes unused.
func (p *Provider) MonthlyCloses(_ context.Context, ticker string, start, end time.Time) (*domain.PriceSeries, error) {
	bars, err := p.client.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneMonth,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bars for %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownTicker, ticker)
	}

	series := &domain.PriceSeries{
		Ticker: ticker,
		Points: make([]domain.PricePoint, 0, len(bars)),
	}
	for _, b := range bars {
		series.Points = append(series.Points, domain.PricePoint{
			Date:  monthStart(b.Timestamp),
			Close: decimal.NewFromFloat(b.Close),
		})
	}
	return series, nil
}

// monthStart normalizes a bar timestamp to midnight UTC on the first of its
// month so series from different tickers share one date index.
func monthStart(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}
