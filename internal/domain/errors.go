package domain

import "errors"

// Sentinel errors shared across the simulation and market data layers.
// Callers match them with errors.Is; messages carry no request context,
// the wrapping site adds that.
var (
	// ErrInvalidFrequency is returned for any frequency outside the three
	// supported enumerants.
	ErrInvalidFrequency = errors.New("invalid contribution frequency")

	// ErrInvalidContribution is returned for negative contribution amounts.
	// A zero contribution is valid and simulates to an all-zero series.
	ErrInvalidContribution = errors.New("contribution amount cannot be negative")

	// ErrInvalidPrice is returned when a series contains a zero or negative
	// closing price at a step the simulation needs.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInsufficientData is returned when a price series has fewer than two
	// points, leaving no step to simulate.
	ErrInsufficientData = errors.New("price series must contain at least two points")

	// ErrMismatchedSeries is returned when the series of a multi-asset run do
	// not share an identical timestamp index.
	ErrMismatchedSeries = errors.New("price series timestamps are not aligned")

	// ErrUnknownTicker is returned when the market data source has no prices
	// for a requested symbol.
	ErrUnknownTicker = errors.New("no price data found for ticker")

	// ErrSeriesNotCached is returned by the price cache on a key miss.
	ErrSeriesNotCached = errors.New("price series not cached")
)
