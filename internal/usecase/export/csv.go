// Package export renders finished comparisons for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/geekendzone/dcasim-backend/internal/domain"
)

// Write renders the comparison as CSV with one row per simulated month.
func Write(w io.Writer, cmp *domain.Comparison) error {
	if len(cmp.Portfolio.Values) != len(cmp.Benchmark.Values) {
		return fmt.Errorf("portfolio and benchmark series differ in length: %d vs %d",
			len(cmp.Portfolio.Values), len(cmp.Benchmark.Values))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "portfolio_value", "benchmark_value"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, point := range cmp.Portfolio.Values {
		record := []string{
			point.Date.Format(time.DateOnly),
			point.Value.String(),
			cmp.Benchmark.Values[i].Value.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the download name for a comparison export.
func Filename(cmp *domain.Comparison) string {
	return fmt.Sprintf("comparison-%s.csv", cmp.ID)
}
