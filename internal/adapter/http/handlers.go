package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geekendzone/dcasim-backend/internal/domain"
	"github.com/geekendzone/dcasim-backend/internal/usecase/comparison"
	"github.com/geekendzone/dcasim-backend/internal/usecase/export"
)

// Comparer runs one full comparison.
type Comparer interface {
	Compare(ctx context.Context, input comparison.Input) (*domain.Comparison, error)
}

// ComparisonHandler handles comparison requests
type ComparisonHandler struct {
	service Comparer
	store   *resultStore
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(service Comparer, resultTTL time.Duration) *ComparisonHandler {
	return &ComparisonHandler{service: service, store: newResultStore(resultTTL)}
}

// Create handles POST /api/v1/comparisons
func (h *ComparisonHandler) Create(c *gin.Context) {
	var req ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATE",
			fmt.Sprintf("start_date %q is not a YYYY-MM-DD date", req.StartDate))
		return
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_DATE",
			fmt.Sprintf("end_date %q is not a YYYY-MM-DD date", req.EndDate))
		return
	}
	if !start.Before(end) {
		writeError(c, http.StatusBadRequest, "INVALID_DATE",
			fmt.Sprintf("start_date %s must be before end_date %s", req.StartDate, req.EndDate))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_AMOUNT",
			fmt.Sprintf("amount %q is not a number", req.Amount))
		return
	}

	initial := decimal.Zero
	if req.InitialAmount != "" {
		initial, err = decimal.NewFromString(req.InitialAmount)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_AMOUNT",
				fmt.Sprintf("initial_amount %q is not a number", req.InitialAmount))
			return
		}
	}

	cmp, err := h.service.Compare(c.Request.Context(), comparison.Input{
		Tickers:       req.Tickers,
		Benchmark:     req.Benchmark,
		Start:         start,
		End:           end,
		Amount:        amount,
		Frequency:     domain.Frequency(req.Frequency),
		InitialAmount: initial,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.store.put(cmp)
	c.JSON(http.StatusOK, toComparisonResponse(cmp, req.IncludeSeries))
}

// Get handles GET /api/v1/comparisons/:id
func (h *ComparisonHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ID", "comparison id must be a UUID")
		return
	}

	cmp, ok := h.store.get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "comparison not found or expired")
		return
	}

	c.JSON(http.StatusOK, toComparisonResponse(cmp, true))
}

// ExportCSV handles GET /api/v1/comparisons/:id/export.csv
func (h *ComparisonHandler) ExportCSV(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ID", "comparison id must be a UUID")
		return
	}

	cmp, ok := h.store.get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "comparison not found or expired")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, cmp); err != nil {
		writeError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(cmp)))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// writeDomainError maps simulation and market data errors onto HTTP statuses.
// Rejected inputs come back as 422, unknown tickers as 404 and provider
// failures as 502.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidFrequency):
		writeError(c, http.StatusUnprocessableEntity, "INVALID_FREQUENCY", err.Error())
	case errors.Is(err, domain.ErrInvalidContribution):
		writeError(c, http.StatusUnprocessableEntity, "INVALID_CONTRIBUTION", err.Error())
	case errors.Is(err, domain.ErrInsufficientData):
		writeError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error())
	case errors.Is(err, domain.ErrMismatchedSeries):
		writeError(c, http.StatusUnprocessableEntity, "MISMATCHED_SERIES", err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(c, http.StatusUnprocessableEntity, "INVALID_PRICE", err.Error())
	case errors.Is(err, domain.ErrUnknownTicker):
		writeError(c, http.StatusNotFound, "UNKNOWN_TICKER", err.Error())
	default:
		writeError(c, http.StatusBadGateway, "MARKET_DATA_ERROR", err.Error())
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
