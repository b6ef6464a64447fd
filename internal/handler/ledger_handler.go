package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/period"
	"github.com/cashbookhq/cashbook-backend/internal/service"
)

// LedgerHandler handles ledger view HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// BalanceResponse represents the all-time balance in API responses
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// GetView handles GET /api/v1/ledger.
// Query parameters: mode (day|week|month|year|custom, default month),
// anchor (YYYY-MM-DD, default today), and for custom mode start and end
// (YYYY-MM-DD). Custom mode without start/end defaults to the trailing
// 30 days.
func (h *LedgerHandler) GetView(c echo.Context) error {
	now := time.Now()

	modeStr := c.QueryParam("mode")
	if modeStr == "" {
		modeStr = string(domain.ViewModeMonth)
	}
	mode := domain.ViewMode(modeStr)

	anchor := now
	if anchorStr := c.QueryParam("anchor"); anchorStr != "" {
		parsed, err := time.Parse("2006-01-02", anchorStr)
		if err != nil {
			return NewValidationError(c, "Invalid anchor format (use YYYY-MM-DD)", nil)
		}
		anchor = parsed
	}

	var custom *period.CustomRange
	if mode == domain.ViewModeCustom {
		startStr := c.QueryParam("start")
		endStr := c.QueryParam("end")
		if startStr == "" && endStr == "" {
			// Trailing 30 days by default.
			custom = &period.CustomRange{Start: now.AddDate(0, 0, -30), End: now}
		} else {
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return NewValidationError(c, "Invalid start format (use YYYY-MM-DD)", nil)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return NewValidationError(c, "Invalid end format (use YYYY-MM-DD)", nil)
			}
			custom = &period.CustomRange{Start: start, End: end}
		}
	}

	view, err := h.ledgerService.View(mode, anchor, custom, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidViewMode) {
			return NewValidationError(c, "Invalid mode (must be one of: day, week, month, year, custom)", nil)
		}
		if errors.Is(err, domain.ErrInvalidRange) {
			return NewValidationError(c, "Invalid range (start must not be after end)", nil)
		}
		log.Error().Err(err).Str("mode", modeStr).Msg("Failed to build ledger view")
		return NewInternalError(c, "Failed to build ledger view")
	}

	return c.JSON(http.StatusOK, view)
}

// GetBalance handles GET /api/v1/ledger/balance
func (h *LedgerHandler) GetBalance(c echo.Context) error {
	balance, err := h.ledgerService.Balance()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute balance")
		return NewInternalError(c, "Failed to compute balance")
	}

	return c.JSON(http.StatusOK, BalanceResponse{Balance: balance.StringFixed(2)})
}
