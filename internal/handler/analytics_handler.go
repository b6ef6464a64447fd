package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cashbookhq/cashbook-backend/internal/domain"
	"github.com/cashbookhq/cashbook-backend/internal/service"
)

// AnalyticsHandler handles analytics-related HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetReport handles GET /api/v1/analytics.
// The filter query parameter selects the cadence and defaults to "month".
func (h *AnalyticsHandler) GetReport(c echo.Context) error {
	filterStr := c.QueryParam("filter")
	if filterStr == "" {
		filterStr = string(domain.RangeFilterMonth)
	}

	filter := domain.RangeFilter(filterStr)
	report, err := h.analyticsService.Report(filter, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRangeFilter) {
			return NewValidationError(c, "Invalid filter (must be one of: week, month, quarter, year, all)", nil)
		}
		log.Error().Err(err).Str("filter", filterStr).Msg("Failed to build analytics report")
		return NewInternalError(c, "Failed to build analytics report")
	}

	return c.JSON(http.StatusOK, report)
}
