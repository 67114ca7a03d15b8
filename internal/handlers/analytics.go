package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/service"
)

// AnalyticsHandler handles HTTP requests for cross-metric analytics
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetCorrelations handles GET /api/v1/analytics/correlations. The optional lag
// query parameter shifts the second series back by that many days.
func (h *AnalyticsHandler) GetCorrelations(c *gin.Context) {
	lag := intQuery(c, "lag", 0)

	correlations, err := h.analyticsService.GetCorrelations(c.Request.Context(), lag)
	if err != nil {
		respondError(c, err, "Analytics", "")
		return
	}

	c.JSON(http.StatusOK, correlations)
}

// GetMomentum handles GET /api/v1/analytics/momentum
func (h *AnalyticsHandler) GetMomentum(c *gin.Context) {
	momentum, err := h.analyticsService.GetMomentum(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err, "Analytics", "")
		return
	}

	c.JSON(http.StatusOK, momentum)
}

// GetAverages handles GET /api/v1/analytics/averages
func (h *AnalyticsHandler) GetAverages(c *gin.Context) {
	window := intQuery(c, "window", 7)

	averages, err := h.analyticsService.GetAverages(c.Request.Context(), window, time.Now())
	if err != nil {
		respondError(c, err, "Analytics", "")
		return
	}

	c.JSON(http.StatusOK, averages)
}

// GetComparisons handles GET /api/v1/analytics/comparisons
func (h *AnalyticsHandler) GetComparisons(c *gin.Context) {
	window := intQuery(c, "window", 7)

	comparisons, err := h.analyticsService.GetComparisons(c.Request.Context(), window, time.Now())
	if err != nil {
		respondError(c, err, "Analytics", "")
		return
	}

	c.JSON(http.StatusOK, comparisons)
}

// GetInsights handles GET /api/v1/insights
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	insights, err := h.analyticsService.GetInsights(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err, "Analytics", "")
		return
	}

	c.JSON(http.StatusOK, insights)
}
