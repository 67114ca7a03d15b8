package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/apierror"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

// DashboardHandler handles HTTP requests for widget data and system health
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetWidgets handles GET /api/v1/dashboard. The optional segment query
// parameter defaults to Weekly.
func (h *DashboardHandler) GetWidgets(c *gin.Context) {
	segment, err := models.ParseSegment(c.Query("segment"))
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Valid segments are Daily, Weekly, and Monthly"))
		return
	}

	widgets, err := h.dashboardService.GetWidgets(c.Request.Context(), segment, time.Now())
	if err != nil {
		respondError(c, err, "Dashboard", "")
		return
	}

	c.JSON(http.StatusOK, widgets)
}

// GetSystemHealth handles GET /api/v1/dashboard/health
func (h *DashboardHandler) GetSystemHealth(c *gin.Context) {
	segment, err := models.ParseSegment(c.Query("segment"))
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Valid segments are Daily, Weekly, and Monthly"))
		return
	}

	health, err := h.dashboardService.GetSystemHealth(c.Request.Context(), segment, time.Now())
	if err != nil {
		respondError(c, err, "Dashboard", "")
		return
	}

	c.JSON(http.StatusOK, health)
}
