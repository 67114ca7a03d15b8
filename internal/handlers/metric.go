package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

// MetricHandler handles HTTP requests for metric configurations
type MetricHandler struct {
	metricService service.MetricService
}

// NewMetricHandler creates a new metric handler
func NewMetricHandler(metricService service.MetricService) *MetricHandler {
	return &MetricHandler{
		metricService: metricService,
	}
}

// CreateMetric handles POST /api/v1/metrics
func (h *MetricHandler) CreateMetric(c *gin.Context) {
	var req models.CreateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	metric, err := h.metricService.CreateMetric(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Metric", "")
		return
	}

	c.JSON(http.StatusCreated, metric)
}

// GetMetrics handles GET /api/v1/metrics
func (h *MetricHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.metricService.GetMetrics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Metric", "")
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetMetric handles GET /api/v1/metrics/:id
func (h *MetricHandler) GetMetric(c *gin.Context) {
	id := c.Param("id")

	metric, err := h.metricService.GetMetric(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Metric", id)
		return
	}

	c.JSON(http.StatusOK, metric)
}

// UpdateMetric handles PUT /api/v1/metrics/:id
func (h *MetricHandler) UpdateMetric(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	metric, err := h.metricService.UpdateMetric(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Metric", id)
		return
	}

	c.JSON(http.StatusOK, metric)
}

// DeleteMetric handles DELETE /api/v1/metrics/:id
func (h *MetricHandler) DeleteMetric(c *gin.Context) {
	id := c.Param("id")

	if err := h.metricService.DeleteMetric(c.Request.Context(), id); err != nil {
		respondError(c, err, "Metric", id)
		return
	}

	c.Status(http.StatusNoContent)
}
