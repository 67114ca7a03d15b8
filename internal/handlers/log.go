package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

// LogHandler handles HTTP requests for log entries and time logs
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new log handler
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// CreateLog handles POST /api/v1/logs
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req models.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.logService.CreateLog(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Log", "")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetLogs handles GET /api/v1/logs. An optional metric_id query parameter
// restricts results to a single metric.
func (h *LogHandler) GetLogs(c *gin.Context) {
	var (
		entries []models.LogEntry
		err     error
	)
	if metricID := c.Query("metric_id"); metricID != "" {
		entries, err = h.logService.GetMetricLogs(c.Request.Context(), metricID)
	} else {
		entries, err = h.logService.GetLogs(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "Log", "")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// DeleteLog handles DELETE /api/v1/logs/:id
func (h *LogHandler) DeleteLog(c *gin.Context) {
	id := c.Param("id")

	if err := h.logService.DeleteLog(c.Request.Context(), id); err != nil {
		respondError(c, err, "Log", id)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateTimeLog handles POST /api/v1/timelogs
func (h *LogHandler) CreateTimeLog(c *gin.Context) {
	var req models.CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	timeLog, err := h.logService.CreateTimeLog(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "TimeLog", "")
		return
	}

	c.JSON(http.StatusCreated, timeLog)
}

// GetTimeLogs handles GET /api/v1/timelogs
func (h *LogHandler) GetTimeLogs(c *gin.Context) {
	timeLogs, err := h.logService.GetTimeLogs(c.Request.Context())
	if err != nil {
		respondError(c, err, "TimeLog", "")
		return
	}

	c.JSON(http.StatusOK, timeLogs)
}

// DeleteTimeLog handles DELETE /api/v1/timelogs/:id
func (h *LogHandler) DeleteTimeLog(c *gin.Context) {
	id := c.Param("id")

	if err := h.logService.DeleteTimeLog(c.Request.Context(), id); err != nil {
		respondError(c, err, "TimeLog", id)
		return
	}

	c.Status(http.StatusNoContent)
}
