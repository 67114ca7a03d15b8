package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitlabs/orbit-backend/internal/apierror"
	"github.com/orbitlabs/orbit-backend/internal/models"
	"github.com/orbitlabs/orbit-backend/internal/service"
)

// ReportHandler handles HTTP requests for report generation and archives
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GenerateReportRequest selects the report window and sections. A nil
// sections field includes every section.
type GenerateReportRequest struct {
	Segment  string                 `json:"segment"`
	Sections *models.ReportSections `json:"sections"`
}

// GenerateReport handles POST /api/v1/reports
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	segment, err := models.ParseSegment(req.Segment)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Valid segments are Daily, Weekly, and Monthly"))
		return
	}

	sections := models.AllReportSections()
	if req.Sections != nil {
		sections = *req.Sections
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), segment, sections, time.Now())
	if err != nil {
		respondError(c, err, "Report", "")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetReports handles GET /api/v1/reports
func (h *ReportHandler) GetReports(c *gin.Context) {
	reports, err := h.reportService.GetReports(c.Request.Context())
	if err != nil {
		respondError(c, err, "Report", "")
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Report", id)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DeleteReport handles DELETE /api/v1/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		respondError(c, err, "Report", id)
		return
	}

	c.Status(http.StatusNoContent)
}
