package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aiowedding/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// @Summary      Platform summary
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  models.PlatformSummary
// @Router       /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	sum, err := h.reportService.PlatformSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load summary"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Export platform summary as PDF
// @Tags         Reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /reports/summary/pdf [get]
func (h *ReportHandler) ExportSummaryPDF(c *gin.Context) {
	path, err := h.reportService.ExportPlatformReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.FileAttachment(path, "platform_report.pdf")
}
