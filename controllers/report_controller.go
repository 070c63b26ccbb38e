package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-core/middleware"
	"hotel-core/services"
	"hotel-core/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// GET /api/reports/summary
func (rc *ReportController) GetSummary(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	summary, err := rc.Reports.Summary(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// GET /api/reports/trends?days=7
func (rc *ReportController) GetTrends(c *gin.Context) {
	tenantID := middleware.TenantFrom(c)

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.JSONValidationError(c, http.StatusBadRequest, "Validation failed",
				map[string]string{"days": "must be a positive integer"})
			return
		}
		days = parsed
	}

	points := make([]services.TrendPoint, 0, days)
	for point, err := range rc.Reports.Trends(tenantID, days) {
		if err != nil {
			respondServiceError(c, err)
			return
		}
		points = append(points, point)
	}
	utils.JSONSuccess(c, http.StatusOK, points)
}
