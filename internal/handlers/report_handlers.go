package handlers

import (
	"errors"
	"net/http"
	"time"

	"fieldbook_backend/internal/services"
	"fieldbook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the owner report endpoints.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// ownerIDFromContext resolves the owner whose data is requested: the
// authenticated user from the JWT claims, or an explicit owner_id query
// param (admin tooling). Returns 0 when neither is usable.
func ownerIDFromContext(c *gin.Context) int64 {
	if idStr := c.Query("owner_id"); idStr != "" {
		id, err := utils.StrToInt64(idStr)
		if err != nil {
			return 0
		}
		return id
	}
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// parseReportRequest reads the shared report query params. Period defaults
// to monthly; dates use the 2006-01-02 layout.
func parseReportRequest(c *gin.Context) (services.ReportRequest, error) {
	req := services.ReportRequest{
		Period:  c.DefaultQuery("period", "monthly"),
		GroupBy: c.DefaultQuery("group_by", "day"),
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return req, errors.New("start_date must use YYYY-MM-DD format")
		}
		req.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return req, errors.New("end_date must use YYYY-MM-DD format")
		}
		req.EndDate = &t
	}
	return req, nil
}

// respondReportError maps the reporting error taxonomy onto HTTP responses.
// Validation errors carry their detail; data and computation failures are
// logged in full and answered with a generic message.
func respondReportError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOwner):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidOwnerID, "A valid owner id is required.", err.Error()))
	case errors.Is(err, services.ErrInvalidPeriod):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidPeriod, "Unknown report period.", err.Error()))
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInvalidDateRange, "Invalid date range.", err.Error()))
	case errors.Is(err, services.ErrUnsupportedExport):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeUnsupportedExport, "Unsupported export request.", err.Error()))
	default:
		utils.LogError(err, operation)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate report.", ""))
	}
}

// GetRevenueReport handles GET /owner/reports/revenue.
func (h *ReportHandler) GetRevenueReport(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	report, err := h.reportService.RevenueReport(c.Request.Context(), ownerIDFromContext(c), req)
	if err != nil {
		respondReportError(c, "GetRevenueReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetBookingReport handles GET /owner/reports/bookings.
func (h *ReportHandler) GetBookingReport(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	report, err := h.reportService.BookingReport(c.Request.Context(), ownerIDFromContext(c), req)
	if err != nil {
		respondReportError(c, "GetBookingReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetUserReport handles GET /owner/reports/users.
func (h *ReportHandler) GetUserReport(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	report, err := h.reportService.UserReport(c.Request.Context(), ownerIDFromContext(c), req)
	if err != nil {
		respondReportError(c, "GetUserReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPerformanceReport handles GET /owner/reports/performance.
func (h *ReportHandler) GetPerformanceReport(c *gin.Context) {
	req, err := parseReportRequest(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	report, err := h.reportService.PerformanceReport(c.Request.Context(), ownerIDFromContext(c), req)
	if err != nil {
		respondReportError(c, "GetPerformanceReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type exportReportBody struct {
	ReportType string `json:"report_type" binding:"required"`
	Format     string `json:"format"`
	Period     string `json:"period"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	GroupBy    string `json:"group_by"`
}

// ExportReport handles POST /owner/reports/export. The report is computed
// fresh and streamed back as a downloadable file.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	var body exportReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	req := services.ExportRequest{
		ReportType: body.ReportType,
		Format:     body.Format,
		ReportRequest: services.ReportRequest{
			Period:  body.Period,
			GroupBy: body.GroupBy,
		},
	}
	if req.Period == "" {
		req.Period = "monthly"
	}
	if body.StartDate != "" {
		t, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			utils.RespondValidationFailed(c, "start_date must use YYYY-MM-DD format")
			return
		}
		req.StartDate = &t
	}
	if body.EndDate != "" {
		t, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			utils.RespondValidationFailed(c, "end_date must use YYYY-MM-DD format")
			return
		}
		req.EndDate = &t
	}

	export, err := h.reportService.ExportReport(c.Request.Context(), ownerIDFromContext(c), req)
	if err != nil {
		respondReportError(c, "ExportReport", err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.FileName)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
