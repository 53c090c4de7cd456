package handlers

import (
	"net/http"
	"strconv"

	"fieldbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the owner dashboard endpoints.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetStats handles GET /owner/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), ownerIDFromContext(c))
	if err != nil {
		respondReportError(c, "GetStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRevenue handles GET /owner/dashboard/revenue.
func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	revenue, err := h.dashboardService.RevenueByPeriod(c.Request.Context(), ownerIDFromContext(c), period)
	if err != nil {
		respondReportError(c, "GetRevenue", err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

// GetBookings handles GET /owner/dashboard/bookings.
func (h *DashboardHandler) GetBookings(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	bookings, err := h.dashboardService.BookingsByPeriod(c.Request.Context(), ownerIDFromContext(c), period)
	if err != nil {
		respondReportError(c, "GetBookings", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetUsers handles GET /owner/dashboard/users.
func (h *DashboardHandler) GetUsers(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	users, err := h.dashboardService.UsersByPeriod(c.Request.Context(), ownerIDFromContext(c), period)
	if err != nil {
		respondReportError(c, "GetUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetTopFields handles GET /owner/dashboard/top-fields.
func (h *DashboardHandler) GetTopFields(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	sortBy := c.DefaultQuery("sort_by", "revenue")
	fields, err := h.dashboardService.TopFields(c.Request.Context(), ownerIDFromContext(c), limit, sortBy)
	if err != nil {
		respondReportError(c, "GetTopFields", err)
		return
	}
	c.JSON(http.StatusOK, fields)
}
