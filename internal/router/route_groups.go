package router

import (
	"fieldbook_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up the owner report routes.
func SetupReportRoutes(ownerGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := ownerGroup.Group("/reports")
	{
		reportRoutes.GET("/revenue", reportHandler.GetRevenueReport)
		reportRoutes.GET("/bookings", reportHandler.GetBookingReport)
		reportRoutes.GET("/users", reportHandler.GetUserReport)
		reportRoutes.GET("/performance", reportHandler.GetPerformanceReport)
		reportRoutes.POST("/export", reportHandler.ExportReport)
	}
}

// SetupDashboardRoutes sets up the owner dashboard routes.
func SetupDashboardRoutes(ownerGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := ownerGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
		dashboardRoutes.GET("/revenue", dashboardHandler.GetRevenue)
		dashboardRoutes.GET("/bookings", dashboardHandler.GetBookings)
		dashboardRoutes.GET("/users", dashboardHandler.GetUsers)
		dashboardRoutes.GET("/top-fields", dashboardHandler.GetTopFields)
	}
}
