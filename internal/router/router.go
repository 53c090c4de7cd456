package router

import (
	"database/sql"
	"net/http"

	"fieldbook_backend/internal/handlers"
	"fieldbook_backend/internal/middleware"
	"fieldbook_backend/internal/repositories"
	"fieldbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	scoring := services.DefaultScoringConfig()
	reportService := services.NewReportService(reportRepo, scoring)
	dashboardService := services.NewDashboardService(reportRepo, scoring)

	// Initialize Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := engine.Group("/api/v1")

	// Owner analytics API: JWT-authenticated, owner or admin role.
	owner := apiV1.Group("/owner")
	owner.Use(middleware.AuthMiddleware())
	owner.Use(middleware.RoleAuthMiddleware("Owner", "Admin"))
	{
		SetupReportRoutes(owner, reportHandler)
		SetupDashboardRoutes(owner, dashboardHandler)
	}
}
