package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/middleware"
	"github.com/obveznik/obveznik_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check routes
	healthy := func(c *gin.Context) {
		c.String(200, "OK")
	}
	r.GET("/", healthy)
	r.GET("/health", healthy)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerInvoiceRoutes(v1, services.Invoice)
	registerExchangeRateRoutes(v1, services.ExchangeRate)
	registerLimitRoutes(v1, services.Limit)
	registerRevenueBookRoutes(v1, services.RevenueBook)
}
