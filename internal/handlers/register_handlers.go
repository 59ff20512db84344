package handlers

import (
	"github.com/SscSPs/ohada_ledger/cmd/docs"
	portssvc "github.com/SscSPs/ohada_ledger/internal/core/ports/services"
	"github.com/SscSPs/ohada_ledger/internal/middleware"
	"github.com/SscSPs/ohada_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil rateLimiter disables rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	registerHealthRoutes(r)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}
	RegisterCompanyRoutes(v1, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// RegisterCompanyRoutes registers every company-scoped route on an authenticated group.
// It panics when the custom binding tags cannot be registered.
func RegisterCompanyRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	if err := registerValidators(); err != nil {
		panic(err)
	}

	company := v1.Group("/companies/:company_id", middleware.RequireCompanyAccess())
	registerJournalEntryRoutes(company, services.Journal)
	registerReportingRoutes(company, services.Journal)
	registerFiscalYearRoutes(company, services.FiscalYear)
	registerStatementRoutes(company, services.Statement)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
