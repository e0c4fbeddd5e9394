package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/cmd/docs"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/middleware"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/platform/config"
)

// ErrorResponse is the generic error payload returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, services.Account)
	registerCounterpartyRoutes(v1, services.Counterparty)
	registerTransactionRoutes(v1, services.Transaction)
	registerProductRoutes(v1, services.Product)
	registerPurchaserRoutes(v1, services.Purchaser)
	registerAssociationRoutes(v1, services.Association)
	registerReportingRoutes(v1, services.Reporting)
	registerUserRoutes(v1, services.User)
}

// registerAssociationRoutes mounts one route family per junction kind.
func registerAssociationRoutes(rg *gin.RouterGroup, associationService portssvc.AssociationSvcFacade) {
	registerJunctionRoutes(rg, "/product-vendors", domain.ProductVendor, associationService)
	registerJunctionRoutes(rg, "/product-purchasers", domain.ProductPurchaser, associationService)
	registerJunctionRoutes(rg, "/purchaser-vendors", domain.PurchaserVendor, associationService)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
