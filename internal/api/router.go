package api

import (
	"github.com/gin-gonic/gin"
	"github.com/materiallab/materialmap/internal/api/handler"
	"github.com/materiallab/materialmap/internal/api/middleware"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/service"
)

// RouterConfig holds the router's own settings.
type RouterConfig struct {
	Mode       string
	AdminToken string
	CORS       middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	materialService *service.MaterialService,
	imageService *service.ImageService,
	diagnosticsService *service.DiagnosticsService,
	log *logger.Logger,
	cfg RouterConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	materialHandler := handler.NewMaterialHandler(materialService)
	imageHandler := handler.NewImageHandler(materialService, imageService, log)
	diagnosticsHandler := handler.NewDiagnosticsHandler(diagnosticsService)

	admin := middleware.AdminAuth(cfg.AdminToken)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Materials
		v1.GET("/materials", materialHandler.ListMaterials)
		v1.POST("/materials", admin, materialHandler.CreateMaterial)
		v1.GET("/materials/:id", materialHandler.GetMaterial)
		v1.PUT("/materials/:id", admin, materialHandler.UpdateMaterial)
		v1.DELETE("/materials/:id", admin, materialHandler.DeleteMaterial)

		// Images
		v1.GET("/materials/:id/image/:kind", imageHandler.GetImage)
		v1.GET("/materials/:id/image/:kind/ref", imageHandler.GetImageRef)
		v1.POST("/materials/:id/heal", admin, imageHandler.HealImage)

		// Categories
		v1.GET("/categories", materialHandler.GetCategories)

		// Diagnostics
		v1.GET("/diagnostics/images", admin, diagnosticsHandler.SweepImages)
	}

	return r
}
