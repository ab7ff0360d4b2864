package api

import (
	"time"

	"batch-maker/internal/api/handlers/health"
	recipeHandler "batch-maker/internal/api/handlers/recipe"
	workflowHandler "batch-maker/internal/api/handlers/workflow"
	"batch-maker/internal/api/middleware"
	recipeService "batch-maker/internal/core/recipe"
	"batch-maker/internal/core/workflow"
	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由需要的服務
type Services struct {
	Importer  *recipeService.ImportService
	Converter *workflow.Converter
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	cacheBackend := ""
	if cfg.Cache.Enabled {
		cacheBackend = cfg.Cache.Backend
	}
	healthHandler := health.NewHandler(cfg.App.Version, cacheBackend, svc.Importer)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())

	recipes := recipeHandler.NewHandler(svc.Importer, svc.Converter, cfg.Queue.MaxSize, cfg.App.Debug)
	recipeGroup := api.Group("/recipes")
	{
		recipeGroup.POST("/parse/text", recipes.HandleParseText)
		recipeGroup.POST("/parse/url", recipes.HandleParseURL)
		recipeGroup.POST("/import", recipes.HandleImport)
		recipeGroup.POST("/import/batch", recipes.HandleImportBatch)
	}

	workflows := workflowHandler.NewHandler(svc.Converter, cfg.App.Debug)
	api.POST("/workflows/convert", workflows.HandleConvert)

	common.LogInfo("Router setup completed",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("cache", cacheBackend),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
	)

	return router
}
