package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/http/handler"
	"github.com/ressKim-io/eccn-classifier/internal/adapter/http/middleware"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/eccn-classifier/internal/usecase"
	"github.com/ressKim-io/eccn-classifier/web"
)

// Deps holds everything the router wires into handlers
type Deps struct {
	DB               *gorm.DB
	Redis            *redis.Client
	Catalog          handler.CatalogSizer
	ClassificationUC usecase.ClassificationUsecase
	CatalogUC        usecase.CatalogUsecase
	CatalogPath      string
	Providers        map[string]string
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	Logger           *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Catalog)
	for component, provider := range deps.Providers {
		healthHandler.SetProvider(component, provider)
	}
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Page and assets
	webHandler := handler.NewWebHandler(web.Index())
	router.GET("/", webHandler.Index)
	router.StaticFS("/static", http.FS(web.Static()))

	classificationHandler := handler.NewClassificationHandler(deps.ClassificationUC, deps.Logger)
	router.POST("/classify", classificationHandler.Classify)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		classifications := v1.Group("/classifications")
		{
			classifications.GET("", classificationHandler.ListClassifications)
			classifications.GET("/:id", classificationHandler.GetClassification)
		}

		if deps.CatalogUC != nil {
			catalogHandler := handler.NewCatalogHandler(deps.CatalogUC, deps.CatalogPath)
			catalog := v1.Group("/catalog")
			{
				catalog.POST("/ingest", catalogHandler.Ingest)
				catalog.GET("/stats", catalogHandler.Stats)
			}
		}
	}

	return router
}
