package api

import (
	"github.com/Conceptual-Machines/prompt-forge-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/prompt-forge-api/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/config"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/observability"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/gin-gonic/gin"
)

// Dependencies are the optional telemetry sinks. Nil fields are disabled.
type Dependencies struct {
	CloudWatch *metrics.Client
	Langfuse   *observability.LangfuseClient
}

func SetupRouter(cfg *config.Config, engine *synthesis.Engine, version string, deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	// CORS for the web client
	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(engine)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, engine.ModelIDs(), string(cfg.VocabularyPolicy))
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Model catalog
	modelsHandler := handlers.NewModelsHandler(engine)
	router.GET("/models", modelsHandler.ListModels)
	router.GET("/models/:model_type/settings", modelsHandler.GetSettings)

	// Prompt generation
	langfuse := deps.Langfuse
	if langfuse == nil {
		langfuse = observability.Disabled()
	}
	generationHandler := handlers.NewGenerationHandler(engine, deps.CloudWatch, langfuse)
	router.POST("/generate", generationHandler.Generate)
	router.POST("/generate/batch", generationHandler.GenerateBatch)

	return router
}
