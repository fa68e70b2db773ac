package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/adapters"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/api"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/config"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/metrics"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/observability"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/synthesis"
	"github.com/Conceptual-Machines/prompt-forge-api/internal/vocabulary"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	langfuseFlushTimeout  = 5 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "prompt-forge-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Vocabulary and model catalog are loaded once and never change
	tables, err := vocabulary.Default()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load vocabulary: ", err)
	}
	registry, err := adapters.DefaultRegistry()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load model catalog: ", err)
	}
	engine, err := synthesis.NewEngine(tables, registry, cfg.SelectorOptions())
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to create synthesis engine: ", err)
	}
	log.Printf("🎨 Synthesis engine ready (models: %v, vocabulary policy: %s)", engine.ModelIDs(), cfg.VocabularyPolicy)

	ctx := context.Background()

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("Failed to create CloudWatch client: %v", err)
	}

	langfuse := observability.InitializeLangfuse(ctx, cfg)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), langfuseFlushTimeout)
		defer cancel()
		langfuse.Flush(flushCtx)
	}()

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, engine, GetVersion(), api.Dependencies{
		CloudWatch: cloudwatch,
		Langfuse:   langfuse,
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
