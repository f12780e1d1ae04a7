package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/adapter/client"
	"github.com/ressKim-io/eccn-classifier/internal/adapter/http/router"
	"github.com/ressKim-io/eccn-classifier/internal/adapter/repository/postgres"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/cache"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/config"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/database"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/logger"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/metrics"
	"github.com/ressKim-io/eccn-classifier/internal/rag"
	"github.com/ressKim-io/eccn-classifier/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	log.Info("Connected to database")

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	var resultCache usecase.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			defer func() { _ = redisClient.Close() }()
			resultCache = cache.NewResultCache(redisClient, cfg.Redis.TTL)
		}
	}

	// Model providers
	embedder, err := client.NewEmbedder(ctx, &cfg.Embedding)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	if embedder == nil {
		log.Warn("Embedding provider not configured, retrieval is unavailable")
	}
	llm, err := client.NewLLM(ctx, &cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}
	if llm == nil {
		log.Warn("LLM not configured, classification returns the top vector match")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	definitionRepo := postgres.NewDefinitionRepository(db)
	classificationRepo := postgres.NewClassificationRepository(db)
	index := rag.NewIndex(definitionRepo, embedder, log)

	// Initialize usecases
	catalogUC := usecase.NewCatalogUsecase(usecase.CatalogDeps{
		Repo:        definitionRepo,
		Embedder:    embedder,
		Index:       index,
		Metrics:     m,
		Logger:      log,
		BatchSize:   cfg.Embedding.BatchSize,
		Concurrency: cfg.Embedding.Concurrency,
	})
	classificationUC := usecase.NewClassificationUsecase(usecase.ClassificationDeps{
		Retriever: index,
		LLM:       llm,
		Repo:      classificationRepo,
		Cache:     resultCache,
		Metrics:   m,
		Logger:    log,
		TopK:      cfg.Classifier.TopK,
	})

	// Populate an empty catalog; the API serves either way
	if cfg.Catalog.IngestOnStartup {
		if out, err := catalogUC.IngestIfEmpty(ctx, cfg.Catalog.Path); err != nil {
			log.Error("Catalog ingestion failed", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		} else if out != nil {
			log.Info("Catalog ingested",
				zap.Int("rows", out.Rows),
				zap.Int("indexed", out.Indexed),
				zap.Int("failed_batches", out.FailedBatches),
			)
		}
	}
	if err := index.Load(ctx); err != nil {
		log.Error("Failed to load catalog index", zap.Error(err))
	}
	m.CatalogSize.Set(float64(index.Size()))

	providers := map[string]string{
		"llm":       providerStatus(cfg.LLM.Provider, cfg.LLM.Model, llm != nil),
		"embedding": providerStatus(cfg.Embedding.Provider, cfg.Embedding.Model, embedder != nil),
	}

	// Setup router
	r := router.Setup(router.Deps{
		DB:               db,
		Redis:            redisClient,
		Catalog:          index,
		ClassificationUC: classificationUC,
		CatalogUC:        catalogUC,
		CatalogPath:      cfg.Catalog.Path,
		Providers:        providers,
		Metrics:          m,
		Gatherer:         reg,
		Logger:           log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

func providerStatus(provider, model string, enabled bool) string {
	if !enabled {
		return "disabled"
	}
	return provider + "/" + model
}
