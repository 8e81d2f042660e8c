package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/horus-ai/app/db"
	appLogger "github.com/FACorreiaa/horus-ai/app/logger"
	"github.com/FACorreiaa/horus-ai/config"
	"github.com/FACorreiaa/horus-ai/internal/api/attractions"
	generativeAI "github.com/FACorreiaa/horus-ai/internal/api/generative_ai"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
)

// Fills in missing attraction embeddings in Postgres.
func main() {
	batchSize := flag.Int("batch", 20, "attractions embedded per batch")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := appLogger.New(os.Stdout, cfg.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready")
		os.Exit(1)
	}

	aiClient, err := generativeAI.NewAIClient(ctx, generativeAI.ClientConfig{
		APIKey:         cfg.GenAI.APIKey,
		EmbeddingModel: cfg.GenAI.EmbeddingModel,
	})
	if err != nil {
		logger.Error("Failed to create Gemini client", slog.Any("error", err))
		os.Exit(1)
	}
	embedder := generativeAI.NewEmbeddingService(aiClient, generativeAI.EmbeddingOptions{
		Timeout: cfg.GenAI.Timeout,
		Breaker: generativeAI.BreakerSettings{
			Timeout:             cfg.Breaker.Timeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
	}, logger, nil)

	svc := attractions.NewService(
		attractions.NewRepository(pool, logger, nil),
		embedder,
		recommender.NewStore(),
		attractions.Options{
			Source:            attractions.SourcePostgres,
			RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
			Burst:             cfg.Catalog.Burst,
		},
		logger, nil)

	logger.Info("Starting embedding backfill", slog.Int("batch", *batchSize))
	res, err := svc.BackfillEmbeddings(ctx, *batchSize)
	if err != nil {
		logger.Error("Embedding backfill aborted", slog.Any("error", err),
			slog.Int("updated", res.Updated), slog.Int("failed", res.Failed))
		os.Exit(1)
	}
	if res.Failed > 0 {
		logger.Warn("Some attractions could not be embedded", slog.Int("failed", res.Failed))
	}
	logger.Info("Embedding backfill complete", slog.Int("updated", res.Updated))
}
