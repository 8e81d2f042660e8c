package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/horus-ai/app/db"
	"github.com/FACorreiaa/horus-ai/app/observability/metrics"
	"github.com/FACorreiaa/horus-ai/config"
	"github.com/FACorreiaa/horus-ai/internal/api/attractions"
	"github.com/FACorreiaa/horus-ai/internal/api/auth"
	generativeAI "github.com/FACorreiaa/horus-ai/internal/api/generative_ai"
	"github.com/FACorreiaa/horus-ai/internal/api/interaction"
	"github.com/FACorreiaa/horus-ai/internal/api/recommendation"
	"github.com/FACorreiaa/horus-ai/internal/recommender"
	"github.com/FACorreiaa/horus-ai/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Pool is nil when the catalog comes from the embedded seed.
	Pool *pgxpool.Pool

	AttractionsRepo       attractions.Repository
	Embedder              *generativeAI.EmbeddingService
	Store                 *recommender.Store
	Engine                *recommender.Engine
	AttractionsService    *attractions.ServiceImpl
	RecommendationService *recommendation.ServiceImpl
	InteractionService    *interaction.ServiceImpl
	AuthService           *auth.AuthServiceImpl

	AttractionsHandler    *attractions.Handler
	RecommendationHandler *recommendation.Handler
	InteractionHandler    *interaction.Handler
	AuthHandler           *auth.AuthHandler
}

// NewContainer initializes and returns a new dependency container. With the
// postgres catalog source it migrates the schema and connects before wiring
// the services.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if cfg.Catalog.Source == attractions.SourcePostgres {
		pool, err := connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		c.AttractionsRepo = attractions.NewRepository(pool, logger, m)
	}

	aiClient, err := generativeAI.NewAIClient(ctx, generativeAI.ClientConfig{
		APIKey:         cfg.GenAI.APIKey,
		Model:          cfg.GenAI.Model,
		EmbeddingModel: cfg.GenAI.EmbeddingModel,
	})
	if err != nil {
		c.Close()
		logger.Error("Failed to initialize Gemini client", slog.Any("error", err))
		return nil, fmt.Errorf("generative ai client: %w", err)
	}

	c.Embedder = generativeAI.NewEmbeddingService(aiClient, generativeAI.EmbeddingOptions{
		Timeout:  cfg.GenAI.Timeout,
		CacheTTL: cfg.Recommendation.CacheTTL,
		Breaker: generativeAI.BreakerSettings{
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.Timeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
	}, logger, m)

	c.Store = recommender.NewStore()
	c.Engine = recommender.NewEngine(c.Store, c.Embedder, cfg.Recommendation.Timeout)

	c.AttractionsService = attractions.NewService(c.AttractionsRepo, c.Embedder, c.Store, attractions.Options{
		Source:            cfg.Catalog.Source,
		Concurrency:       cfg.Catalog.Concurrency,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
	}, logger, m)
	c.RecommendationService = recommendation.NewService(c.Engine, logger, m)
	c.InteractionService = interaction.NewService(
		generativeAI.NewVisionClassifier(aiClient, logger),
		generativeAI.NewChatService(aiClient, cfg.GenAI.Timeout, logger),
		logger,
	)
	c.AuthService = auth.NewAuthService(auth.Options{
		AdminUser:         cfg.Auth.AdminUser,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL,
	}, logger)

	c.AttractionsHandler = attractions.NewHandler(c.AttractionsService, logger)
	c.RecommendationHandler = recommendation.NewHandler(c.RecommendationService, logger)
	c.InteractionHandler = interaction.NewHandler(c.InteractionService, logger)
	c.AuthHandler = auth.NewAuthHandler(c.AuthService, logger)

	return c, nil
}

func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		return nil, err
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, err
	}
	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, fmt.Errorf("database not ready")
	}
	return pool, nil
}

// Router builds the HTTP handler tree from the wired handlers.
func (c *Container) Router() http.Handler {
	return router.SetupRouter(&router.Config{
		Logger:                 c.Logger,
		AuthHandler:            c.AuthHandler,
		AttractionsHandler:     c.AttractionsHandler,
		RecommendationHandler:  c.RecommendationHandler,
		InteractionHandler:     c.InteractionHandler,
		AuthenticateMiddleware: auth.Authenticate(c.Logger, c.AuthService),
		AllowedOrigins:         c.Config.Server.AllowedOrigins,
		RequestsPerMinute:      c.Config.Recommendation.RequestsPerMinute,
		RequestTimeout:         c.Config.Server.Timeout,
	})
}

// Prepare seeds an empty Postgres catalog and builds the first catalog. A
// failure here means the server has nothing to serve.
func (c *Container) Prepare(ctx context.Context) (attractions.CatalogStatus, error) {
	if c.Pool != nil {
		n, err := c.AttractionsService.EnsureSeeded(ctx)
		if err != nil {
			return attractions.CatalogStatus{}, fmt.Errorf("seed catalog: %w", err)
		}
		if n > 0 {
			c.Logger.InfoContext(ctx, "Seeded attractions table", slog.Int("count", n))
		}
	}
	return c.AttractionsService.BuildCatalog(ctx)
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
