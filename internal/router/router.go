package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appLogger "github.com/FACorreiaa/horus-ai/app/logger"
	"github.com/FACorreiaa/horus-ai/internal/api"
	"github.com/FACorreiaa/horus-ai/internal/api/attractions"
	"github.com/FACorreiaa/horus-ai/internal/api/auth"
	"github.com/FACorreiaa/horus-ai/internal/api/interaction"
	"github.com/FACorreiaa/horus-ai/internal/api/recommendation"
)

// Config contains dependencies needed for the router setup
type Config struct {
	Logger                 *slog.Logger
	AuthHandler            *auth.AuthHandler
	AttractionsHandler     *attractions.Handler
	RecommendationHandler  *recommendation.Handler
	InteractionHandler     *interaction.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
	// RequestsPerMinute limits each client IP on the model-backed routes.
	// Zero disables the limit.
	RequestsPerMinute int
	RequestTimeout    time.Duration
}

// SetupRouter builds the application router with server-wide middleware applied.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	limit := rateLimit(cfg.RequestsPerMinute)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ready", cfg.AttractionsHandler.Ready)
		r.Get("/attractions", cfg.AttractionsHandler.ListAttractions)
		r.Post("/auth/token", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Get("/recommendations", cfg.RecommendationHandler.RecommendQuery)
			r.Post("/recommendations", cfg.RecommendationHandler.Recommend)
			r.Post("/interact", cfg.InteractionHandler.Interact)
			r.Post("/chat", cfg.InteractionHandler.Chat)
		})

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Post("/admin/catalog/reload", cfg.AttractionsHandler.ReloadCatalog)
		})
	})

	return r
}

func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "Too many requests, slow down")
		}),
	)
}
