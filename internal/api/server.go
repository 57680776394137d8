// Package api wires the router: middleware stack, service routes, and the
// /api resource and statistics routes.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/matchday/matchday-api/internal/api/handler"
	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/db"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(store db.Store, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Request-Id", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(store, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", h.ListLeagues)
			r.Post("/", h.CreateLeague)
			r.Route("/{leagueID}", func(r chi.Router) {
				r.Delete("/", h.DeleteLeague)
				r.Get("/table", h.GetLeagueTable)
				r.Get("/top-scorers", h.GetTopScorers)
				r.Get("/top-assists", h.GetTopAssists)
				r.Get("/leaders", h.GetLeaders)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.Post("/", h.CreateTeam)
			r.Delete("/{teamID}", h.DeleteTeam)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.ListPlayers)
			r.Post("/", h.CreatePlayer)
			r.Delete("/{playerID}", h.DeletePlayer)
		})

		r.Get("/positions", h.ListPositions)

		r.Route("/seasons", func(r chi.Router) {
			r.Get("/", h.ListSeasons)
			r.Post("/", h.CreateSeason)
			r.Delete("/{seasonID}", h.DeleteSeason)
		})

		r.Post("/matches", h.CreateMatch)

		r.Route("/player-stats", func(r chi.Router) {
			r.Get("/", h.ListPlayerStats)
			r.Post("/", h.CreatePlayerStat)
		})

		r.Get("/head-to-head", h.GetHeadToHead)
	})

	return r
}
