package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/whoiscaerus/traderank/internal/handler"
	"github.com/whoiscaerus/traderank/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Score       *handler.ScoreHandler
	Recompute   *handler.RecomputeHandler
	Leaderboard *handler.LeaderboardHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Operational endpoints (before API group, no rate limits)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	scoreLimit := middleware.NewScoreRateLimiter().Handler()
	api.Get("/scores/:userId", h.Score.GetByUserID, scoreLimit)
	api.Get("/scores/:userId/history", h.Score.History, scoreLimit)

	api.Post("/recompute", h.Recompute.RecomputeAll, middleware.NewRecomputeAllRateLimiter().Handler())
	api.Post("/recompute/:userId", h.Recompute.RecomputeOne, middleware.NewRecomputeOneRateLimiter().Handler())

	api.Get("/leaderboard", h.Leaderboard.Get, middleware.NewLeaderboardRateLimiter().Handler())
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
