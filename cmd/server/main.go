package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/whoiscaerus/traderank/internal/analytics"
	"github.com/whoiscaerus/traderank/internal/config"
	"github.com/whoiscaerus/traderank/internal/db"
	"github.com/whoiscaerus/traderank/internal/handler"
	"github.com/whoiscaerus/traderank/internal/middleware"
	"github.com/whoiscaerus/traderank/internal/repository"
	"github.com/whoiscaerus/traderank/internal/router"
	"github.com/whoiscaerus/traderank/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "traderank")
	log := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	handler.InitMetrics(pool)
	service.InitMetrics()

	cache := service.NewCacheService(cfg.RedisURL, cfg.ScoreTTL, log)
	defer cache.Close()

	endorsementRepo := repository.NewEndorsementRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	scoreRepo := repository.NewScoreRepo(pool)

	provider := analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsAPIKey, log)

	recomputeSvc := service.NewRecomputeService(
		endorsementRepo, userRepo, provider, scoreRepo, cache, cfg.ScoreTTL, log)
	scoreSvc := service.NewScoreService(scoreRepo)

	if cfg.RecomputeInterval > 0 {
		worker := service.NewRecomputeWorker(recomputeSvc, cfg.RecomputeInterval, log)
		go worker.Start(ctx)
	} else {
		log.Info().Msg("periodic recompute disabled (RECOMPUTE_INTERVAL=0)")
	}

	app := fiber.New(fiber.Config{
		AppName:      "TradeRank API",
		ServerHeader: "TradeRank",
	})

	router.Setup(app, &router.Handlers{
		Score:       handler.NewScoreHandler(scoreSvc, cache),
		Recompute:   handler.NewRecomputeHandler(recomputeSvc),
		Leaderboard: handler.NewLeaderboardHandler(scoreSvc),
		Stats:       handler.NewStatsHandler(userRepo),
		Health:      handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("TradeRank backend starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
