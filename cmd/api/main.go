package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/postable/content-api/internal/api"
	"github.com/postable/content-api/internal/infrastructure/config"
	"github.com/postable/content-api/internal/infrastructure/db/postgres"
	"github.com/postable/content-api/internal/infrastructure/db/redis"
	"github.com/postable/content-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options come from config, so this one failure logs bare.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:         cfg.Postgres.DSN,
		AutoMigrate: cfg.Postgres.AutoMigrate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	deps := api.Dependencies{
		Users:   postgres.NewUserRepository(db),
		Posts:   postgres.NewPostRepository(db),
		Votes:   postgres.NewVoteRepository(db),
		Limiter: redis.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
		DB:      db,
		Redis:   rdb,
	}

	e := api.NewRouter(cfg, deps, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
