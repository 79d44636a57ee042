package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/workbase/console-api/internal/api"
	"github.com/workbase/console-api/internal/infrastructure/config"
	mongodb "github.com/workbase/console-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workbase/console-api/internal/infrastructure/db/redis"
	"github.com/workbase/console-api/internal/infrastructure/queue"
	"github.com/workbase/console-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if cfg.IsDevelopment() {
		if err := mongodb.Seed(ctx, mongodb.NewUserRepository(db), mongodb.DefaultSeedUsers, log); err != nil {
			log.Fatal().Err(err).Msg("seeding demo accounts failed")
		}
	}

	recorder := queue.NewRecorder(0, mongodb.NewEventRepository(db), log)
	recorder.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, recorder, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("console api listening")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
