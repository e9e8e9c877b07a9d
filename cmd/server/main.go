package main

import (
	"context"
	"strings"

	"github.com/joho/godotenv"

	"github.com/metamingle/server/internal/app"
	"github.com/metamingle/server/internal/cache"
	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/db"
	"github.com/metamingle/server/internal/handler"
	"github.com/metamingle/server/internal/logger"
	"github.com/metamingle/server/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()

	// Init logger (global singleton)
	logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		JSON:       strings.EqualFold(cfg.Log.Format, "json"),
		Component:  cfg.Log.Component,
		WithSource: cfg.Log.Source,
	})
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	registrars := []server.Registrar{
		handler.NewRegistrar(appCtx),
	}

	engine := server.NewEngine(cfg, appCtx, registrars...)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, engine); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
