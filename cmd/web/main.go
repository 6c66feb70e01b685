package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nesthome/nesthome-web/internal/api"
	"github.com/nesthome/nesthome-web/internal/core/ports"
	"github.com/nesthome/nesthome-web/internal/core/service"
	mongodb "github.com/nesthome/nesthome-web/internal/infrastructure/db/mongo"
	redisdb "github.com/nesthome/nesthome-web/internal/infrastructure/db/redis"
	"github.com/nesthome/nesthome-web/internal/infrastructure/upstream"
	"github.com/nesthome/nesthome-web/internal/pkg/config"
	websession "github.com/nesthome/nesthome-web/internal/session"
	"github.com/nesthome/nesthome-web/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	upstreamClient, err := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid upstream configuration")
	}

	// Redis is optional: without it the catalog page hits the upstream on
	// every render.
	var cache ports.CatalogCache
	deps := api.Dependencies{Log: log}
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			defer rdb.Close()
			cache = redisdb.NewCatalogCache(rdb)
			deps.Redis = rdb
		}
	}

	// Mongo is optional: without it contact leads go to the log.
	contactRepo := service.NewContactLogSink(log)
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo unavailable, contact inbox disabled")
		} else {
			defer func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(disconnectCtx)
			}()
			contactRepo = mongodb.NewContactRepository(db)
			deps.Mongo = db
		}
	}

	registry := websession.NewRegistry(func() (*websession.Browser, error) {
		sess, err := upstreamClient.NewSession()
		if err != nil {
			return nil, err
		}
		return &websession.Browser{
			Manager:   service.NewAuthManager(sess, log),
			Dashboard: sess,
		}, nil
	}, log)
	registry.StartJanitor(ctx)

	deps.Registry = registry
	deps.Catalog = service.NewCatalogService(upstreamClient, cache, log)
	deps.Contact = service.NewContactService(contactRepo, log)
	deps.Store = websession.NewStore(cfg.SessionSecret)

	e, err := api.NewRouter(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("nesthome web frontend starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
