package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/NXFinity/beamify-application/internal/api"
	"github.com/NXFinity/beamify-application/internal/core/service"
	"github.com/NXFinity/beamify-application/internal/infrastructure/backend"
	"github.com/NXFinity/beamify-application/internal/infrastructure/config"
	mongodb "github.com/NXFinity/beamify-application/internal/infrastructure/db/mongo"
	redisdb "github.com/NXFinity/beamify-application/internal/infrastructure/db/redis"
	"github.com/NXFinity/beamify-application/internal/infrastructure/queue"
	"github.com/NXFinity/beamify-application/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Session store (Redis) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Audit store (MongoDB) ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// --- Dependencies ---
	coreClient := backend.NewClient(cfg.Core.BaseURL, cfg.Core.Version, nil, log)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL, log)
	throttle := redisdb.NewLoginThrottle(rdb)

	auditRepo := mongodb.NewAuditRepository(db)
	auditDispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	auditDispatcher.Start(ctx)

	sessions := service.NewSessionService(sessionStore, coreClient, auditDispatcher, log)
	bootstrap := service.NewBootstrapService(coreClient, auditDispatcher, cfg.BootstrapPollInterval, log)

	e, err := api.NewRouter(api.RouterConfig{
		Sessions:     sessions,
		Bootstrap:    bootstrap,
		Core:         coreClient,
		Audit:        auditRepo,
		Throttle:     throttle,
		Mongo:        db,
		Redis:        rdb,
		CookieSecret: cfg.SessionSecret,
		CookieTTL:    cfg.SessionTTL,
		CoreBaseURL:  cfg.Core.BaseURL,
		CoreVersion:  cfg.Core.Version,
		Log:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("core_api", cfg.Core.BaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
