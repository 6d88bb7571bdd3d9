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

	"github.com/meridianbank/identity-gateway/internal/api"
	"github.com/meridianbank/identity-gateway/internal/infrastructure/config"
	mongostore "github.com/meridianbank/identity-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/meridianbank/identity-gateway/internal/infrastructure/db/redis"
	"github.com/meridianbank/identity-gateway/internal/infrastructure/legacy"
	"github.com/meridianbank/identity-gateway/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "identity-gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongostore.NewIdentityStore(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// A missing or broken CRM secret disables the integration for the whole
	// process lifetime; a restart with a fixed secret re-enables it.
	var legacyCfg *legacy.Config
	if cfg.Legacy.SecretFile != "" {
		legacyCfg, err = legacy.LoadConfigFile(cfg.Legacy.SecretFile)
		if err != nil {
			log.Error().Err(err).Msg("legacy CRM secret unusable, integration disabled")
		}
	} else {
		log.Warn().Msg("no legacy CRM secret configured, integration disabled")
	}
	legacyClient := legacy.NewClient(legacyCfg, log)

	e := api.NewRouter(db, rdb, legacyClient, cfg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("legacy_enabled", legacyCfg != nil).Msg("identity gateway started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
