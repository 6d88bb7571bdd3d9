package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meridianbank/identity-gateway/internal/api/handler"
	"github.com/meridianbank/identity-gateway/internal/api/middleware"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
	"github.com/meridianbank/identity-gateway/internal/core/service"
	"github.com/meridianbank/identity-gateway/internal/infrastructure/config"
	mongostore "github.com/meridianbank/identity-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/meridianbank/identity-gateway/internal/infrastructure/db/redis"
	"github.com/meridianbank/identity-gateway/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, legacyClient ports.LegacyClient, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	identityStore := mongostore.NewIdentityStore(db)
	noteStore := redisstore.NewNoteStore(rdb)
	credentials := service.NewBcryptCredentialManager(identityStore)
	migration := service.NewMigrationService(legacyClient, identityStore, credentials, noteStore,
		cfg.JWTSecret, cfg.TokenTTL, logger.Get())
	registration := service.NewRegistrationService(legacyClient, identityStore, credentials, logger.Get())

	loginHandler := handler.NewLoginHandler(migration)
	registerHandler := handler.NewRegisterHandler(registration)
	identityHandler := handler.NewIdentityHandler(identityStore)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/auth", middleware.Session())
	auth.POST("/login", loginHandler.Login)
	auth.POST("/register", registerHandler.Register)

	// --- Identity routes (require the gateway's own session token) ---
	e.GET("/identities/me", identityHandler.Me, authMiddleware)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
