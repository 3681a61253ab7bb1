package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zeronotes/secure-notes/internal/api/handler"
	"github.com/zeronotes/secure-notes/internal/api/middleware"
	"github.com/zeronotes/secure-notes/internal/core/ports"
	"github.com/zeronotes/secure-notes/internal/core/service"
	mongodb "github.com/zeronotes/secure-notes/internal/infrastructure/db/mongo"
	redisdb "github.com/zeronotes/secure-notes/internal/infrastructure/db/redis"
	"github.com/zeronotes/secure-notes/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// auditor receives register/login/note mutation events; it may be nil.
func NewRouter(db *mongo.Database, rdb *redis.Client, auditor ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("secure_notes"))

	// --- Dependencies ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, log)

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokens, auditor, log)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
	authHandler := handler.NewAuthHandler(authService, throttle)

	noteRepo := mongodb.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepo, auditor, log)
	noteHandler := handler.NewNoteHandler(noteService)

	authMiddleware := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/whoami", authHandler.WhoAmI, authMiddleware)

	// --- Note routes (every one passes through the auth gate) ---
	notes := e.Group("/api/notes", authMiddleware)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
