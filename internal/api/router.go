package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workbase/console-api/internal/api/handler"
	"github.com/workbase/console-api/internal/api/middleware"
	"github.com/workbase/console-api/internal/core/domain"
	"github.com/workbase/console-api/internal/core/service"
	"github.com/workbase/console-api/internal/infrastructure/config"
	mongodb "github.com/workbase/console-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workbase/console-api/internal/infrastructure/db/redis"
	"github.com/workbase/console-api/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// recorder may be nil in tests; handlers then skip activity recording.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, recorder handler.ActivityRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)

	authService := service.NewAuthService(userRepo, limiter, log)
	projectService := service.NewProjectService(projectRepo)

	sessions := session.NewManager(
		session.NewCookieStore(cfg.Session.CookieName, !cfg.IsDevelopment(), cfg.Session.TTL),
		session.NewCodec(cfg.Session.Secret, cfg.Session.TTL),
		log,
	)
	e.Use(middleware.Session(sessions))

	sessionHandler := handler.NewSessionHandler(authService, sessions, recorder)
	projectHandler := handler.NewProjectHandler(projectService, recorder)
	adminHandler := handler.NewAdminHandler(userRepo, projectRepo)
	dashboardHandler := handler.NewDashboardHandler(eventRepo)

	// --- Session lifecycle ---
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/logout", sessionHandler.Logout)
	e.GET("/session/current", sessionHandler.Current)
	e.POST("/session/onboarding", sessionHandler.CompleteOnboarding, middleware.RequireSession())

	// --- Projects ---
	e.GET("/projects", projectHandler.List, middleware.RequireSession())
	e.POST("/projects", projectHandler.Create,
		middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleMember))

	// --- Dashboard ---
	e.GET("/dashboard/events", dashboardHandler.Events, middleware.RequireSession())

	// --- Admin (role-gated) ---
	admin := e.Group("/admin")
	admin.GET("/stats", adminHandler.Stats, middleware.RequireRole(domain.RoleOwner))
	admin.GET("/users", adminHandler.Users, middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
