package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quickservice/marketplace-api/internal/api/handler"
	"github.com/quickservice/marketplace-api/internal/api/middleware"
	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/service"
	"github.com/quickservice/marketplace-api/internal/infrastructure/config"
	"github.com/quickservice/marketplace-api/internal/infrastructure/db/postgres"
	"github.com/quickservice/marketplace-api/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quickservice"))

	// --- Dependencies ---
	signer := token.NewSigner(cfg.JWTSecret, cfg.JWTTTL)
	userRepo := postgres.NewUserRepository(pool, cfg.Postgres.QueryTimeout)
	categoryRepo := postgres.NewCategoryRepository(pool, cfg.Postgres.QueryTimeout)

	authService := service.NewAuthService(userRepo, signer, log)
	userService := service.NewUserService(userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	workerHandler := handler.NewWorkerHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	authRequired := middleware.Auth(signer, userRepo)
	workerOnly := middleware.RBAC(domain.RoleWorker)
	authLimiter := middleware.RateLimit(cfg.RateLimit, rdb, log)

	// --- Auth routes ---
	auth := e.Group("/auth", authLimiter)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authHandler.Verify, authRequired)

	// --- User routes ---
	users := e.Group("/users")
	users.GET("/profile", userHandler.GetProfile, authRequired)
	users.PUT("/profile", userHandler.UpdateProfile, authRequired)
	users.DELETE("/profile", userHandler.DeleteAccount, authRequired)
	users.PUT("/password", userHandler.ChangePassword, authRequired)
	users.PUT("/avatar", userHandler.UpdateAvatar, authRequired)
	users.GET("/stats", userHandler.Stats, authRequired)

	// Worker directory is public; availability is worker-only.
	users.GET("/workers", workerHandler.List)
	users.PUT("/workers/availability", workerHandler.SetAvailability, authRequired, workerOnly)
	users.GET("/workers/:id", workerHandler.Get)

	// --- Category routes (public reference data) ---
	e.GET("/categories", categoryHandler.List)
	e.GET("/categories/:id", categoryHandler.Get)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
