// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "cinelist/docs" // swagger docs
	"cinelist/internal/auth"
	"cinelist/internal/cache"
	"cinelist/internal/config"
	"cinelist/internal/database"
	"cinelist/internal/middleware"
	"cinelist/internal/models"
	"cinelist/internal/repository"
	"cinelist/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	csrfHeader     = "X-Csrf-Token"
	csrfCookieName = "csrf_"
	csrfContextKey = "csrf"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	userRepo         repository.UserRepository
	watchlistRepo    repository.WatchlistRepository
	authService      *service.AuthService
	userService      *service.UserService
	watchlistService *service.WatchlistService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.Connect(context.Background(), cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; logout revocation is then disabled.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %d minutes", cfg.TokenTTLMinutes)
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("cinelist-api"),
		userRepo:       repository.NewUserRepository(db),
		watchlistRepo:  repository.NewWatchlistRepository(db),
	}

	revocations := cache.NewRevocationStore(nil)
	if cfg.RevokeOnLogout {
		revocations = cache.NewRevocationStore(redisClient)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	server.authService = service.NewAuthService(server.userRepo, tokens, revocations)
	server.userService = service.NewUserService(server.userRepo)
	server.watchlistService = service.NewWatchlistService(server.watchlistRepo)

	return server, nil
}

// NewApp builds a Fiber app with middleware and routes registered.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Cinelist API",
		ErrorHandler: s.ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// ErrorHandler maps errors that escape a handler (including fiber's own
// 404/405) onto the standard error body.
func (s *Server) ErrorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	return respondError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before CSRF so rejected requests still carry CORS headers.
	origins := strings.Join(s.config.Origins(), ",")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + csrfHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if s.config.CSRFEnabled {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "header:" + csrfHeader,
			CookieName:     csrfCookieName,
			CookieSameSite: "Lax",
			CookieSecure:   s.config.IsProduction(),
			Expiration:     time.Hour,
			ContextKey:     csrfContextKey,
			// Only the API is protected; probes and metrics stay plain.
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/api")
			},
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				middleware.Logger.WarnContext(c.UserContext(), "csrf check failed",
					slog.String("path", c.Path()),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "Invalid CSRF token"})
			},
		}))
	}
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/csrf-token", s.CSRFToken)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", s.Register)
	authRoutes.Post("/login", s.Login)
	authRoutes.Post("/logout", s.Logout)

	user := api.Group("/user", s.Protect())
	user.Get("/me", s.GetMe)
	user.Put("/profile/picture", s.UpdateProfilePicture)

	watchlists := api.Group("/watchlist", s.Protect())
	watchlists.Post("/create", s.CreateWatchlist)
	watchlists.Get("/", s.ListWatchlists)
	// Specific /:id/... routes before the generic /:id routes
	watchlists.Post("/:id/add-item", s.AddItem)
	watchlists.Put("/:id/items/:itemId", s.UpdateItem)
	watchlists.Delete("/:id/items/:itemId", s.RemoveItem)
	watchlists.Get("/:id", s.GetWatchlist)
	watchlists.Put("/:id", s.UpdateWatchlist)
	watchlists.Delete("/:id", s.DeleteWatchlist)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Protect returns the authentication middleware. It accepts only
// "Authorization: Bearer <token>" and resolves the token to a user.
func (s *Server) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.authService.Authenticate(c.UserContext(), bearerToken(c))
		if err != nil {
			return respondError(c, err)
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken returns the token of a "Bearer " Authorization header, or "".
func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
