// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	_ "warbler/docs" // swagger docs
	"warbler/internal/cache"
	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	messageRepo    repository.MessageRepository
	followRepo     repository.FollowRepository
	likeRepo       repository.LikeRepository
	authService    *service.AuthService
	userService    *service.UserService
	followService  *service.FollowService
	messageService *service.MessageService
	likeService    *service.LikeService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	prom := middleware.InitMetrics("warbler-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		messageRepo:    messageRepo,
		followRepo:     followRepo,
		likeRepo:       likeRepo,
	}
	server.authService = service.NewAuthService(userRepo)
	server.userService = service.NewUserService(userRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.messageService = service.NewMessageService(messageRepo, followRepo)
	server.likeService = service.NewLikeService(likeRepo, messageRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing, enabled via config
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Warbler Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)
	auth.Post("/refresh", s.AuthRequired(), s.Refresh)

	// Public message routes. Single-message detail personalizes like state
	// when a valid token happens to be present.
	publicMessages := api.Group("/messages")
	publicMessages.Get("/:id", s.GetMessage)
	// Warbler's classic like toggle. It does its own auth so anonymous
	// callers get the legacy "Access Unauthorized." body.
	publicMessages.Post("/:id/toggle_like", s.ToggleLike)

	// Home feed: public with optional auth; anonymous callers get an empty
	// feed instead of a 401.
	api.Get("/feed", s.GetFeed)

	// User routes. Browsing users and their messages is public (optional
	// viewer personalization); account management and the follow graph
	// require auth. The /me routes must precede the generic /:id matcher.
	users := api.Group("/users")
	users.Get("/me", s.AuthRequired(), s.GetMyProfile)
	users.Put("/me", s.AuthRequired(), s.UpdateMyProfile)
	users.Delete("/me", s.AuthRequired(), s.DeleteMyAccount)
	users.Get("/", s.GetAllUsers)

	// Specific /:id/:resource routes BEFORE generic /:id route
	users.Get("/:id/messages", s.GetUserMessages)
	users.Get("/:id/followers", s.AuthRequired(), s.GetFollowers)
	users.Get("/:id/following", s.AuthRequired(), s.GetFollowing)
	users.Get("/:id/likes", s.AuthRequired(), s.GetLikedMessages)
	users.Post("/:id/follow", s.AuthRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "follow"), s.FollowUser)
	users.Delete("/:id/follow", s.AuthRequired(), s.UnfollowUser)
	users.Get("/:id", s.GetUserProfile)

	// Protected message routes
	protected := api.Group("", s.AuthRequired())
	messages := protected.Group("/messages")
	messages.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_message"), s.CreateMessage)
	messages.Post("/:id/like", s.LikeMessage)
	messages.Delete("/:id/like", s.UnlikeMessage)
	messages.Delete("/:id", s.DeleteMessage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays functional without Redis; caching and token
		// revocation degrade.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
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

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, _, err := s.parseToken(c.Context(), tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(err.Error()))
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// parseToken validates a JWT and returns the user ID and claims. It checks
// the signing method, issuer, audience and the Redis revocation list.
func (s *Server) parseToken(ctx context.Context, tokenString string) (uint, jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, nil, fmt.Errorf("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "warbler-api" {
		return 0, nil, fmt.Errorf("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "warbler-client" {
		return 0, nil, fmt.Errorf("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, nil, fmt.Errorf("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("Invalid user ID in token")
	}

	// Check JTI for revocation
	if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
		isRevoked, err := s.redis.Exists(ctx, "blacklist:"+jti).Result()
		if err == nil && isRevoked > 0 {
			return 0, nil, fmt.Errorf("Token has been revoked")
		}
	}

	return uint(userID), claims, nil
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Anonymous callers get (0, false).
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	// AuthRequired (or an upstream handler) may have resolved the user already.
	if id, ok := c.Locals("userID").(uint); ok {
		return id, true
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	userID, _, err := s.parseToken(c.Context(), parts[1])
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Warbler API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
