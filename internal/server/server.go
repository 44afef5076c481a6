// Package server contains HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"log"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/github"
	"devconnector/internal/middleware"
	"devconnector/internal/repository"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config   *config.Config
	db       *mongo.Database
	redis    *redis.Client
	tokens   *auth.Manager
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	github   *github.Client

	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates a server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient := cache.New(cfg.RedisURL)

	prom := middleware.InitMetrics("devconnector-api")

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		tokens:         auth.NewManager(cfg.JWTSecret, auth.DefaultTTL),
		users:          repository.NewUserRepository(db),
		profiles:       repository.NewProfileRepository(db),
		posts:          repository.NewPostRepository(db),
		github:         github.NewClient(redisClient, cfg.GithubClientID, cfg.GithubSecret),
		promMiddleware: prom,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Per-request Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"msg": "Too many requests, please try again later",
			})
		},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, x-auth-token",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus plus the built-in dashboard
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "DevConnector API Metrics",
	}))

	authRequired := middleware.TokenRequired(s.tokens)

	// Registration
	api.Post("/users", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)

	// Session
	api.Post("/auth", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	api.Get("/auth", authRequired, s.CurrentUser)

	// Profiles
	profile := api.Group("/profile")
	profile.Get("/me", authRequired, s.GetMyProfile)
	profile.Post("/", authRequired, s.UpsertProfile)
	profile.Get("/", s.ListProfiles)
	profile.Delete("/", authRequired, s.DeleteAccount)
	profile.Put("/experience", authRequired, s.AddExperience)
	profile.Delete("/experience/:exp_id", authRequired, s.DeleteExperience)
	profile.Put("/education", authRequired, s.AddEducation)
	profile.Delete("/education/:edu_id", authRequired, s.DeleteEducation)
	profile.Get("/github/:username", s.GithubRepos)
	// Generic /user/:user_id route after the specific ones
	profile.Get("/user/:user_id", s.GetProfileByUser)

	// Posts
	posts := api.Group("/posts", authRequired)
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Put("/like/:id", s.LikePost)
	posts.Put("/unlike/:id", s.UnlikePost)
	posts.Post("/comment/:id", s.CreateComment)
	posts.Delete("/comment/:id/:comment_id", s.DeleteComment)
	// Generic /:id routes must be last
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)
}

// HealthCheck reports connectivity of the backing stores.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.db.Client().Ping(ctx, nil); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}

	if err := database.Disconnect(ctx, s.db); err != nil {
		log.Printf("error disconnecting mongo: %v", err)
	}

	log.Println("Server shutdown complete")
	return nil
}
