package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/config"
	"github.com/mentorhub/mentorhub-api/internal/cache"
	"github.com/mentorhub/mentorhub-api/internal/database/postgres"
	"github.com/mentorhub/mentorhub-api/internal/handlers"
	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/repository"
	"github.com/mentorhub/mentorhub-api/internal/services"
	"github.com/mentorhub/mentorhub-api/pkg/db"
	"github.com/mentorhub/mentorhub-api/pkg/jwt"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
	"github.com/mentorhub/mentorhub-api/pkg/profiling"
	"github.com/mentorhub/mentorhub-api/pkg/tracing"
)

// registerAuthRoutes registers the public authentication endpoints
func registerAuthRoutes(
	group *gin.RouterGroup,
	authRateLimiter, registrationRateLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
) {
	auth := group.Group("/auth")
	auth.POST("/register", registrationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Register)
	auth.POST("/login", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	auth.POST("/verify", authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Verify)
}

// registerUserRoutes registers the authenticated user, search, mentorship
// and notification endpoints
func registerUserRoutes(
	group *gin.RouterGroup,
	tokenManager *jwt.TokenManager,
	generalRateLimiter *middleware.RateLimiter,
	userHandler *handlers.UserHandler,
	searchHandler *handlers.SearchHandler,
	mentorshipHandler *handlers.MentorshipHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	authed := group.Group("")
	authed.Use(generalRateLimiter.Middleware())
	authed.Use(middleware.UserSessionMiddleware(tokenManager))

	// User discovery comes before the parameterized user routes so gin
	// resolves the static paths first
	authed.GET("/users", searchHandler.SearchUsers)
	authed.GET("/users/shared-skills", searchHandler.SharedSkills)
	authed.GET("/users/shared-interests", searchHandler.SharedInterests)
	authed.GET("/users/:id", userHandler.GetUser)
	authed.GET("/users/:id/profile", userHandler.GetProfile)
	authed.PUT("/users/:id", middleware.BodySizeLimitMiddleware(100*1024), userHandler.UpdateProfile)
	authed.DELETE("/users/:id", userHandler.DeleteUser)

	authed.POST("/mentorship/requests", middleware.BodySizeLimitMiddleware(100*1024), mentorshipHandler.SendRequest)
	authed.POST("/mentorship/requests/:id/respond", middleware.BodySizeLimitMiddleware(10*1024), mentorshipHandler.RespondToRequest)
	authed.GET("/mentorship/requests/pending", mentorshipHandler.ListPendingRequests)
	authed.GET("/mentorship/connections", mentorshipHandler.ListConnections)
	authed.POST("/mentorship/connections/cancel", middleware.BodySizeLimitMiddleware(10*1024), mentorshipHandler.CancelConnection)

	authed.GET("/notifications", notificationHandler.ListNotifications)
	authed.POST("/notifications/:id/read", notificationHandler.MarkRead)
}

// registerTaxonomyRoutes registers the public skills and interests catalog
// endpoints
func registerTaxonomyRoutes(
	group *gin.RouterGroup,
	generalRateLimiter *middleware.RateLimiter,
	taxonomyHandler *handlers.TaxonomyHandler,
) {
	group.GET("/skills", generalRateLimiter.Middleware(), taxonomyHandler.ListSkills)
	group.POST("/skills", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), taxonomyHandler.CreateSkill)
	group.GET("/skills/:name", generalRateLimiter.Middleware(), taxonomyHandler.GetSkillByName)
	group.GET("/interests", generalRateLimiter.Middleware(), taxonomyHandler.ListInterests)
	group.POST("/interests", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), taxonomyHandler.CreateInterest)
	group.GET("/interests/:name", generalRateLimiter.Middleware(), taxonomyHandler.GetInterestByName)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Each running instance gets a stable identity for traces and profiles
	instanceID := cfg.Observability.ServiceInstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}

	logger.Info("Starting MentorHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("instance_id", instanceID),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		instanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	if cfg.Profiling.Enabled {
		stopProfiler, err := profiling.InitProfiler(
			cfg.Profiling,
			cfg.Observability.ServiceName,
			cfg.Observability.ServiceNamespace,
			cfg.Observability.ServiceVersion,
			instanceID,
			cfg.Server.AppEnv,
		)
		if err != nil {
			logger.Fatal("Failed to initialize profiler", zap.Error(err))
		}
		defer stopProfiler()
	}

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// NOTE: Database migrations are run separately via the migrate command

	dbClient := postgres.NewClient(pool)

	// Initialize taxonomy cache synchronously before accepting requests
	var taxonomyCache *cache.TaxonomyCache
	if cfg.Cache.DisableTaxonomyCache {
		logger.Warn("Taxonomy cache is DISABLED - reading skills and interests from database on every request")
	} else {
		taxonomyCache = cache.NewTaxonomyCache(dbClient, time.Duration(cfg.Cache.TaxonomyTTLSeconds)*time.Second)
		if err := taxonomyCache.Initialize(context.Background()); err != nil {
			logger.Fatal("Failed to initialize taxonomy cache", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbClient)
	taxonomyRepo := repository.NewTaxonomyRepository(dbClient, taxonomyCache)
	mentorshipRepo := repository.NewMentorshipRepository(dbClient)
	notificationRepo := repository.NewNotificationRepository(dbClient)

	// Initialize services
	tokenManager := jwt.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTLHours)
	authService := services.NewAuthService(userRepo, tokenManager)
	userService := services.NewUserService(userRepo, cfg.Auth.BCryptCost)
	mentorshipService := services.NewMentorshipService(mentorshipRepo, userRepo, notificationRepo, cfg)
	searchService := services.NewSearchService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	taxonomyService := services.NewTaxonomyService(taxonomyRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	searchHandler := handlers.NewSearchHandler(searchService)
	mentorshipHandler := handlers.NewMentorshipHandler(mentorshipService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	healthHandler := handlers.NewHealthHandler(dbClient.Ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration: only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200)    // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)           // 1 req/sec, burst of 5 (login abuse prevention)
	registrationRateLimiter := middleware.NewRateLimiter(0.1, 3) // 1 req/10s, burst of 3

	// API routes
	api := router.Group("/api")

	// Operational endpoints
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	registerAuthRoutes(api, authRateLimiter, registrationRateLimiter, authHandler)
	registerTaxonomyRoutes(api, generalRateLimiter, taxonomyHandler)
	registerUserRoutes(api, tokenManager, generalRateLimiter, userHandler, searchHandler, mentorshipHandler, notificationHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
