// Package server provides HTTP server setup and configuration.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sebasr/rehab-service/internal/auth"
	"github.com/sebasr/rehab-service/internal/config"
	"github.com/sebasr/rehab-service/internal/handlers"
	"github.com/sebasr/rehab-service/internal/health"
	"github.com/sebasr/rehab-service/internal/middleware"
	"github.com/sebasr/rehab-service/internal/motion"
	"github.com/sebasr/rehab-service/internal/recommend"
	"github.com/sebasr/rehab-service/internal/repository"
	"github.com/sebasr/rehab-service/internal/session"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if request ID already exists in header
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			// Generate new UUID for request ID
			requestID = uuid.New().String()
		}

		// Set request ID in context and response header
		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// NewRateLimitMiddleware creates a rate limiting middleware using ulule/limiter.
// It allows 100 requests per minute per IP address.
func NewRateLimitMiddleware() gin.HandlerFunc {
	// Define rate: 100 requests per 1 minute
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	// Create in-memory store
	store := memory.NewStore()

	// Create rate limiter instance
	instance := limiter.New(store, rate)

	// Create and return Gin middleware
	middleware := mgin.NewMiddleware(instance)

	return middleware
}

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config         *config.Config
	Accumulator    *session.Accumulator
	Engine         *recommend.Engine
	SessionRepo    repository.SessionRepository
	ProgressRepo   repository.ProgressRepository
	PredictionRepo repository.PredictionRepository
	PatientRepo    repository.PatientRepository
	HealthSink     health.Sink
	VRLink         motion.VRLink // Optional: nil if no tracker configured
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	// Set Gin to release mode to disable ANSI colors in logs
	gin.SetMode(gin.ReleaseMode)

	// Use gin.New() instead of gin.Default() to have explicit control over middleware
	// gin.Default() includes colored logging which contaminates HTTP responses with ANSI codes
	router := gin.New()

	// Add recovery middleware (without colored output)
	router.Use(gin.Recovery())

	// Add logger middleware without colored output
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(_ gin.LogFormatterParams) string {
			// Custom log format without ANSI color codes
			return ""
		},
		Output:    nil,                        // Disable output to prevent any log contamination
		SkipPaths: []string{"/api/v1/health"}, // Skip health check logging
	}))

	// Add CORS middleware for web client support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Encoding", "Authorization", "X-Request-ID", "X-Batch-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Add middlewares
	router.Use(RequestIDMiddleware())
	router.Use(NewRateLimitMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	// Initialize JWT service
	jwtService := auth.NewJWTService(
		deps.Config.Auth.JWTSecret,
		deps.Config.Auth.JWTAccessTokenTTL,
	)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	authRateLimiter := middleware.NewAuthRateLimitMiddleware()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.PatientRepo, jwtService)
	sampleHandler := handlers.NewSampleHandler(deps.Accumulator)
	sessionHandler := handlers.NewSessionHandler(
		deps.Accumulator,
		deps.SessionRepo,
		deps.ProgressRepo,
		deps.PredictionRepo,
		deps.Engine,
		deps.HealthSink,
		deps.Config.Pipeline.PredictionDelay,
	)
	recommendationHandler := handlers.NewRecommendationHandler(
		deps.Accumulator,
		deps.SessionRepo,
		deps.PredictionRepo,
		deps.Engine,
	)
	progressHandler := handlers.NewProgressHandler(deps.ProgressRepo)
	healthDataHandler := handlers.NewHealthDataHandler(deps.HealthSink)
	vrHandler := handlers.NewVRHandler(deps.VRLink)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint for network quality detection
		v1.GET("/health", func(c *gin.Context) {
			c.PureJSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"version":   "1.0.0",
			})
		})

		// Auth routes (with stricter rate limiting)
		authGroup := v1.Group("/auth")
		authGroup.Use(authRateLimiter)
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		v1.GET("/auth/me", authMiddleware.Required(), authHandler.Me)

		// Motion ingest routes (optional auth; the phone app streams these
		// before login during setup)
		v1.POST("/motion", authMiddleware.Optional(), sampleHandler.HandlePost)
		v1.POST("/motion/batch", authMiddleware.Optional(), sampleHandler.HandleBatchPost)

		// Protected session routes
		sessions := v1.Group("/sessions")
		sessions.Use(authMiddleware.Required())
		{
			sessions.POST("/start", sessionHandler.HandleStart)
			sessions.POST("/end", sessionHandler.HandleEnd)
			sessions.GET("/active", sessionHandler.HandleActive)
			sessions.GET("", sessionHandler.HandleList)
			sessions.GET("/:id", sessionHandler.HandleGet)
		}

		// Protected recommendation routes
		recommendations := v1.Group("/recommendations")
		recommendations.Use(authMiddleware.Required())
		{
			recommendations.GET("", recommendationHandler.HandleList)
			recommendations.GET("/session/:id", recommendationHandler.HandleGetBySession)
			recommendations.POST("/generate", recommendationHandler.HandleGenerate)
		}

		// Protected progress route
		v1.GET("/progress", authMiddleware.Required(), progressHandler.HandleGet)

		// Protected health-data routes
		v1.GET("/health-data/aggregates", authMiddleware.Required(), healthDataHandler.HandleAggregates)

		// Protected VR tracker routes
		vr := v1.Group("/vr")
		vr.Use(authMiddleware.Required())
		{
			vr.GET("/status", vrHandler.HandleStatus)
			vr.POST("/calibrate", vrHandler.HandleCalibrate)
		}
	}

	return router
}
