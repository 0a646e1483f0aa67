package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sovest/internal/auth"
	"sovest/internal/config"
	"sovest/internal/database"
	"sovest/internal/handlers"
	"sovest/internal/jobs"
	"sovest/internal/marketdata"
	"sovest/internal/repository"
	"sovest/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize price provider with the repository-backed cache
	priceClient := marketdata.NewTwelveDataClient(marketdata.TwelveDataOptions{
		APIKey:         cfg.MarketData.APIKey,
		BaseURL:        cfg.MarketData.BaseURL,
		RequestTimeout: cfg.MarketData.RequestTimeout,
		RequestsPerSec: cfg.MarketData.RequestsPerSec,
		LookupWindow:   cfg.MarketData.LookupWindow,
	})
	priceProvider := marketdata.NewCachingProvider(repo, priceClient, cfg.MarketData.LookupWindow)

	// Initialize services
	userService := services.NewUserService(repo)
	stockService := services.NewStockService(repo)
	predictionService := services.NewPredictionService(repo)
	voteService := services.NewVoteService(repo)
	scoringService := services.NewScoringService(repo, priceProvider, services.PolicyFromConfig(cfg.Scoring))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	stockHandler := handlers.NewStockHandler(stockService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	voteHandler := handlers.NewVoteHandler(voteService)
	adminHandler := handlers.NewAdminHandler(repo, scoringService)

	// Start background evaluation job
	evaluationJob := jobs.NewEvaluationJob(scoringService, cfg.Scoring.SweepInterval)
	go evaluationJob.Start()
	log.Println("Evaluation job started")

	// Set up Gin router
	router := gin.Default()

	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Public read routes
	router.GET("/api/predictions/feed", predictionHandler.GetFeed)
	router.GET("/api/predictions/:id", predictionHandler.GetPrediction)
	router.GET("/api/predictions/:id/votes", voteHandler.GetTally)
	router.GET("/api/stocks/search", stockHandler.Search)
	router.GET("/api/stocks/:symbol", stockHandler.GetBySymbol)
	router.GET("/api/leaderboard", userHandler.GetLeaderboard)
	router.GET("/api/users/:id", userHandler.GetUserProfile)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/predictions", predictionHandler.CreatePrediction)
		api.PUT("/predictions/:id", predictionHandler.UpdatePrediction)
		api.GET("/predictions", predictionHandler.GetMyPredictions)
		api.POST("/predictions/:id/vote", voteHandler.Vote)

		api.GET("/user/profile", userHandler.GetProfile)
	}

	// Admin routes (protected)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	{
		admin.GET("/stats", adminHandler.GetPlatformStats)
		admin.POST("/evaluate", adminHandler.TriggerSweep)
		admin.POST("/stocks", stockHandler.Create)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	evaluationJob.Stop()

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
