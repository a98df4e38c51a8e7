package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ambassador-board/internal/auth"
	"ambassador-board/internal/database"
	"ambassador-board/internal/handlers"
	"ambassador-board/internal/services"
	"ambassador-board/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load database configuration
	dbConfig := database.LoadConfig()

	// Connect to database
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize and start background workers
	workerService := worker.NewWorkerService()
	if err := workerService.Start(); err != nil {
		log.Fatal("Failed to start background workers:", err)
	}

	// Setup graceful shutdown
	setupGracefulShutdown(workerService)

	// Setup HTTP server
	setupServer(workerService)
}

func setupGracefulShutdown(workerService *worker.WorkerService) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")

		workerService.Stop()
		database.Close()

		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(workerService *worker.WorkerService) {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers around the shared leaderboard service
	leaderboardService := workerService.GetLeaderboardService()
	contributionService := services.NewContributionService(database.DB)
	verifier := auth.NewAdminVerifier()

	leaderboardHandler := handlers.NewLeaderboardHandler(database.DB, leaderboardService)
	adminHandler := handlers.NewAdminHandler(database.DB, leaderboardService, contributionService, verifier)
	docsHandler := handlers.NewDocsHandler()
	liveHandler := handlers.NewLiveHandler(topNFromEnv())

	// Push fresh standings to websocket clients after every recompute
	leaderboardService.SetBroadcast(liveHandler.Broadcast)

	// Health check
	r.GET("/health", leaderboardHandler.HealthCheck)

	// Serve Markdown documentation as HTML
	r.GET("/doc/:doc", docsHandler.ServeMarkdownAsHTML)

	// Live leaderboard feed for the display bot
	r.GET("/ws/leaderboard", liveHandler.Serve)

	// API routes
	api := r.Group("/api")
	{
		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.GetLeaderboard)
			leaderboard.GET("/as-of", leaderboardHandler.GetAsOf)
			leaderboard.GET("/:user", leaderboardHandler.GetAmbassador)
			leaderboard.GET("/:user/history", leaderboardHandler.GetAmbassadorHistory)
		}
	}

	// Admin routes (bearer token protected)
	admin := r.Group("/admin", adminHandler.AdminAuth())
	{
		admin.GET("/", adminHandler.Dashboard)
		admin.POST("/recompute", adminHandler.Recompute)
		admin.POST("/snapshot", adminHandler.Snapshot)
		admin.POST("/rebuild-history", adminHandler.RebuildHistory)
		admin.POST("/contributions", adminHandler.RecordContribution)
		admin.GET("/replay/:user", adminHandler.AmbassadorReplay)
	}

	// Get port from environment or default to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func topNFromEnv() int {
	if v := os.Getenv("LIVE_FEED_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 10
}
