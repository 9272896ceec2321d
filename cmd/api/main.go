package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.globetrek.app/internal/db"
	firebaseutil "io.globetrek.app/internal/firebase"
	"io.globetrek.app/internal/handlers"
	"io.globetrek.app/internal/journal"
	"io.globetrek.app/internal/middleware"
	"io.globetrek.app/internal/storage"
	"io.globetrek.app/internal/workflow"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize structured logging
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Initialize Firebase
	firebaseApp, err := firebaseutil.InitFirebase()
	if err != nil {
		logger.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize Cloudinary media storage
	mediaStore, err := storage.NewMediaStore()
	if err != nil {
		logger.Fatalf("Failed to initialize media storage: %v", err)
	}

	// Wire the journal store and submission workflow
	journalStore := journal.NewStore(postgresDB, redisClient, logger)
	submitter := workflow.NewSubmitter(mediaStore, journalStore)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware for the web client
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(firebaseApp, postgresDB, redisClient, journalStore, logger)
	journalHandler := handlers.NewJournalHandler(submitter, journalStore, logger)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/create-account", authHandler.CreateAccount)
			auth.POST("/login", authHandler.Login)
			auth.POST("/delete-account", middleware.AuthMiddleware(firebaseApp, redisClient), authHandler.DeleteAccount)
		}

		// Protected journal routes
		journals := v1.Group("/journals")
		journals.Use(middleware.AuthMiddleware(firebaseApp, redisClient))
		{
			journals.POST("/create", journalHandler.CreateJournal)
			journals.POST("/get", journalHandler.GetJournal)
			journals.POST("/list", journalHandler.ListJournals)
			journals.POST("/stats", journalHandler.GetTravelStats)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start the nightly stats cache warmer
	statsWarmer, err := handlers.NewStatsWarmer(journalStore, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize stats warmer: %v", err)
	}
	statsWarmer.Start()
	defer statsWarmer.Stop()

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + getEnvOrDefault("PORT", "9091"),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
