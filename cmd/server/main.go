package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"famtask/internal/api"
	"famtask/internal/config"
	"famtask/internal/db"
	"famtask/internal/extract"
	"famtask/internal/pipeline"
	"famtask/internal/repository"
	"famtask/internal/stt"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the pipeline: STT provider from env, extractor from the
	// OpenAI key (rule engine when absent)
	provider, err := stt.CreateProvider()
	if err != nil {
		log.Fatalf("Failed to create STT provider: %v", err)
	}

	extractor := extract.CreateExtractor(cfg.OpenAIKey)
	api.InitPipeline(pipeline.New(provider, extractor))

	// Initialize database if DATABASE_URL is provided
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Continuing without database.", err)
		} else {
			log.Printf("Creating PostgreSQL task repository...")
			api.InitTaskRepository(repository.NewPostgresRepository())
			log.Println("Database and repository initialized successfully")
		}
	} else {
		log.Println("DATABASE_URL not set, running without database (in-memory storage only)")
	}

	r := gin.Default()

	// Add CORS middleware for mobile app
	r.Use(corsMiddleware())

	// Register routes
	api.RegisterRoutes(r)

	log.Printf("FamTask voice pipeline running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for mobile app
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
