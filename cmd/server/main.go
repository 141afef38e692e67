package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"feedbackboard/internal/api"
	"feedbackboard/internal/config"
	"feedbackboard/internal/models"
	"feedbackboard/internal/session"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.FromEnv()

	// Configure GORM logger to ignore "record not found" errors
	// Missing records are an expected outcome of profile and feedback lookups
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	server := api.NewServer(db, sessions)

	log.Printf("Starting HTTP server on 0.0.0.0:%s", cfg.HTTPPort)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.HTTPPort, server.GetRouter()); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
