package main

import (
	"context"                          // context package is needed for Redis operations
	"time_manager/internal/api"        // Custom package for API handlers
	"time_manager/internal/auth"       // Custom package for sessions
	"time_manager/internal/config"     // Custom package for configuration
	"time_manager/internal/db"         // Custom package for the database gateway
	"time_manager/internal/repository" // Custom package for repositories
	"time_manager/internal/service"    // Custom package for business operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database and make sure the schema is current
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, report caching and logout revocation disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build services once and inject them into the handlers
	repos := repository.NewSet(gdb)
	reports := service.NewReports(repos, redisClient)
	router := api.NewRouter(cfg, api.Services{
		Sessions:     auth.NewSessions(repos.Users, cfg.JWTSecret, redisClient, cfg.IsProd),
		Users:        service.NewUsers(repos),
		Activities:   service.NewActivities(repos, reports),
		Categories:   service.NewCategories(repos, reports),
		Habits:       service.NewHabits(repos, reports),
		Projects:     service.NewProjects(repos, reports),
		ActivityLogs: service.NewActivityLogs(repos, reports),
		Relations:    service.NewRelations(repos, reports),
		Reports:      reports,
	})

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := router.Run(":" + cfg.AppPort); err != nil {        // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
