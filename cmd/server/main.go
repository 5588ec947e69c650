package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/docs"
	"github.com/jeandelest/Queen-Back-Office/internal/config"
	"github.com/jeandelest/Queen-Back-Office/internal/database"
	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/router"
	"github.com/jeandelest/Queen-Back-Office/internal/services"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
	"github.com/jeandelest/Queen-Back-Office/internal/utils"
	"github.com/jeandelest/Queen-Back-Office/internal/xmljson"
)

// @title Queen Back Office API
// @version 1.0
// @description Integration of campaign contexts and survey unit samples

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token

const (
	release  = "queen-back-office@1.0.0"
	cacheTTL = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Swagger base path dynamically
	docs.SwaggerInfo.BasePath = cfg.BasePath

	configureLogging(cfg.LogLevel)

	if err := utils.InitSentry(cfg.SentryDSN, release); err != nil {
		logrus.Fatalf("Failed to initialize Sentry: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logrus.Warnf("Redis not reachable at %s, reads fall back to the database: %v", cfg.Redis.Addr, err)
	} else {
		logrus.Info("Redis cache connected")
	}
	cancelPing()

	invalidators := cache.MultiInvalidator{cache.NewRedisInvalidator(redisClient, cfg.Redis.Prefix)}

	// Other instances keep local caches, they get invalidations through RabbitMQ
	rabbitMQService, err := services.NewRabbitMQService(cfg.RabbitMQ)
	if err != nil {
		logrus.Warnf("Failed to initialize RabbitMQ, cache invalidations stay local: %v", err)
	} else {
		logrus.Info("RabbitMQ service initialized")
		defer rabbitMQService.Close()
		invalidators = append(invalidators, cache.NewBroadcastInvalidator(rabbitMQService, rabbitMQService.Queue()))
	}

	validator := integration.NewSchemaValidator(integration.NewEmbeddedSchemaLoader())
	defer validator.Close()

	sampleReader := sample.NewReader(
		validator,
		repository.NewCampaignRepository(db),
		xmljson.NewLunaticDataConverter(cfg.TempDir),
	)

	r := router.SetupRouter(router.Dependencies{
		Integrator:  integration.NewService(integration.NewGormTransactor(db), validator),
		Ingester:    sample.NewService(db, sampleReader),
		References:  services.NewReferenceService(db, cache.NewReadThrough(redisClient, cfg.Redis.Prefix, cacheTTL)),
		Invalidator: invalidators,
		Files:       services.NewFileService(cfg.TempDir),
		JWTSecret:   cfg.JWTSecret,
		AdminRole:   cfg.AdminRole,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", cfg.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logrus.Info("Server exited properly")
}

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
