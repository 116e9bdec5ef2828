// @title           Goal Tracker API
// @version         1.0
// @description     Multi-tenant goal tracking API

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"goal-tracker-api/internal/client"
	"goal-tracker-api/internal/config"
	"goal-tracker-api/internal/database"
	"goal-tracker-api/internal/job"
	"goal-tracker-api/internal/metrics"
	"goal-tracker-api/internal/repository"
	"goal-tracker-api/internal/router"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Goal Tracker API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database; the pod stays alive and retries in the
	// background when the database is not up yet
	dbConfig := database.Config{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}

	onConnect := func(db *gorm.DB) {
		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
		database.RegisterMetricsCallbacks(db, m)
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, onConnect)
	} else {
		database.SetDB(db)
		logger.Info("Database connected successfully")
		onConnect(db)
		statsDone := database.StartDBStatsCollector(db, m)
		defer close(statsDone)
	}

	// Initialize Redis (optional, role cache only)
	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, running without role cache", zap.Error(err))
		redisClient = nil
	}

	// Initialize S3 client
	var s3Client client.S3ClientInterface
	if cfg.S3.Enabled {
		realS3, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, attachment features may be limited", zap.Error(err))
			s3Client = client.NewMockS3Client()
		} else {
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
			s3Client = realS3
		}
	} else {
		logger.Warn("S3 configuration incomplete, attachment uploads use mock URLs")
		s3Client = client.NewMockS3Client()
	}

	// Initialize user client
	var userClient client.UserClient
	if cfg.Services.UserServiceURL != "" {
		userClient = client.NewUserClient(
			cfg.Services.UserServiceURL,
			cfg.Services.InternalAPIKey,
			5*time.Second,
			logger,
			m,
		)
		logger.Info("User client initialized",
			zap.String("user_service_url", cfg.Services.UserServiceURL),
		)
	} else {
		logger.Warn("User service URL not configured, participant validation is off")
		userClient = &client.MockUserClient{}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:            db,
		Redis:         redisClient,
		Logger:        logger,
		Metrics:       m,
		JWTSecret:     cfg.Auth.SecretKey,
		BasePath:      cfg.Server.BasePath,
		S3Client:      s3Client,
		UserClient:    userClient,
		UseRemoteAuth: cfg.Auth.ServiceURL != "",
	})

	// Background jobs: hourly temp-attachment cleanup, stats every minute
	scheduler := cron.New()
	if db != nil {
		attachmentRepo := repository.NewAttachmentRepository(db)
		boardRepo := repository.NewBoardRepository(db)
		goalRepo := repository.NewGoalRepository(db)

		cleanup := job.NewCleanupJob(attachmentRepo, s3Client, logger)
		stats := job.NewStatsJob(boardRepo, goalRepo, m, logger)

		if _, err := scheduler.AddJob("0 * * * *", cleanup); err != nil {
			logger.Error("Failed to schedule cleanup job", zap.Error(err))
		}
		if _, err := scheduler.AddJob("* * * * *", stats); err != nil {
			logger.Error("Failed to schedule stats job", zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("Goal Tracker API started", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
