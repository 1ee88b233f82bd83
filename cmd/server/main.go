package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goodspace/oneshot-server/internal/config"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database"
	httpServer "github.com/goodspace/oneshot-server/internal/infrastructure/http"
	"github.com/goodspace/oneshot-server/internal/infrastructure/push"
	"github.com/goodspace/oneshot-server/internal/infrastructure/scheduler"
	"github.com/goodspace/oneshot-server/internal/infrastructure/storage"
	"github.com/goodspace/oneshot-server/internal/usecase"
	"github.com/goodspace/oneshot-server/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize file storage
	s3Storage, err := storage.NewS3Storage(ctx, &cfg.S3, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize S3 storage", zap.Error(err))
	}

	// Initialize push delivery. A nil sender keeps notifications
	// persist-only.
	var pushSender usecase.PushSender
	if sender := push.NewFCMSender(&cfg.Push, zapLogger); sender != nil {
		pushSender = sender
	}

	// Initialize reminder scheduler
	location, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		zapLogger.Fatal("Failed to load reminder timezone", zap.Error(err))
	}
	notificationService := usecase.NewNotificationService(repos.Notification, repos.User, pushSender, zapLogger)
	reminderService := usecase.NewReminderService(repos.Task, repos.User, notificationService, zapLogger)
	sched, err := scheduler.New(&cfg.Reminder, reminderService, location, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize scheduler", zap.Error(err))
	}
	if sched != nil {
		sched.Start()
		defer sched.Stop()
	}

	// Initialize server
	httpSrv := httpServer.NewServer(cfg, zapLogger, db, repos, s3Storage, pushSender)

	// Start server
	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
