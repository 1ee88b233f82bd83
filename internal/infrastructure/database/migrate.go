package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.User{},
		&model.File{},
		&model.Task{},
		&model.Worksheet{},
		&model.ColumnLink{},
		&model.ProofShot{},
		&model.Comment{},
		&model.GeneralComment{},
		&model.Notification{},
		&model.LearningReport{},
		&model.ReportComment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes GORM's auto-migration doesn't cover
func createCustomIndexes(db *gorm.DB) error {
	// Scheduled-date lookups resolve the due date with a start-date fallback
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks (mentee_id, COALESCE(due_date, start_date))`).Error; err != nil {
		return err
	}

	// Unread-badge counting
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_notifications_new ON notifications (receiver_id) WHERE status = 'NEW'`).Error; err != nil {
		return err
	}

	return nil
}
