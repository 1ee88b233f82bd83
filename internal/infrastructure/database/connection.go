package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/goodspace/oneshot-server/internal/config"
	"github.com/goodspace/oneshot-server/pkg/logger"
)

// NewConnection opens the postgres connection and sizes the pool.
// Scheduled-date comparisons run in SQL, so the session timezone comes
// from the DSN rather than per-query casts.
func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormLog := logger.NewGormLogger(log, gormlogger.Info, 200*time.Millisecond, true)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                                   gormLog,
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
		// map driver errors onto gorm.Err* so repositories can match them
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.String("timezone", cfg.Timezone),
	)

	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	log.Info("Database connection closed")
	return nil
}
