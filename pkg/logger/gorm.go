package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts gorm's logger.Interface onto zap, with a slow-query
// threshold and an option to suppress ErrRecordNotFound noise.
type GormLogger struct {
	logger                    *zap.Logger
	logLevel                  gormlogger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
}

// NewGormLogger creates a gorm logger writing through log.
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, ignoreRecordNotFoundError bool) *GormLogger {
	return &GormLogger{
		logger:                    log,
		logLevel:                  level,
		slowThreshold:             slowThreshold,
		ignoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// LogMode returns a copy of the logger with the level changed.
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.logLevel = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.logLevel < gormlogger.Info {
		return
	}
	g.logger.Sugar().Infof(msg, data...)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.logLevel < gormlogger.Warn {
		return
	}
	g.logger.Sugar().Warnf(msg, data...)
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.logLevel < gormlogger.Error {
		return
	}
	g.logger.Sugar().Errorf(msg, data...)
}

// Trace logs elapsed time, SQL and affected rows for every query.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && (!g.ignoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)) {
		g.logger.Error("gorm query failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if g.slowThreshold != 0 && elapsed > g.slowThreshold {
		g.logger.Warn("gorm slow query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
		return
	}

	if g.logLevel >= gormlogger.Info {
		g.logger.Info("gorm query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	}
}
