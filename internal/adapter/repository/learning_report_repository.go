package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
)

// learningReportRepository implements the LearningReportRepository interface
type learningReportRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewLearningReportRepository creates a new learning report repository instance
func NewLearningReportRepository(db *gorm.DB, logger *zap.Logger) domainRepo.LearningReportRepository {
	return &learningReportRepository{
		db:     db,
		logger: logger,
	}
}

func (r *learningReportRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *learningReportRepository) Create(ctx context.Context, report *model.LearningReport) error {
	if err := r.conn(ctx).Create(report).Error; err != nil {
		r.logger.Error("Failed to create learning report",
			zap.Int64("mentee_id", report.MenteeID),
			zap.String("subject", string(report.Subject)),
			zap.Error(err))
		return fmt.Errorf("failed to create learning report: %w", err)
	}
	return nil
}

func (r *learningReportRepository) FindByID(ctx context.Context, id int64) (*model.LearningReport, error) {
	var report model.LearningReport

	err := r.conn(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_comments.id ASC")
		}).
		First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("learning report not found")
		}
		return nil, fmt.Errorf("failed to find learning report: %w", err)
	}

	return &report, nil
}

func (r *learningReportRepository) FindByMentee(ctx context.Context, menteeID int64) ([]*model.LearningReport, error) {
	var reports []*model.LearningReport

	err := r.conn(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_comments.id ASC")
		}).
		Where("mentee_id = ?", menteeID).
		Order("end_date DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find learning reports: %w", err)
	}

	return reports, nil
}

func (r *learningReportRepository) FindByPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (*model.LearningReport, error) {
	var report model.LearningReport

	err := r.conn(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_comments.id ASC")
		}).
		Where("mentee_id = ? AND subject = ? AND start_date = ? AND end_date = ?",
			menteeID, subject, start.Format(dateLayout), end.Format(dateLayout)).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("learning report not found")
		}
		return nil, fmt.Errorf("failed to find learning report: %w", err)
	}

	return &report, nil
}

func (r *learningReportRepository) FindBySubjectContainingDate(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) (*model.LearningReport, error) {
	var report model.LearningReport

	err := r.conn(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("report_comments.id ASC")
		}).
		Where("mentee_id = ? AND subject = ? AND start_date <= ? AND end_date >= ?",
			menteeID, subject, date.Format(dateLayout), date.Format(dateLayout)).
		Order("end_date DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("learning report not found")
		}
		return nil, fmt.Errorf("failed to find learning report: %w", err)
	}

	return &report, nil
}

func (r *learningReportRepository) CountByMentee(ctx context.Context, menteeID int64) (int64, error) {
	var count int64

	err := r.conn(ctx).Model(&model.LearningReport{}).
		Where("mentee_id = ?", menteeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count learning reports: %w", err)
	}

	return count, nil
}

func (r *learningReportRepository) ExistsForPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (bool, error) {
	var count int64

	err := r.conn(ctx).Model(&model.LearningReport{}).
		Where("mentee_id = ? AND subject = ? AND start_date = ? AND end_date = ?",
			menteeID, subject, start.Format(dateLayout), end.Format(dateLayout)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check report period: %w", err)
	}

	return count > 0, nil
}
