package repository

import (
	"context"
	"time"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// LearningReportRepository defines the interface for report persistence
type LearningReportRepository interface {
	// Create persists a new report with its comments
	Create(ctx context.Context, report *model.LearningReport) error

	// FindByID retrieves a report with its comments preloaded
	FindByID(ctx context.Context, id int64) (*model.LearningReport, error)

	// FindByMentee retrieves the mentee's reports, newest period first
	FindByMentee(ctx context.Context, menteeID int64) ([]*model.LearningReport, error)

	// FindByPeriod retrieves the mentee's report for the subject over
	// exactly this period
	FindByPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (*model.LearningReport, error)

	// FindBySubjectContainingDate retrieves the mentee's report for the
	// subject whose period contains the given date
	FindBySubjectContainingDate(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) (*model.LearningReport, error)

	// CountByMentee counts the mentee's reports
	CountByMentee(ctx context.Context, menteeID int64) (int64, error)

	// ExistsForPeriod reports whether the mentee already has a report for
	// the subject over exactly this period
	ExistsForPeriod(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) (bool, error)
}
