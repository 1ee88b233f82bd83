package repository

import (
	"context"
	"time"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// MenteeTaskCount pairs a mentee with a task count for dashboard and
// reminder queries.
type MenteeTaskCount struct {
	MenteeID int64
	Count    int64
}

// TaskRepository defines the interface for task persistence. A task is
// loaded and stored as a whole aggregate: FindByID preloads proof
// shots, comments, attachments and the general comment.
type TaskRepository interface {
	// Create persists a new task with its attachments
	Create(ctx context.Context, task *model.Task) error

	// CreateAll persists a batch of new tasks with their attachments
	CreateAll(ctx context.Context, tasks []*model.Task) error

	// FindByID retrieves a task with all owned children preloaded
	FindByID(ctx context.Context, id int64) (*model.Task, error)

	// FindByMenteeAndDate retrieves a mentee's tasks scheduled for the given date
	FindByMenteeAndDate(ctx context.Context, menteeID int64, date time.Time) ([]*model.Task, error)

	// FindByMenteeBetween retrieves a mentee's tasks scheduled within [start, end]
	FindByMenteeBetween(ctx context.Context, menteeID int64, start, end time.Time) ([]*model.Task, error)

	// FindByMenteeSubjectBetween narrows FindByMenteeBetween to one subject
	FindByMenteeSubjectBetween(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) ([]*model.Task, error)

	// Update persists changes to the task row itself, not its children
	Update(ctx context.Context, task *model.Task) error

	// Delete removes a task and everything it owns
	Delete(ctx context.Context, id int64) error

	// ReplaceProofShots deletes the task's proof shots (comments included)
	// and inserts the given ones
	ReplaceProofShots(ctx context.Context, taskID int64, shots []model.ProofShot) error

	// ReplaceAttachments swaps the task's worksheets and column links
	ReplaceAttachments(ctx context.Context, taskID int64, worksheets []model.Worksheet, links []model.ColumnLink) error

	// DeleteFeedbackComments removes the task's feedback comments; when
	// draftsOnly is set, confirmed feedback survives
	DeleteFeedbackComments(ctx context.Context, taskID int64, draftsOnly bool) error

	// CreateComments persists new comments
	CreateComments(ctx context.Context, comments []model.Comment) error

	// UpdateComment persists changes to a single comment
	UpdateComment(ctx context.Context, comment *model.Comment) error

	// MarkCommentsRead marks every comment under the task as read by the mentee
	MarkCommentsRead(ctx context.Context, taskID int64) error

	// SaveGeneralComment inserts or updates the task's general comment
	SaveGeneralComment(ctx context.Context, comment *model.GeneralComment) error

	// DeleteGeneralComment removes the task's general comment if present
	DeleteGeneralComment(ctx context.Context, taskID int64) error

	// CountUnsubmittedByMentee counts, per mentee, non-resource tasks
	// scheduled for the date that have no proof shot yet
	CountUnsubmittedByMentee(ctx context.Context, date time.Time) ([]MenteeTaskCount, error)

	// CountFeedbackRequired counts, per given mentee, tasks scheduled for
	// the date that were submitted but have no confirmed feedback comment
	CountFeedbackRequired(ctx context.Context, menteeIDs []int64, date time.Time) ([]MenteeTaskCount, error)

	// FindPendingUploadMentees returns the subset of mentees that have a
	// task scheduled for the date with no proof shot uploaded
	FindPendingUploadMentees(ctx context.Context, menteeIDs []int64, date time.Time) ([]int64, error)

	// FindResourcesByMentee lists the mentee's study materials, newest first
	FindResourcesByMentee(ctx context.Context, menteeID int64) ([]*model.Task, error)

	// FindPreviousTasks retrieves the mentee's tasks in the subject
	// scheduled strictly before the date, newest first
	FindPreviousTasks(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) ([]*model.Task, error)

	// FindMostRecentByMentees returns each mentee's latest scheduled task
	FindMostRecentByMentees(ctx context.Context, menteeIDs []int64) ([]*model.Task, error)
}
