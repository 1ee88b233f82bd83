package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
)

const dateLayout = "2006-01-02"

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// conn resolves the request-scoped transaction when one is open.
func (r *taskRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.conn(ctx).Create(task).Error; err != nil {
		r.logger.Error("Failed to create task",
			zap.Int64("mentee_id", task.MenteeID),
			zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) CreateAll(ctx context.Context, tasks []*model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := r.conn(ctx).Create(&tasks).Error; err != nil {
		r.logger.Error("Failed to create tasks",
			zap.Int("count", len(tasks)),
			zap.Error(err))
		return fmt.Errorf("failed to create tasks: %w", err)
	}
	return nil
}

// FindByID loads the full aggregate. Comments come back in annotation
// order so handlers can render them without re-sorting.
func (r *taskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task

	err := r.conn(ctx).
		Preload("Mentee").
		Preload("Worksheets.File").
		Preload("ColumnLinks").
		Preload("ProofShots", func(db *gorm.DB) *gorm.DB {
			return db.Order("proof_shots.id ASC")
		}).
		Preload("ProofShots.File").
		Preload("ProofShots.Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.annotation_number ASC, comments.id ASC")
		}).
		Preload("GeneralComment").
		First(&task, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task not found")
		}
		r.logger.Error("Failed to find task",
			zap.Int64("task_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) FindByMenteeAndDate(ctx context.Context, menteeID int64, date time.Time) ([]*model.Task, error) {
	return r.findByMentee(ctx, menteeID, date, date, "is_resource = ?", false)
}

// FindByMenteeBetween keeps resource rows in range views.
// TODO: decide with the client whether the calendar should hide
// resources too.
func (r *taskRepository) FindByMenteeBetween(ctx context.Context, menteeID int64, start, end time.Time) ([]*model.Task, error) {
	return r.findByMentee(ctx, menteeID, start, end)
}

func (r *taskRepository) FindByMenteeSubjectBetween(ctx context.Context, menteeID int64, subject model.Subject, start, end time.Time) ([]*model.Task, error) {
	return r.findByMentee(ctx, menteeID, start, end, "subject = ?", subject)
}

func (r *taskRepository) findByMentee(ctx context.Context, menteeID int64, start, end time.Time, conds ...interface{}) ([]*model.Task, error) {
	var tasks []*model.Task

	query := r.conn(ctx)
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}

	err := query.
		Preload("Worksheets.File").
		Preload("ColumnLinks").
		Preload("ProofShots", func(db *gorm.DB) *gorm.DB {
			return db.Order("proof_shots.id ASC")
		}).
		Preload("ProofShots.File").
		Preload("ProofShots.Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.annotation_number ASC, comments.id ASC")
		}).
		Preload("GeneralComment").
		Where("mentee_id = ? AND COALESCE(due_date, start_date) BETWEEN ? AND ?",
			menteeID, start.Format(dateLayout), end.Format(dateLayout)).
		Order("created_at ASC").
		Find(&tasks).Error

	if err != nil {
		r.logger.Error("Failed to find tasks by mentee",
			zap.Int64("mentee_id", menteeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	return tasks, nil
}

// Update touches the task row only; children are managed through the
// replace and comment methods.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.conn(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		r.logger.Error("Failed to update task",
			zap.Int64("task_id", task.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	db := r.conn(ctx)

	if err := db.Where("proof_shot_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&model.ProofShot{}).Select("id").Where("task_id = ?", id),
	).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("failed to delete task comments: %w", err)
	}
	if err := db.Where("task_id = ?", id).Delete(&model.ProofShot{}).Error; err != nil {
		return fmt.Errorf("failed to delete proof shots: %w", err)
	}
	if err := db.Where("task_id = ?", id).Delete(&model.Worksheet{}).Error; err != nil {
		return fmt.Errorf("failed to delete worksheets: %w", err)
	}
	if err := db.Where("task_id = ?", id).Delete(&model.ColumnLink{}).Error; err != nil {
		return fmt.Errorf("failed to delete column links: %w", err)
	}
	if err := db.Where("task_id = ?", id).Delete(&model.GeneralComment{}).Error; err != nil {
		return fmt.Errorf("failed to delete general comment: %w", err)
	}
	if err := db.Where("task_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
		return fmt.Errorf("failed to delete task notifications: %w", err)
	}
	if err := db.Delete(&model.Task{}, id).Error; err != nil {
		r.logger.Error("Failed to delete task",
			zap.Int64("task_id", id),
			zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (r *taskRepository) ReplaceProofShots(ctx context.Context, taskID int64, shots []model.ProofShot) error {
	db := r.conn(ctx)

	if err := db.Where("proof_shot_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Model(&model.ProofShot{}).Select("id").Where("task_id = ?", taskID),
	).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("failed to clear comments: %w", err)
	}
	if err := db.Where("task_id = ?", taskID).Delete(&model.ProofShot{}).Error; err != nil {
		return fmt.Errorf("failed to clear proof shots: %w", err)
	}

	if len(shots) == 0 {
		return nil
	}
	for i := range shots {
		shots[i].TaskID = taskID
	}
	if err := db.Create(&shots).Error; err != nil {
		r.logger.Error("Failed to create proof shots",
			zap.Int64("task_id", taskID),
			zap.Error(err))
		return fmt.Errorf("failed to create proof shots: %w", err)
	}

	return nil
}

func (r *taskRepository) ReplaceAttachments(ctx context.Context, taskID int64, worksheets []model.Worksheet, links []model.ColumnLink) error {
	db := r.conn(ctx)

	if err := db.Where("task_id = ?", taskID).Delete(&model.Worksheet{}).Error; err != nil {
		return fmt.Errorf("failed to clear worksheets: %w", err)
	}
	if err := db.Where("task_id = ?", taskID).Delete(&model.ColumnLink{}).Error; err != nil {
		return fmt.Errorf("failed to clear column links: %w", err)
	}

	if len(worksheets) > 0 {
		for i := range worksheets {
			worksheets[i].TaskID = taskID
		}
		if err := db.Create(&worksheets).Error; err != nil {
			return fmt.Errorf("failed to create worksheets: %w", err)
		}
	}
	if len(links) > 0 {
		for i := range links {
			links[i].TaskID = taskID
		}
		if err := db.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to create column links: %w", err)
		}
	}

	return nil
}

func (r *taskRepository) DeleteFeedbackComments(ctx context.Context, taskID int64, draftsOnly bool) error {
	db := r.conn(ctx)

	query := db.Where("type = ?", model.CommentTypeFeedback).
		Where("proof_shot_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&model.ProofShot{}).Select("id").Where("task_id = ?", taskID))
	if draftsOnly {
		query = query.Where("register_status = ?", model.RegisterStatusTemporary)
	}

	if err := query.Delete(&model.Comment{}).Error; err != nil {
		r.logger.Error("Failed to delete feedback comments",
			zap.Int64("task_id", taskID),
			zap.Error(err))
		return fmt.Errorf("failed to delete feedback comments: %w", err)
	}
	return nil
}

func (r *taskRepository) CreateComments(ctx context.Context, comments []model.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	if err := r.conn(ctx).Create(&comments).Error; err != nil {
		r.logger.Error("Failed to create comments",
			zap.Int("count", len(comments)),
			zap.Error(err))
		return fmt.Errorf("failed to create comments: %w", err)
	}
	return nil
}

func (r *taskRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	if err := r.conn(ctx).Save(comment).Error; err != nil {
		r.logger.Error("Failed to update comment",
			zap.Int64("comment_id", comment.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *taskRepository) MarkCommentsRead(ctx context.Context, taskID int64) error {
	db := r.conn(ctx)

	err := db.Model(&model.Comment{}).
		Where("read_by_mentee = ?", false).
		Where("proof_shot_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&model.ProofShot{}).Select("id").Where("task_id = ?", taskID)).
		Update("read_by_mentee", true).Error
	if err != nil {
		r.logger.Error("Failed to mark comments read",
			zap.Int64("task_id", taskID),
			zap.Error(err))
		return fmt.Errorf("failed to mark comments read: %w", err)
	}
	return nil
}

func (r *taskRepository) SaveGeneralComment(ctx context.Context, comment *model.GeneralComment) error {
	err := r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "temporary_content", "updated_at"}),
	}).Create(comment).Error
	if err != nil {
		r.logger.Error("Failed to save general comment",
			zap.Int64("task_id", comment.TaskID),
			zap.Error(err))
		return fmt.Errorf("failed to save general comment: %w", err)
	}
	return nil
}

func (r *taskRepository) DeleteGeneralComment(ctx context.Context, taskID int64) error {
	if err := r.conn(ctx).Where("task_id = ?", taskID).Delete(&model.GeneralComment{}).Error; err != nil {
		return fmt.Errorf("failed to delete general comment: %w", err)
	}
	return nil
}

func (r *taskRepository) CountUnsubmittedByMentee(ctx context.Context, date time.Time) ([]domainRepo.MenteeTaskCount, error) {
	var counts []domainRepo.MenteeTaskCount

	err := r.conn(ctx).Raw(`
		SELECT t.mentee_id AS mentee_id, COUNT(*) AS count
		FROM tasks t
		WHERE COALESCE(t.due_date, t.start_date) = ?
		  AND t.is_resource = FALSE
		  AND NOT EXISTS (SELECT 1 FROM proof_shots p WHERE p.task_id = t.id)
		GROUP BY t.mentee_id`,
		date.Format(dateLayout),
	).Scan(&counts).Error
	if err != nil {
		r.logger.Error("Failed to count unsubmitted tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to count unsubmitted tasks: %w", err)
	}

	return counts, nil
}

func (r *taskRepository) CountFeedbackRequired(ctx context.Context, menteeIDs []int64, date time.Time) ([]domainRepo.MenteeTaskCount, error) {
	if len(menteeIDs) == 0 {
		return nil, nil
	}

	var counts []domainRepo.MenteeTaskCount

	err := r.conn(ctx).Raw(`
		SELECT t.mentee_id AS mentee_id, COUNT(*) AS count
		FROM tasks t
		WHERE t.mentee_id IN ?
		  AND COALESCE(t.due_date, t.start_date) = ?
		  AND t.is_resource = FALSE
		  AND EXISTS (SELECT 1 FROM proof_shots p WHERE p.task_id = t.id)
		  AND NOT EXISTS (
			SELECT 1 FROM comments c
			JOIN proof_shots p ON c.proof_shot_id = p.id
			WHERE p.task_id = t.id AND c.type = ? AND c.register_status = ?)
		GROUP BY t.mentee_id`,
		menteeIDs, date.Format(dateLayout), model.CommentTypeFeedback, model.RegisterStatusConfirmed,
	).Scan(&counts).Error
	if err != nil {
		r.logger.Error("Failed to count feedback-required tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to count feedback-required tasks: %w", err)
	}

	return counts, nil
}

func (r *taskRepository) FindPendingUploadMentees(ctx context.Context, menteeIDs []int64, date time.Time) ([]int64, error) {
	if len(menteeIDs) == 0 {
		return nil, nil
	}

	var ids []int64

	err := r.conn(ctx).Raw(`
		SELECT DISTINCT t.mentee_id
		FROM tasks t
		WHERE t.mentee_id IN ?
		  AND COALESCE(t.due_date, t.start_date) = ?
		  AND t.is_resource = FALSE
		  AND NOT EXISTS (SELECT 1 FROM proof_shots p WHERE p.task_id = t.id)`,
		menteeIDs, date.Format(dateLayout),
	).Scan(&ids).Error
	if err != nil {
		r.logger.Error("Failed to find pending-upload mentees", zap.Error(err))
		return nil, fmt.Errorf("failed to find pending-upload mentees: %w", err)
	}

	return ids, nil
}

// FindResourcesByMentee lists the mentee's study materials, newest
// first.
func (r *taskRepository) FindResourcesByMentee(ctx context.Context, menteeID int64) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.conn(ctx).
		Preload("Worksheets.File").
		Preload("ColumnLinks").
		Where("mentee_id = ? AND is_resource = ?", menteeID, true).
		Order("COALESCE(due_date, start_date) DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to find resources",
			zap.Int64("mentee_id", menteeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find resources: %w", err)
	}

	return tasks, nil
}

// FindPreviousTasks returns the mentee's tasks in the subject scheduled
// strictly before the date.
func (r *taskRepository) FindPreviousTasks(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) ([]*model.Task, error) {
	var tasks []*model.Task

	err := r.conn(ctx).
		Preload("ProofShots", func(db *gorm.DB) *gorm.DB {
			return db.Order("proof_shots.id ASC")
		}).
		Preload("ProofShots.File").
		Where("mentee_id = ? AND subject = ? AND is_resource = ? AND COALESCE(due_date, start_date) < ?",
			menteeID, subject, false, date.Format(dateLayout)).
		Order("COALESCE(due_date, start_date) DESC, id DESC").
		Find(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to find previous tasks",
			zap.Int64("mentee_id", menteeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find previous tasks: %w", err)
	}

	return tasks, nil
}

// FindMostRecentByMentees returns each mentee's latest scheduled task,
// one row per mentee.
func (r *taskRepository) FindMostRecentByMentees(ctx context.Context, menteeIDs []int64) ([]*model.Task, error) {
	if len(menteeIDs) == 0 {
		return nil, nil
	}

	var tasks []*model.Task

	err := r.conn(ctx).Raw(`
		SELECT DISTINCT ON (t.mentee_id) t.*
		FROM tasks t
		WHERE t.mentee_id IN ?
		  AND t.is_resource = FALSE
		ORDER BY t.mentee_id, COALESCE(t.due_date, t.start_date) DESC, t.id DESC`,
		menteeIDs,
	).Scan(&tasks).Error
	if err != nil {
		r.logger.Error("Failed to find recent tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to find recent tasks: %w", err)
	}

	return tasks, nil
}
