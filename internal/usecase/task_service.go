package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// MenteeTaskCreateCommand carries the fields a mentee supplies when
// planning their own task.
type MenteeTaskCreateCommand struct {
	Subject     model.Subject
	Name        string
	StartDate   time.Time
	GoalMinutes int
}

// MenteeTaskUpdateCommand carries the editable fields of a mentee task.
// Only the name and the goal can change after planning; the subject and
// start date are fixed.
type MenteeTaskUpdateCommand struct {
	Name        string
	GoalMinutes int
}

// QuestionInput is one annotated question pinned to a proof shot.
type QuestionInput struct {
	Content  string
	PercentX float64
	PercentY float64
}

// ProofShotSubmission is one submitted image with its questions.
type ProofShotSubmission struct {
	FileID    uuid.UUID
	Questions []QuestionInput
}

// TaskService handles the mentee side of the task lifecycle: planning,
// submission, completion and reading feedback.
type TaskService struct {
	taskRepo repository.TaskRepository
	fileRepo repository.FileRepository
	logger   *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repository.TaskRepository,
	fileRepo repository.FileRepository,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// GetTasksByDate returns the mentee's tasks scheduled for the date.
func (s *TaskService) GetTasksByDate(ctx context.Context, menteeID int64, date time.Time) ([]*model.Task, error) {
	return s.taskRepo.FindByMenteeAndDate(ctx, menteeID, date)
}

// GetTasksBetween returns the mentee's tasks scheduled within the range.
func (s *TaskService) GetTasksBetween(ctx context.Context, menteeID int64, start, end time.Time) ([]*model.Task, error) {
	if end.Before(start) {
		return nil, apperrors.NewValidation("end date must not precede start date")
	}
	return s.taskRepo.FindByMenteeBetween(ctx, menteeID, start, end)
}

// CreateTask plans a new task for the mentee themselves.
func (s *TaskService) CreateTask(ctx context.Context, menteeID int64, cmd MenteeTaskCreateCommand) (*model.Task, error) {
	name, err := validateTaskFields(cmd.Subject, cmd.Name, cmd.GoalMinutes)
	if err != nil {
		return nil, err
	}

	start := datatypes.Date(cmd.StartDate)
	task := &model.Task{
		MenteeID:    menteeID,
		Subject:     cmd.Subject,
		Name:        name,
		StartDate:   &start,
		GoalMinutes: cmd.GoalMinutes,
		CreatedBy:   model.RoleMentee,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask edits a task the mentee created. Mentor-assigned tasks are
// off limits.
func (s *TaskService) UpdateTask(ctx context.Context, menteeID, taskID int64, cmd MenteeTaskUpdateCommand) (*model.Task, error) {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != model.RoleMentee {
		return nil, apperrors.NewIllegalState("cannot modify a mentor-assigned task")
	}

	name, err := validateTaskName(cmd.Name)
	if err != nil {
		return nil, err
	}
	if cmd.GoalMinutes < 0 {
		return nil, apperrors.NewValidation("goal minutes must not be negative")
	}

	task.Name = name
	task.GoalMinutes = cmd.GoalMinutes

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes a task the mentee created.
func (s *TaskService) DeleteTask(ctx context.Context, menteeID, taskID int64) error {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return err
	}
	if task.CreatedBy != model.RoleMentee {
		return apperrors.NewIllegalState("cannot delete a mentor-assigned task")
	}

	return s.taskRepo.Delete(ctx, task.ID)
}

// SubmitTask replaces the task's proof shots with the given submission.
// An empty submission wipes the existing proof shots. Once feedback has
// been registered the submission is frozen.
func (s *TaskService) SubmitTask(ctx context.Context, menteeID, taskID int64, shots []ProofShotSubmission) (*model.Task, error) {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if task.HasFeedback() {
		return nil, apperrors.NewIllegalState("task already has feedback and cannot be resubmitted")
	}

	proofShots := make([]model.ProofShot, 0, len(shots))
	for _, shot := range shots {
		file, err := s.fileRepo.FindByID(ctx, shot.FileID)
		if err != nil {
			return nil, err
		}

		comments := make([]model.Comment, 0, len(shot.Questions))
		for i, q := range shot.Questions {
			content := strings.TrimSpace(q.Content)
			if content == "" {
				return nil, apperrors.NewValidation("question content is required")
			}
			comments = append(comments, model.NewQuestionComment(content, model.Annotation{
				Number:   i + 1,
				PercentX: q.PercentX,
				PercentY: q.PercentY,
			}))
		}

		proofShots = append(proofShots, model.ProofShot{
			FileID:   file.ID,
			Comments: comments,
		})
	}

	if err := s.taskRepo.ReplaceProofShots(ctx, task.ID, proofShots); err != nil {
		return nil, err
	}

	s.logger.Info("Task submitted",
		zap.Int64("task_id", task.ID),
		zap.Int64("mentee_id", menteeID),
		zap.Int("proof_shots", len(proofShots)))

	return s.taskRepo.FindByID(ctx, task.ID)
}

// UpdateCompleted records actual study minutes and completes the task.
// Tasks scheduled for a future date cannot be completed yet; completing
// an already-completed task overwrites the recorded minutes.
func (s *TaskService) UpdateCompleted(ctx context.Context, menteeID, taskID int64, actualMinutes int, currentDate time.Time) (*model.Task, error) {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if actualMinutes < 0 {
		return nil, apperrors.NewValidation("actual minutes must not be negative")
	}
	if task.IsScheduledAfter(currentDate) {
		return nil, apperrors.NewIllegalState("cannot complete a task scheduled for a future date")
	}

	task.Complete(actualMinutes)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask returns one of the mentee's own tasks with its full detail.
func (s *TaskService) GetTask(ctx context.Context, menteeID, taskID int64) (*model.Task, error) {
	return s.ownedTask(ctx, menteeID, taskID)
}

// GetTaskForSubmit returns the task for the submission view. A task
// with registered feedback can no longer be resubmitted.
func (s *TaskService) GetTaskForSubmit(ctx context.Context, menteeID, taskID int64) (*model.Task, error) {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if task.HasFeedback() {
		return nil, apperrors.NewIllegalState("task already has registered feedback")
	}
	return task, nil
}

// GetTaskFeedback returns the task with its registered feedback and
// marks everything read. Opening the feedback view is what flips the
// per-comment read flags.
func (s *TaskService) GetTaskFeedback(ctx context.Context, menteeID, taskID int64) (*model.Task, error) {
	task, err := s.ownedTask(ctx, menteeID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.HasFeedback() {
		return nil, apperrors.NewNotFound("feedback not found")
	}

	if err := s.taskRepo.MarkCommentsRead(ctx, task.ID); err != nil {
		return nil, err
	}
	task.MarkFeedbackAsRead()

	return task, nil
}

func (s *TaskService) ownedTask(ctx context.Context, menteeID, taskID int64) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	// Study materials live behind their own endpoints and are invisible
	// to the task lifecycle.
	if task.IsResource {
		return nil, apperrors.NewNotFound("task not found")
	}
	if task.MenteeID != menteeID {
		return nil, apperrors.NewAccessDenied("task belongs to another mentee")
	}
	return task, nil
}

func validateTaskFields(subject model.Subject, name string, goalMinutes int) (string, error) {
	if err := validateSubject(subject); err != nil {
		return "", err
	}
	trimmed, err := validateTaskName(name)
	if err != nil {
		return "", err
	}
	if goalMinutes <= 0 {
		return "", apperrors.NewValidation("goal minutes must be positive")
	}
	return trimmed, nil
}

// validateSubject accepts the real study subjects. RESOURCE is the
// legacy material marker and cannot be assigned anymore.
func validateSubject(subject model.Subject) error {
	if !subject.IsValid() || subject == model.SubjectResource {
		return apperrors.NewValidation("invalid subject")
	}
	return nil
}

func validateTaskName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.NewValidation("task name is required")
	}
	if utf8.RuneCountInString(trimmed) > model.MaxTaskNameLength {
		return "", apperrors.NewValidation("task name is too long")
	}
	return trimmed, nil
}
