package usecase

import (
	"context"
	"fmt"
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

// MentorTaskCreateCommand assigns tasks to a mentee. One task is created
// for every (due date, name) pair; the attachments are shared by all of
// them.
type MentorTaskCreateCommand struct {
	Subject          model.Subject
	Names            []string
	DueDates         []time.Time
	GoalMinutes      int
	WorksheetFileIDs []uuid.UUID
	ColumnLinks      []string
}

// MentorTaskUpdateCommand edits one mentor-assigned task. Attachments
// are replaced wholesale.
type MentorTaskUpdateCommand struct {
	Subject          model.Subject
	Name             string
	GoalMinutes      int
	WorksheetFileIDs []uuid.UUID
	ColumnLinks      []string
}

// FeedbackCommentInput is one annotated feedback remark.
type FeedbackCommentInput struct {
	Content  string
	Starred  bool
	PercentX float64
	PercentY float64
}

// ProofShotFeedback carries the feedback comments for one proof shot.
type ProofShotFeedback struct {
	ProofShotID int64
	Comments    []FeedbackCommentInput
}

// AnswerInput answers one mentee question.
type AnswerInput struct {
	CommentID int64
	Content   string
}

// FeedbackCommand is the full feedback a mentor writes for one task.
type FeedbackCommand struct {
	GeneralComment string
	ProofShots     []ProofShotFeedback
	Answers        []AnswerInput
}

// MentorTaskService handles the mentor side: assigning tasks, reviewing
// submissions and the draft/registered feedback workflow.
type MentorTaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	fileRepo repository.FileRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewMentorTaskService creates a new mentor task service
func NewMentorTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
	notifier Notifier,
	logger *zap.Logger,
) *MentorTaskService {
	return &MentorTaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		fileRepo: fileRepo,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateTasks assigns the cartesian product of due dates and names to
// the mentee. Dates must be unique and not in the past.
func (s *MentorTaskService) CreateTasks(ctx context.Context, mentorID, menteeID int64, cmd MentorTaskCreateCommand) ([]*model.Task, error) {
	if _, err := s.assignedMentee(ctx, mentorID, menteeID); err != nil {
		return nil, err
	}

	if err := validateSubject(cmd.Subject); err != nil {
		return nil, err
	}
	if cmd.GoalMinutes <= 0 {
		return nil, apperrors.NewValidation("goal minutes must be positive")
	}

	if len(cmd.DueDates) == 0 {
		return nil, apperrors.NewValidation("at least one due date is required")
	}
	// ISO dates compare correctly as strings, which sidesteps the zone
	// of the incoming time values.
	today := time.Now().Format("2006-01-02")
	seen := make(map[string]bool, len(cmd.DueDates))
	for _, d := range cmd.DueDates {
		key := d.Format("2006-01-02")
		if seen[key] {
			return nil, apperrors.NewValidation("due dates must be unique")
		}
		seen[key] = true
		if key < today {
			return nil, apperrors.NewValidation("due date cannot be in the past")
		}
	}

	if len(cmd.Names) == 0 {
		return nil, apperrors.NewValidation("at least one task name is required")
	}
	names := make([]string, 0, len(cmd.Names))
	for _, name := range cmd.Names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, apperrors.NewValidation("task name is required")
		}
		if utf8.RuneCountInString(trimmed) > model.MaxTaskNameLength {
			return nil, apperrors.NewValidation("task name is too long")
		}
		names = append(names, trimmed)
	}

	worksheets, links, err := s.resolveAttachments(ctx, cmd.WorksheetFileIDs, cmd.ColumnLinks)
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.Task, 0, len(cmd.DueDates)*len(names))
	for _, d := range cmd.DueDates {
		due := datatypes.Date(d)
		for _, name := range names {
			tasks = append(tasks, &model.Task{
				MenteeID:    menteeID,
				Subject:     cmd.Subject,
				Name:        name,
				DueDate:     &due,
				GoalMinutes: cmd.GoalMinutes,
				CreatedBy:   model.RoleMentor,
				Worksheets:  cloneWorksheets(worksheets),
				ColumnLinks: cloneColumnLinks(links),
			})
		}
	}

	if err := s.taskRepo.CreateAll(ctx, tasks); err != nil {
		return nil, err
	}

	s.logger.Info("Tasks assigned",
		zap.Int64("mentor_id", mentorID),
		zap.Int64("mentee_id", menteeID),
		zap.Int("count", len(tasks)))

	return tasks, nil
}

// UpdateTask edits one of the mentee's tasks and replaces its
// attachments.
func (s *MentorTaskService) UpdateTask(ctx context.Context, mentorID, taskID int64, cmd MentorTaskUpdateCommand) (*model.Task, error) {
	task, err := s.supervisedTask(ctx, mentorID, taskID)
	if err != nil {
		return nil, err
	}

	name, err := validateTaskFields(cmd.Subject, cmd.Name, cmd.GoalMinutes)
	if err != nil {
		return nil, err
	}

	task.Subject = cmd.Subject
	task.Name = name
	task.GoalMinutes = cmd.GoalMinutes
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	worksheets, links, err := s.resolveAttachments(ctx, cmd.WorksheetFileIDs, cmd.ColumnLinks)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.ReplaceAttachments(ctx, task.ID, worksheets, links); err != nil {
		return nil, err
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// DeleteTask removes a mentor-assigned task.
func (s *MentorTaskService) DeleteTask(ctx context.Context, mentorID, taskID int64) error {
	task, err := s.supervisedTask(ctx, mentorID, taskID)
	if err != nil {
		return err
	}
	if task.CreatedBy != model.RoleMentor {
		return apperrors.NewIllegalState("cannot delete a mentee-created task")
	}

	return s.taskRepo.Delete(ctx, task.ID)
}

// GetMenteeTasks returns one assigned mentee's tasks scheduled within
// the period.
func (s *MentorTaskService) GetMenteeTasks(ctx context.Context, mentorID, menteeID int64, start, end time.Time) ([]*model.Task, error) {
	if _, err := s.assignedMentee(ctx, mentorID, menteeID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.NewValidation("end date must not precede start date")
	}
	return s.taskRepo.FindByMenteeBetween(ctx, menteeID, start, end)
}

// GetTask returns one supervised task with its full submission for
// review.
func (s *MentorTaskService) GetTask(ctx context.Context, mentorID, taskID int64) (*model.Task, error) {
	return s.supervisedTask(ctx, mentorID, taskID)
}

// SaveDraftFeedback replaces the mentor's draft: draft comments are
// rewritten from scratch, the general comment's draft text and the
// question answers' draft text are updated. Registered feedback is
// untouched, so a draft can be reworked after publication too.
func (s *MentorTaskService) SaveDraftFeedback(ctx context.Context, mentorID, taskID int64, cmd FeedbackCommand) error {
	task, err := s.supervisedTask(ctx, mentorID, taskID)
	if err != nil {
		return err
	}

	general := strings.TrimSpace(cmd.GeneralComment)
	if utf8.RuneCountInString(general) > model.MaxGeneralCommentLength {
		return apperrors.NewValidation("general comment is too long")
	}

	if err := s.taskRepo.DeleteFeedbackComments(ctx, task.ID, true); err != nil {
		return err
	}

	gc := task.GeneralComment
	if gc == nil && general != "" {
		gc = &model.GeneralComment{TaskID: task.ID}
	}
	if gc != nil {
		gc.Text.SetDraft(general)
		if err := s.taskRepo.SaveGeneralComment(ctx, gc); err != nil {
			return err
		}
	}

	comments, err := buildFeedbackComments(task, cmd.ProofShots, model.RegisterStatusTemporary, false)
	if err != nil {
		return err
	}
	if err := s.taskRepo.CreateComments(ctx, comments); err != nil {
		return err
	}

	return s.applyAnswers(ctx, task, cmd.Answers, false)
}

// SaveFeedback registers the feedback: all previous feedback comments
// (drafts included) are replaced by confirmed ones, the general comment
// and answers are finalized, and the mentee is notified.
func (s *MentorTaskService) SaveFeedback(ctx context.Context, mentorID, taskID int64, cmd FeedbackCommand) error {
	task, err := s.supervisedTask(ctx, mentorID, taskID)
	if err != nil {
		return err
	}

	general := strings.TrimSpace(cmd.GeneralComment)
	if general == "" {
		return apperrors.NewValidation("general comment is required")
	}
	if utf8.RuneCountInString(general) > model.MaxGeneralCommentLength {
		return apperrors.NewValidation("general comment is too long")
	}

	if err := s.taskRepo.DeleteFeedbackComments(ctx, task.ID, false); err != nil {
		return err
	}

	gc := task.GeneralComment
	if gc == nil {
		gc = &model.GeneralComment{TaskID: task.ID}
	}
	gc.Text.Confirm(general)
	if err := s.taskRepo.SaveGeneralComment(ctx, gc); err != nil {
		return err
	}

	comments, err := buildFeedbackComments(task, cmd.ProofShots, model.RegisterStatusConfirmed, true)
	if err != nil {
		return err
	}
	if err := s.taskRepo.CreateComments(ctx, comments); err != nil {
		return err
	}

	if err := s.clearDraftAnswers(ctx, task); err != nil {
		return err
	}
	if err := s.applyAnswers(ctx, task, cmd.Answers, true); err != nil {
		return err
	}

	return s.notifyFeedback(ctx, mentorID, task)
}

// DeleteFeedback removes every feedback comment and the general comment.
// Calling it on a task without feedback is a no-op.
func (s *MentorTaskService) DeleteFeedback(ctx context.Context, mentorID, taskID int64) error {
	task, err := s.supervisedTask(ctx, mentorID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.DeleteFeedbackComments(ctx, task.ID, false); err != nil {
		return err
	}
	return s.taskRepo.DeleteGeneralComment(ctx, task.ID)
}

func (s *MentorTaskService) notifyFeedback(ctx context.Context, mentorID int64, task *model.Task) error {
	mentee := task.Mentee
	if mentee == nil {
		var err error
		mentee, err = s.userRepo.FindByID(ctx, task.MenteeID)
		if err != nil {
			return err
		}
	}

	mentorName := "멘토"
	if mentor, err := s.userRepo.FindByID(ctx, mentorID); err == nil && mentor.Name != "" {
		mentorName = mentor.Name
	}

	taskID := task.ID
	return s.notifier.Notify(ctx, mentee, model.Notification{
		TaskID:  &taskID,
		Type:    model.NotificationTypeFeedback,
		Title:   "피드백 도착",
		Message: fmt.Sprintf("할 일 '%s'에 멘토 %s의 피드백이 달렸어요!", task.Name, mentorName),
	})
}

func (s *MentorTaskService) clearDraftAnswers(ctx context.Context, task *model.Task) error {
	for i := range task.ProofShots {
		for j := range task.ProofShots[i].Comments {
			c := &task.ProofShots[i].Comments[j]
			if c.IsQuestion() && c.Answer.Draft != nil {
				c.Answer.ClearDraft()
				if err := s.taskRepo.UpdateComment(ctx, c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *MentorTaskService) applyAnswers(ctx context.Context, task *model.Task, answers []AnswerInput, final bool) error {
	for _, a := range answers {
		comment := findQuestionComment(task, a.CommentID)
		if comment == nil {
			return apperrors.NewNotFound("question comment not found")
		}

		content := strings.TrimSpace(a.Content)
		if final {
			if content == "" {
				return apperrors.NewValidation("answer content is required")
			}
			comment.Answer.Confirm(content)
		} else {
			comment.Answer.SetDraft(content)
		}

		if err := s.taskRepo.UpdateComment(ctx, comment); err != nil {
			return err
		}
	}
	return nil
}

func (s *MentorTaskService) resolveAttachments(ctx context.Context, fileIDs []uuid.UUID, rawLinks []string) ([]model.Worksheet, []model.ColumnLink, error) {
	var worksheets []model.Worksheet
	if len(fileIDs) > 0 {
		// Files that have disappeared are skipped rather than failing
		// the whole batch.
		files, err := s.fileRepo.FindByIDs(ctx, fileIDs)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range files {
			worksheets = append(worksheets, model.Worksheet{FileID: f.ID})
		}
	}

	var links []model.ColumnLink
	for _, raw := range rawLinks {
		link := strings.TrimSpace(raw)
		if link == "" {
			continue
		}
		links = append(links, model.ColumnLink{Link: link})
	}

	return worksheets, links, nil
}

// supervisedTask loads the task and checks its mentee is assigned to
// the mentor.
func (s *MentorTaskService) supervisedTask(ctx context.Context, mentorID, taskID int64) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsResource {
		return nil, apperrors.NewNotFound("task not found")
	}

	mentee := task.Mentee
	if mentee == nil {
		mentee, err = s.userRepo.FindByID(ctx, task.MenteeID)
		if err != nil {
			return nil, err
		}
		task.Mentee = mentee
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentorID {
		return nil, apperrors.NewAccessDenied("mentee is not assigned to this mentor")
	}

	return task, nil
}

func (s *MentorTaskService) assignedMentee(ctx context.Context, mentorID, menteeID int64) (*model.User, error) {
	mentee, err := s.userRepo.FindByID(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentorID {
		return nil, apperrors.NewAccessDenied("mentee is not assigned to this mentor")
	}
	return mentee, nil
}

// buildFeedbackComments numbers comments 1..n per proof shot in request
// order.
func buildFeedbackComments(task *model.Task, shots []ProofShotFeedback, status model.RegisterStatus, requireContent bool) ([]model.Comment, error) {
	var comments []model.Comment
	for _, shot := range shots {
		proofShot := task.FindProofShot(shot.ProofShotID)
		if proofShot == nil {
			return nil, apperrors.NewNotFound("proof shot not found")
		}

		for i, f := range shot.Comments {
			content := strings.TrimSpace(f.Content)
			if requireContent && content == "" {
				return nil, apperrors.NewValidation("feedback content is required")
			}

			c := model.NewFeedbackComment(content, f.Starred, status, model.Annotation{
				Number:   i + 1,
				PercentX: f.PercentX,
				PercentY: f.PercentY,
			})
			c.ProofShotID = proofShot.ID
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func findQuestionComment(task *model.Task, commentID int64) *model.Comment {
	for i := range task.ProofShots {
		for j := range task.ProofShots[i].Comments {
			c := &task.ProofShots[i].Comments[j]
			if c.ID == commentID && c.IsQuestion() {
				return c
			}
		}
	}
	return nil
}

func cloneWorksheets(in []model.Worksheet) []model.Worksheet {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Worksheet, len(in))
	copy(out, in)
	return out
}

func cloneColumnLinks(in []model.ColumnLink) []model.ColumnLink {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.ColumnLink, len(in))
	copy(out, in)
	return out
}
