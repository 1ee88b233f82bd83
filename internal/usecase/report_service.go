package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// ReportCreateCommand carries a new learning report.
type ReportCreateCommand struct {
	Subject        model.Subject
	StartDate      time.Time
	EndDate        time.Time
	GeneralComment string
	GoodPoints     []string
	BadPoints      []string
}

// ReportService handles learning reports: a mentor's periodic per-subject
// review of one mentee.
type ReportService struct {
	reportRepo repository.LearningReportRepository
	userRepo   repository.UserRepository
	taskRepo   repository.TaskRepository
	notifier   Notifier
	logger     *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.LearningReportRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	notifier Notifier,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		taskRepo:   taskRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// CreateReport publishes a report and notifies the mentee. At most one
// report may exist per (mentee, subject, period).
func (s *ReportService) CreateReport(ctx context.Context, mentorID, menteeID int64, cmd ReportCreateCommand) (*model.LearningReport, error) {
	mentee, err := s.assignedMentee(ctx, mentorID, menteeID)
	if err != nil {
		return nil, err
	}

	if err := validateSubject(cmd.Subject); err != nil {
		return nil, err
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return nil, apperrors.NewValidation("end date must not precede start date")
	}

	general := strings.TrimSpace(cmd.GeneralComment)
	if general == "" {
		return nil, apperrors.NewValidation("general comment is required")
	}

	comments, err := buildReportComments(cmd.GoodPoints, cmd.BadPoints)
	if err != nil {
		return nil, err
	}

	exists, err := s.reportRepo.ExistsForPeriod(ctx, menteeID, cmd.Subject, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewIllegalState("report already exists for this period")
	}

	report := &model.LearningReport{
		MenteeID:       menteeID,
		MentorID:       mentorID,
		Subject:        cmd.Subject,
		StartDate:      datatypes.Date(cmd.StartDate),
		EndDate:        datatypes.Date(cmd.EndDate),
		GeneralComment: general,
		Comments:       comments,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if err := s.notifyReport(ctx, mentorID, mentee, report, cmd.StartDate); err != nil {
		return nil, err
	}

	s.logger.Info("Learning report published",
		zap.Int64("mentor_id", mentorID),
		zap.Int64("mentee_id", menteeID),
		zap.String("subject", string(cmd.Subject)))

	return report, nil
}

// GetReport returns the mentee's report for the subject over exactly
// this period, for the assigned mentor.
func (s *ReportService) GetReport(ctx context.Context, mentorID, menteeID int64, subject model.Subject, start, end time.Time) (*model.LearningReport, error) {
	if _, err := s.assignedMentee(ctx, mentorID, menteeID); err != nil {
		return nil, err
	}
	return s.reportRepo.FindByPeriod(ctx, menteeID, subject, start, end)
}

// ReportExists tells the assigned mentor whether a report has already
// been written for the period.
func (s *ReportService) ReportExists(ctx context.Context, mentorID, menteeID int64, subject model.Subject, start, end time.Time) (bool, error) {
	if _, err := s.assignedMentee(ctx, mentorID, menteeID); err != nil {
		return false, err
	}
	return s.reportRepo.ExistsForPeriod(ctx, menteeID, subject, start, end)
}

// GetReceivedReport returns the mentee's own report whose period
// contains the date, together with the tasks it covers.
func (s *ReportService) GetReceivedReport(ctx context.Context, menteeID int64, subject model.Subject, date time.Time) (*model.LearningReport, []*model.Task, error) {
	report, err := s.reportRepo.FindBySubjectContainingDate(ctx, menteeID, subject, date)
	if err != nil {
		return nil, nil, err
	}
	return s.withCoveredTasks(ctx, menteeID, report)
}

// GetReceivedReportByID returns the mentee's own report by id with the
// tasks it covers.
func (s *ReportService) GetReceivedReportByID(ctx context.Context, menteeID, reportID int64) (*model.LearningReport, []*model.Task, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, nil, err
	}
	if report.MenteeID != menteeID {
		return nil, nil, apperrors.NewAccessDenied("report belongs to another mentee")
	}
	return s.withCoveredTasks(ctx, menteeID, report)
}

// GetReceivedReports returns every report written for the mentee,
// newest period first.
func (s *ReportService) GetReceivedReports(ctx context.Context, menteeID int64) ([]*model.LearningReport, error) {
	return s.reportRepo.FindByMentee(ctx, menteeID)
}

// CountReceivedReports counts the reports written for the mentee.
func (s *ReportService) CountReceivedReports(ctx context.Context, menteeID int64) (int64, error) {
	return s.reportRepo.CountByMentee(ctx, menteeID)
}

func (s *ReportService) withCoveredTasks(ctx context.Context, menteeID int64, report *model.LearningReport) (*model.LearningReport, []*model.Task, error) {
	tasks, err := s.taskRepo.FindByMenteeSubjectBetween(ctx, menteeID, report.Subject,
		time.Time(report.StartDate), time.Time(report.EndDate))
	if err != nil {
		return nil, nil, err
	}
	return report, tasks, nil
}

func (s *ReportService) notifyReport(ctx context.Context, mentorID int64, mentee *model.User, report *model.LearningReport, start time.Time) error {
	mentorName := "멘토"
	if mentor, err := s.userRepo.FindByID(ctx, mentorID); err == nil && mentor.Name != "" {
		mentorName = mentor.Name
	}

	reportID := report.ID
	return s.notifier.Notify(ctx, mentee, model.Notification{
		LearningReportID: &reportID,
		Type:             model.NotificationTypeLearningReport,
		Title:            "학습 리포트 도착",
		Message:          fmt.Sprintf("%s 멘토의 %s 학습리포트가 도착했어요!", mentorName, weekLabel(start)),
	})
}

func (s *ReportService) assignedMentee(ctx context.Context, mentorID, menteeID int64) (*model.User, error) {
	mentee, err := s.userRepo.FindByID(ctx, menteeID)
	if err != nil {
		return nil, err
	}
	if mentee.MentorID == nil || *mentee.MentorID != mentorID {
		return nil, apperrors.NewAccessDenied("mentee is not assigned to this mentor")
	}
	return mentee, nil
}

func buildReportComments(goodPoints, badPoints []string) ([]model.ReportComment, error) {
	if len(goodPoints) == 0 || len(badPoints) == 0 {
		return nil, apperrors.NewValidation("good points and bad points are required")
	}

	var comments []model.ReportComment
	for _, p := range goodPoints {
		content := strings.TrimSpace(p)
		if content == "" {
			return nil, apperrors.NewValidation("report comment content is required")
		}
		comments = append(comments, model.ReportComment{Kind: model.ReportCommentGood, Content: content})
	}
	for _, p := range badPoints {
		content := strings.TrimSpace(p)
		if content == "" {
			return nil, apperrors.NewValidation("report comment content is required")
		}
		comments = append(comments, model.ReportComment{Kind: model.ReportCommentBad, Content: content})
	}
	return comments, nil
}

// weekLabel renders a period start as "3월 2주차".
func weekLabel(start time.Time) string {
	month := int(start.Month())
	week := (start.Day()-1)/7 + 1
	return fmt.Sprintf("%d월 %d주차", month, week)
}
