package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func newReportService(t *testing.T) (*usecase.ReportService, *MockLearningReportRepository, *MockUserRepository, *MockTaskRepository, *MockNotifier) {
	t.Helper()
	mockReportRepo := new(MockLearningReportRepository)
	mockUserRepo := new(MockUserRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockNotifier := new(MockNotifier)
	service := usecase.NewReportService(mockReportRepo, mockUserRepo, mockTaskRepo, mockNotifier, zap.NewNop())
	return service, mockReportRepo, mockUserRepo, mockTaskRepo, mockNotifier
}

func reportCommand() usecase.ReportCreateCommand {
	return usecase.ReportCreateCommand{
		Subject:        model.SubjectMath,
		StartDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		GeneralComment: "이번 주는 집중력이 좋았습니다",
		GoodPoints:     []string{"오답 정리를 꾸준히 했어요"},
		BadPoints:      []string{"시간 배분 연습이 필요해요"},
	}
}

func TestReportService_CreateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and notifies with the week label", func(t *testing.T) {
		service, mockReportRepo, mockUserRepo, _, mockNotifier := newReportService(t)

		mentee := assignedMentee(10, 1)
		mockUserRepo.On("FindByID", ctx, int64(10)).Return(mentee, nil)
		mockUserRepo.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, Name: "박지훈"}, nil)
		mockReportRepo.On("ExistsForPeriod", ctx, int64(10), model.SubjectMath, mock.Anything, mock.Anything).Return(false, nil)
		mockReportRepo.On("Create", ctx, mock.MatchedBy(func(r *model.LearningReport) bool {
			return r.MenteeID == 10 && r.MentorID == 1 && len(r.Comments) == 2 &&
				r.Comments[0].Kind == model.ReportCommentGood &&
				r.Comments[1].Kind == model.ReportCommentBad
		})).Return(nil)
		mockNotifier.On("Notify", ctx, mentee, mock.MatchedBy(func(n model.Notification) bool {
			// 2026-03-09 falls in the second week of March
			return n.Type == model.NotificationTypeLearningReport &&
				n.Title == "학습 리포트 도착" &&
				n.Message == "박지훈 멘토의 3월 2주차 학습리포트가 도착했어요!"
		})).Return(nil)

		report, err := service.CreateReport(ctx, 1, 10, reportCommand())

		assert.NoError(t, err)
		assert.Equal(t, model.SubjectMath, report.Subject)
		mockReportRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("rejects a duplicate period", func(t *testing.T) {
		service, mockReportRepo, mockUserRepo, _, mockNotifier := newReportService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)
		mockReportRepo.On("ExistsForPeriod", ctx, int64(10), model.SubjectMath, mock.Anything, mock.Anything).Return(true, nil)

		_, err := service.CreateReport(ctx, 1, 10, reportCommand())

		assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
		mockReportRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects the resource subject", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newReportService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		cmd := reportCommand()
		cmd.Subject = model.SubjectResource
		_, err := service.CreateReport(ctx, 1, 10, cmd)

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newReportService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		cmd := reportCommand()
		cmd.StartDate, cmd.EndDate = cmd.EndDate, cmd.StartDate
		_, err := service.CreateReport(ctx, 1, 10, cmd)

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})

	t.Run("requires both good and bad points", func(t *testing.T) {
		service, _, mockUserRepo, _, _ := newReportService(t)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(assignedMentee(10, 1), nil)

		cmd := reportCommand()
		cmd.BadPoints = nil
		_, err := service.CreateReport(ctx, 1, 10, cmd)

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
	})
}

func TestReportService_GetReceivedReportByID(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects another mentee's report", func(t *testing.T) {
		service, mockReportRepo, _, _, _ := newReportService(t)

		report := &model.LearningReport{ID: 5, MenteeID: 99, Subject: model.SubjectMath}
		mockReportRepo.On("FindByID", ctx, int64(5)).Return(report, nil)

		_, _, err := service.GetReceivedReportByID(ctx, 10, 5)

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
	})

	t.Run("returns the report with its covered tasks", func(t *testing.T) {
		service, mockReportRepo, _, mockTaskRepo, _ := newReportService(t)

		report := &model.LearningReport{ID: 5, MenteeID: 10, Subject: model.SubjectMath}
		mockReportRepo.On("FindByID", ctx, int64(5)).Return(report, nil)
		covered := []*model.Task{{ID: 1}, {ID: 2}}
		mockTaskRepo.On("FindByMenteeSubjectBetween", ctx, int64(10), model.SubjectMath, mock.Anything, mock.Anything).Return(covered, nil)

		got, tasks, err := service.GetReceivedReportByID(ctx, 10, 5)

		assert.NoError(t, err)
		assert.Equal(t, report, got)
		assert.Len(t, tasks, 2)
	})
}
