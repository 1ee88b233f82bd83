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
	"github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func TestReminderService_SendDailyReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies each mentee with remaining tasks", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		mockUserRepo := new(MockUserRepository)
		mockNotifier := new(MockNotifier)
		service := usecase.NewReminderService(mockTaskRepo, mockUserRepo, mockNotifier, zap.NewNop())

		today := time.Date(2026, 3, 2, 19, 0, 0, 0, time.FixedZone("KST", 9*60*60))
		mockTaskRepo.On("CountUnsubmittedByMentee", ctx, today).Return([]repository.MenteeTaskCount{
			{MenteeID: 10, Count: 3},
			{MenteeID: 11, Count: 1},
		}, nil)

		menteeA := &model.User{ID: 10, Role: model.RoleMentee}
		menteeB := &model.User{ID: 11, Role: model.RoleMentee}
		mockUserRepo.On("FindByID", ctx, int64(10)).Return(menteeA, nil)
		mockUserRepo.On("FindByID", ctx, int64(11)).Return(menteeB, nil)

		mockNotifier.On("Notify", ctx, menteeA, mock.MatchedBy(func(n model.Notification) bool {
			return n.Type == model.NotificationTypeReminder &&
				n.Title == "오늘의 할 일 알림" &&
				n.Message == "오늘의 할 일 3개가 남아있어요. 지금 바로 공부를 시작해보세요!💪"
		})).Return(nil)
		mockNotifier.On("Notify", ctx, menteeB, mock.MatchedBy(func(n model.Notification) bool {
			return n.Message == "오늘의 할 일 1개가 남아있어요. 지금 바로 공부를 시작해보세요!💪"
		})).Return(nil)

		err := service.SendDailyReminders(ctx, today)

		assert.NoError(t, err)
		mockNotifier.AssertExpectations(t)
		mockTaskRepo.AssertExpectations(t)
	})

	t.Run("a broken mentee row does not stop the batch", func(t *testing.T) {
		mockTaskRepo := new(MockTaskRepository)
		mockUserRepo := new(MockUserRepository)
		mockNotifier := new(MockNotifier)
		service := usecase.NewReminderService(mockTaskRepo, mockUserRepo, mockNotifier, zap.NewNop())

		mockTaskRepo.On("CountUnsubmittedByMentee", ctx, mock.Anything).Return([]repository.MenteeTaskCount{
			{MenteeID: 10, Count: 2},
			{MenteeID: 11, Count: 1},
		}, nil)

		mockUserRepo.On("FindByID", ctx, int64(10)).Return(nil, apperrors.NewNotFound("user not found"))
		mentee := &model.User{ID: 11}
		mockUserRepo.On("FindByID", ctx, int64(11)).Return(mentee, nil)
		mockNotifier.On("Notify", ctx, mentee, mock.Anything).Return(nil)

		err := service.SendDailyReminders(ctx, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

		assert.NoError(t, err)
		mockNotifier.AssertNumberOfCalls(t, "Notify", 1)
	})
}
