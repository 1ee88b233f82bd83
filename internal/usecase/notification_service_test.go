package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/usecase"
)

func newNotificationService(t *testing.T) (*usecase.NotificationService, *MockNotificationRepository, *MockUserRepository, *MockPushSender) {
	t.Helper()
	mockNotificationRepo := new(MockNotificationRepository)
	mockUserRepo := new(MockUserRepository)
	mockPush := new(MockPushSender)
	service := usecase.NewNotificationService(mockNotificationRepo, mockUserRepo, mockPush, zap.NewNop())
	return service, mockNotificationRepo, mockUserRepo, mockPush
}

func TestNotificationService_GetNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("lists and moves NEW to UNREAD", func(t *testing.T) {
		service, mockRepo, _, _ := newNotificationService(t)

		stored := []*model.Notification{
			{ID: 2, ReceiverID: 10, Status: model.NotificationStatusNew},
			{ID: 1, ReceiverID: 10, Status: model.NotificationStatusRead},
		}
		mockRepo.On("FindByReceiver", ctx, int64(10)).Return(stored, nil)
		mockRepo.On("MarkAllChecked", ctx, int64(10)).Return(nil)

		notifications, err := service.GetNotifications(ctx, 10)

		assert.NoError(t, err)
		assert.Len(t, notifications, 2)
		// the caller still sees NEW for this one listing
		assert.Equal(t, model.NotificationStatusNew, notifications[0].Status)
		mockRepo.AssertExpectations(t)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks own notification read", func(t *testing.T) {
		service, mockRepo, _, _ := newNotificationService(t)

		notification := &model.Notification{ID: 1, ReceiverID: 10, Status: model.NotificationStatusUnread}
		mockRepo.On("FindByID", ctx, int64(1)).Return(notification, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.Status == model.NotificationStatusRead
		})).Return(nil)

		err := service.MarkAsRead(ctx, 10, 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects another user's notification", func(t *testing.T) {
		service, mockRepo, _, _ := newNotificationService(t)

		notification := &model.Notification{ID: 1, ReceiverID: 99, Status: model.NotificationStatusNew}
		mockRepo.On("FindByID", ctx, int64(1)).Return(notification, nil)

		err := service.MarkAsRead(ctx, 10, 1)

		assert.Equal(t, apperrors.ErrUnauthorized, apperrors.CodeOf(err))
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and pushes when a token exists", func(t *testing.T) {
		service, mockRepo, _, mockPush := newNotificationService(t)

		token := "device-token"
		receiver := &model.User{ID: 10, FCMToken: &token}
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *model.Notification) bool {
			return n.ReceiverID == 10 && n.Status == model.NotificationStatusNew
		})).Return(nil)
		mockPush.On("Send", ctx, token, "피드백 도착", mock.Anything, mock.Anything).Return(nil)

		err := service.Notify(ctx, receiver, model.Notification{
			Type:    model.NotificationTypeFeedback,
			Title:   "피드백 도착",
			Message: "새 피드백이 있어요",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockPush.AssertExpectations(t)
	})

	t.Run("skips push without a token", func(t *testing.T) {
		service, mockRepo, _, mockPush := newNotificationService(t)

		receiver := &model.User{ID: 10}
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)

		err := service.Notify(ctx, receiver, model.Notification{Type: model.NotificationTypeReminder})

		assert.NoError(t, err)
		mockPush.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("swallows push failures", func(t *testing.T) {
		service, mockRepo, _, mockPush := newNotificationService(t)

		token := "device-token"
		receiver := &model.User{ID: 10, FCMToken: &token}
		mockRepo.On("Create", ctx, mock.Anything).Return(nil)
		mockPush.On("Send", ctx, token, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("fcm unavailable"))

		err := service.Notify(ctx, receiver, model.Notification{Type: model.NotificationTypeReminder})

		assert.NoError(t, err)
	})
}

func TestNotificationService_RegisterFCMToken(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the token", func(t *testing.T) {
		service, _, mockUserRepo, _ := newNotificationService(t)

		mockUserRepo.On("UpdateFCMToken", ctx, int64(10), "device-token").Return(nil)

		err := service.RegisterFCMToken(ctx, 10, "device-token")

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("rejects a blank token", func(t *testing.T) {
		service, _, mockUserRepo, _ := newNotificationService(t)

		err := service.RegisterFCMToken(ctx, 10, "   ")

		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		mockUserRepo.AssertNotCalled(t, "UpdateFCMToken", mock.Anything, mock.Anything, mock.Anything)
	})
}
