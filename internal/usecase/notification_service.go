package usecase

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// NotificationService handles the in-app notification inbox and push
// delivery.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	push             PushSender
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service. push may be
// nil when push delivery is disabled.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	push PushSender,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		push:             push,
		logger:           logger,
	}
}

// GetNotifications returns the user's notifications, newest first. The
// returned items keep the status they had when fetched, so a NEW
// notification is reported as NEW exactly once: listing moves every NEW
// item to UNREAD for the next call.
func (s *NotificationService) GetNotifications(ctx context.Context, userID int64) ([]*model.Notification, error) {
	notifications, err := s.notificationRepo.FindByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllChecked(ctx, userID); err != nil {
		return nil, err
	}

	return notifications, nil
}

// GetNewCount returns the number of notifications the user has not yet
// seen in any listing.
func (s *NotificationService) GetNewCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountNew(ctx, userID)
}

// MarkAsRead marks one of the user's notifications opened.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID int64) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.ReceiverID != userID {
		return apperrors.NewAccessDenied("notification belongs to another user")
	}

	notification.MarkAsRead()
	return s.notificationRepo.Update(ctx, notification)
}

// RegisterFCMToken stores the device token push messages go to.
func (s *NotificationService) RegisterFCMToken(ctx context.Context, userID int64, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.NewValidation("fcm token is required")
	}
	return s.userRepo.UpdateFCMToken(ctx, userID, token)
}

// Notify persists the notification and then attempts push delivery.
// A missing token or a push failure only logs; the notification row is
// the source of truth.
func (s *NotificationService) Notify(ctx context.Context, receiver *model.User, notification model.Notification) error {
	notification.ReceiverID = receiver.ID
	notification.Status = model.NotificationStatusNew

	if err := s.notificationRepo.Create(ctx, &notification); err != nil {
		return err
	}

	s.sendPush(ctx, receiver, notification)
	return nil
}

func (s *NotificationService) sendPush(ctx context.Context, receiver *model.User, notification model.Notification) {
	if s.push == nil {
		return
	}
	if receiver.FCMToken == nil || *receiver.FCMToken == "" {
		s.logger.Debug("Skipping push, no token registered",
			zap.Int64("user_id", receiver.ID))
		return
	}

	data := map[string]string{"type": string(notification.Type)}
	if notification.TaskID != nil {
		data["taskId"] = strconv.FormatInt(*notification.TaskID, 10)
	}
	if notification.LearningReportID != nil {
		data["learningReportId"] = strconv.FormatInt(*notification.LearningReportID, 10)
	}

	if err := s.push.Send(ctx, *receiver.FCMToken, notification.Title, notification.Message, data); err != nil {
		s.logger.Warn("Failed to send push notification",
			zap.Int64("user_id", receiver.ID),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
	}
}
