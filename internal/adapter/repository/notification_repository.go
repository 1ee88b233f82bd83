package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
)

// notificationRepository implements the NotificationRepository interface
type notificationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.NotificationRepository {
	return &notificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *notificationRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if err := r.conn(ctx).Create(notification).Error; err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("receiver_id", notification.ReceiverID),
			zap.String("type", string(notification.Type)),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	var notification model.Notification

	if err := r.conn(ctx).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("notification not found")
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	return &notification, nil
}

func (r *notificationRepository) FindByReceiver(ctx context.Context, receiverID int64) ([]*model.Notification, error) {
	var notifications []*model.Notification

	err := r.conn(ctx).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		r.logger.Error("Failed to find notifications",
			zap.Int64("receiver_id", receiverID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountNew(ctx context.Context, receiverID int64) (int64, error) {
	var count int64

	err := r.conn(ctx).Model(&model.Notification{}).
		Where("receiver_id = ? AND status = ?", receiverID, model.NotificationStatusNew).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count new notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) MarkAllChecked(ctx context.Context, receiverID int64) error {
	err := r.conn(ctx).Model(&model.Notification{}).
		Where("receiver_id = ? AND status = ?", receiverID, model.NotificationStatusNew).
		Update("status", model.NotificationStatusUnread).Error
	if err != nil {
		r.logger.Error("Failed to mark notifications checked",
			zap.Int64("receiver_id", receiverID),
			zap.Error(err))
		return fmt.Errorf("failed to mark notifications checked: %w", err)
	}
	return nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *model.Notification) error {
	if err := r.conn(ctx).Save(notification).Error; err != nil {
		r.logger.Error("Failed to update notification",
			zap.Int64("notification_id", notification.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}
