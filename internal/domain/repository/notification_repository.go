package repository

import (
	"context"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// Create persists a new notification
	Create(ctx context.Context, notification *model.Notification) error

	// FindByID retrieves a notification by id
	FindByID(ctx context.Context, id int64) (*model.Notification, error)

	// FindByReceiver retrieves the receiver's notifications, newest first
	FindByReceiver(ctx context.Context, receiverID int64) ([]*model.Notification, error)

	// CountNew counts the receiver's NEW notifications
	CountNew(ctx context.Context, receiverID int64) (int64, error)

	// MarkAllChecked moves the receiver's NEW notifications to UNREAD
	MarkAllChecked(ctx context.Context, receiverID int64) error

	// Update persists a status change on a single notification
	Update(ctx context.Context, notification *model.Notification) error
}
