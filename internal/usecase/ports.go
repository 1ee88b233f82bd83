package usecase

import (
	"context"
	"io"
	"time"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// PushSender delivers a push message to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FileStorage is the object-store backend for uploaded files.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Notifier records an in-app notification for the receiver and attempts
// push delivery. Push failures never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, receiver *model.User, notification model.Notification) error
}
