package repository

import (
	"context"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// FindByID retrieves a user by primary key
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindMenteesByMentor retrieves every mentee assigned to the mentor
	FindMenteesByMentor(ctx context.Context, mentorID int64) ([]*model.User, error)

	// UpdateFCMToken stores the user's push-delivery token
	UpdateFCMToken(ctx context.Context, userID int64, token string) error
}
