package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	if err := r.conn(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindMenteesByMentor(ctx context.Context, mentorID int64) ([]*model.User, error) {
	var mentees []*model.User

	err := r.conn(ctx).
		Where("mentor_id = ? AND role = ?", mentorID, model.RoleMentee).
		Order("name ASC").
		Find(&mentees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find mentees: %w", err)
	}

	return mentees, nil
}

func (r *userRepository) UpdateFCMToken(ctx context.Context, userID int64, token string) error {
	result := r.conn(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("fcm_token", token)
	if result.Error != nil {
		return fmt.Errorf("failed to update fcm token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("user not found")
	}
	return nil
}
