package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	domainRepo "github.com/goodspace/oneshot-server/internal/domain/repository"
	"github.com/goodspace/oneshot-server/internal/infrastructure/database/dbtx"
)

// fileRepository implements the FileRepository interface
type fileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFileRepository creates a new file repository instance
func NewFileRepository(db *gorm.DB, logger *zap.Logger) domainRepo.FileRepository {
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *fileRepository) conn(ctx context.Context) *gorm.DB {
	return dbtx.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	if err := r.conn(ctx).Create(file).Error; err != nil {
		r.logger.Error("Failed to create file",
			zap.String("file_id", file.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

func (r *fileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var file model.File

	if err := r.conn(ctx).First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("file not found")
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}

	return &file, nil
}

func (r *fileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.File, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var files []*model.File

	if err := r.conn(ctx).Where("id IN ?", ids).Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to find files: %w", err)
	}

	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.conn(ctx).Delete(&model.File{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
