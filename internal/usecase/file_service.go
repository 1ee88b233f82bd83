package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/goodspace/oneshot-server/pkg/errors"

	"github.com/goodspace/oneshot-server/internal/domain/model"
	"github.com/goodspace/oneshot-server/internal/domain/repository"
)

// presignExpiry bounds how long a download link stays valid.
const presignExpiry = 15 * time.Minute

// FileService handles uploads for proof shots and worksheets. The
// binary goes to object storage, the metadata row to the database, and
// downloads are served through short-lived presigned URLs.
type FileService struct {
	fileRepo repository.FileRepository
	storage  FileStorage
	logger   *zap.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repository.FileRepository,
	storage FileStorage,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload stores the object and records its metadata.
func (s *FileService) Upload(ctx context.Context, uploaderID int64, fileName, contentType string, size int64, body io.Reader) (*model.File, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, apperrors.NewValidation("file name is required")
	}
	if size <= 0 {
		return nil, apperrors.NewValidation("file is empty")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id := uuid.New()
	key := fmt.Sprintf("uploads/%d/%s", uploaderID, id)

	if err := s.storage.Upload(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	file := &model.File{
		ID:          id,
		FileName:    fileName,
		ContentType: contentType,
		ByteSize:    size,
		BucketName:  s.storage.Bucket(),
		ObjectKey:   key,
		UploaderID:  uploaderID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Orphaned object cleanup; failure leaves garbage in the bucket
		// but the request error stands.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to clean up orphaned object",
				zap.String("key", key),
				zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("File uploaded",
		zap.String("file_id", id.String()),
		zap.Int64("uploader_id", uploaderID),
		zap.Int64("bytes", size))

	return file, nil
}

// GetDownloadURL returns a presigned URL for the file's content.
func (s *FileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, file.ObjectKey, presignExpiry)
}

// Delete removes the uploader's own file, object first.
func (s *FileService) Delete(ctx context.Context, userID int64, fileID uuid.UUID) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.UploaderID != userID {
		return apperrors.NewAccessDenied("file belongs to another user")
	}

	if err := s.storage.Delete(ctx, file.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return s.fileRepo.Delete(ctx, file.ID)
}
