package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/goodspace/oneshot-server/internal/domain/model"
)

// FileRepository defines the interface for stored-object metadata
type FileRepository interface {
	// Create persists a new file row
	Create(ctx context.Context, file *model.File) error

	// FindByID retrieves a file by id
	FindByID(ctx context.Context, id uuid.UUID) (*model.File, error)

	// FindByIDs retrieves the files matching the given ids; missing ids
	// are simply absent from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.File, error)

	// Delete removes a file row
	Delete(ctx context.Context, id uuid.UUID) error
}
