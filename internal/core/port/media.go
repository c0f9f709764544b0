package port

import (
	"context"
	"time"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// MediaRepository is an interface to define media record repository interactions
type MediaRepository interface {
	Create(ctx context.Context, record *domain.MediaRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error)
	FindByStorageKey(ctx context.Context, storageKey string) (*domain.MediaRecord, error)
	FindBatch(ctx context.Context, ids []uuid.UUID, limit int) ([]domain.MediaRecord, error)
	UpdateAccessURL(ctx context.Context, id uuid.UUID, accessURL string, expiresAt time.Time) error
	UpdateObjectInfo(ctx context.Context, id uuid.UUID, sizeBytes int64, contentType string) error
}
