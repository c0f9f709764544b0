package media

import (
	"context"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// Get returns the stored record as-is. The read path never re-signs; stale
// URLs are the auditor's job.
func (s *mediaService) Get(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	return s.media.FindByID(ctx, id)
}
