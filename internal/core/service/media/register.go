package media

import (
	"context"
	"fmt"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// Register persists a media record for an object that already lives in
// storage (the single-request presigned upload path) and signs its play URL.
func (s *mediaService) Register(ctx context.Context, title, description, storageKey, contentType string, sizeBytes int64) (*domain.MediaRecord, error) {

	if title == "" || storageKey == "" {
		return nil, fmt.Errorf("%w: title and storageKey are required", domain.ErrInvalidRequest)
	}

	if existing, err := s.media.FindByStorageKey(ctx, storageKey); err == nil {
		return nil, fmt.Errorf("%w: storage key already registered as %s", domain.ErrInvalidRequest, existing.ID)
	}

	playURL, playExpiresAt, err := s.storage.PresignDownload(ctx, storageKey, s.minioCfg.PlayPresignDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: could not sign play url: %w", domain.ErrStorageUnavailable, err)
	}

	record := &domain.MediaRecord{
		ID:                 uuid.New(),
		Title:              title,
		Description:        description,
		StorageKey:         storageKey,
		AccessURL:          &playURL,
		AccessURLExpiresAt: playExpiresAt,
		ContentType:        contentType,
		SizeBytes:          sizeBytes,
	}

	if err := s.media.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: could not create media record: %w", domain.ErrPersistenceFailed, err)
	}

	s.logger.Info("media record registered",
		"recordID", record.ID.String(),
		"storageKey", storageKey)

	return record, nil
}
