package multipart

import (
	"context"
	"fmt"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// Complete validates the part set, finalizes the multipart object in storage
// and persists the media record with a fresh play URL.
func (m *multipartService) Complete(ctx context.Context, uploadID string, storageKey string, parts []domain.UploadPart, title, description string) (*domain.MediaRecord, error) {

	if uploadID == "" || storageKey == "" {
		return nil, fmt.Errorf("%w: uploadId and objectName are required", domain.ErrInvalidRequest)
	}

	ordered, err := orderParts(parts)
	if err != nil {
		return nil, err
	}

	if err := m.storage.CompleteMultipartUpload(ctx, storageKey, uploadID, ordered); err != nil {
		return nil, fmt.Errorf("%w: could not finalize multipart upload: %w", domain.ErrStorageUnavailable, err)
	}

	// The part-count estimate undercounts the (usually shorter) last part and
	// overcounts when parts are smaller than the configured size, so prefer
	// the finalized object's actual stat.
	sizeBytes := int64(len(ordered)) * m.uploadCfg.PartSize
	contentType := ""
	if info, statErr := m.storage.StatObject(ctx, storageKey); statErr == nil {
		sizeBytes = info.Size
		contentType = info.ContentType
	} else {
		m.logger.Warn("could not stat finalized object, persisting part-size estimate",
			"storageKey", storageKey,
			"error", statErr)
	}

	playURL, playExpiresAt, err := m.storage.PresignDownload(ctx, storageKey, m.minioCfg.PlayPresignDuration)
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

	if err := m.media.Create(ctx, record); err != nil {
		// The object is already durable in storage; a reconciliation pass,
		// not a retry, is the remedy.
		m.logger.Error("record write failed after multipart finalize, object orphaned in storage",
			"storageKey", storageKey,
			"uploadID", uploadID,
			"error", err)
		return nil, fmt.Errorf("%w: object %s finalized but record write failed: %w", domain.ErrPersistenceFailed, storageKey, err)
	}

	m.logger.Info("multipart upload completed",
		"storageKey", storageKey,
		"recordID", record.ID.String(),
		"parts", len(ordered),
		"sizeBytes", sizeBytes)

	return record, nil
}
