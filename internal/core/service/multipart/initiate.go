package multipart

import (
	"context"
	"fmt"
	"strings"

	"course-media/internal/core/domain"
	"course-media/internal/core/service/credential"
)

// Initiate keys the object and opens a multipart session against the storage service
func (m *multipartService) Initiate(ctx context.Context, fileName string, contentType string) (*domain.MultipartUpload, error) {

	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidRequest)
	}

	storageKey := credential.BuildStorageKey(fileName, m.uploadCfg.MaxNameLength)

	uploadID, err := m.storage.InitMultipartUpload(ctx, storageKey, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: could not init multipart upload: %w", domain.ErrStorageUnavailable, err)
	}

	m.logger.Info("multipart upload initiated",
		"storageKey", storageKey,
		"uploadID", uploadID)

	return &domain.MultipartUpload{
		UploadID:   uploadID,
		StorageKey: storageKey,
	}, nil
}
