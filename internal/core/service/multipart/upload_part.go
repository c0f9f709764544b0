package multipart

import (
	"context"
	"fmt"
	"io"

	"course-media/internal/core/domain"
)

// UploadPart forwards one part's raw bytes to the storage service and returns
// the acknowledged etag. Part numbers are caller-assigned; arrival order is
// not enforced, only correctness of the final part set at Complete.
func (m *multipartService) UploadPart(ctx context.Context, uploadID string, storageKey string, partNumber int, body io.Reader, size int64) (string, error) {

	if uploadID == "" || storageKey == "" {
		return "", fmt.Errorf("%w: uploadId and objectName are required", domain.ErrInvalidRequest)
	}
	if partNumber < 1 {
		return "", fmt.Errorf("%w: part number must be a positive integer, got %d", domain.ErrInvalidRequest, partNumber)
	}

	etag, err := m.storage.PutObjectPart(ctx, storageKey, uploadID, partNumber, body, size)
	if err != nil {
		// retryable by the caller with the same part number
		return "", fmt.Errorf("%w: part %d: %w", domain.ErrPartUploadFailed, partNumber, err)
	}

	return etag, nil
}
