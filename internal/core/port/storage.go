package port

import (
	"context"
	"io"
	"time"

	"course-media/internal/core/domain"

	"github.com/minio/minio-go/v7"
)

// ObjectStorage is an interface to define object storage interactions
type ObjectStorage interface {
	PresignUpload(ctx context.Context, storageKey string, contentType string, expiry time.Duration) (string, *time.Time, error)
	PresignDownload(ctx context.Context, storageKey string, expiry time.Duration) (string, *time.Time, error)
	InitMultipartUpload(ctx context.Context, storageKey string, contentType string) (string, error)
	PutObjectPart(ctx context.Context, storageKey string, uploadID string, partNumber int, body io.Reader, size int64) (string, error)
	CompleteMultipartUpload(ctx context.Context, storageKey string, uploadID string, parts []domain.UploadPart) error
	AbortMultipartUpload(ctx context.Context, storageKey string, uploadID string) error
	StatObject(ctx context.Context, storageKey string) (*minio.ObjectInfo, error)
	Bucket() string
}
