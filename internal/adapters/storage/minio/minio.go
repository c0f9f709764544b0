package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"course-media/internal/config"
	"course-media/internal/core/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter. The target bucket is created if absent.
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	core := minio.Core{Client: client}
	return &Adapter{client: client, config: cfg, core: &core, logger: logger}, nil
}

// Bucket returns the configured bucket name
func (a *Adapter) Bucket() string {
	return a.config.BucketName
}

// PresignUpload generates a presigned PUT URL authorizing one object upload
func (a *Adapter) PresignUpload(ctx context.Context, storageKey string, contentType string, expiry time.Duration) (string, *time.Time, error) {
	requestHeaders := make(http.Header)
	if contentType != "" {
		requestHeaders.Set("Content-Type", contentType)
	}

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, storageKey, expiry, nil, requestHeaders)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate pre-signed upload URL: %w", err)
	}

	expiresAt := time.Now().Add(expiry)
	return presignedURL.String(), &expiresAt, nil
}

// PresignDownload generates a presigned GET URL for an object
func (a *Adapter) PresignDownload(ctx context.Context, storageKey string, expiry time.Duration) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, storageKey, expiry, url.Values{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(expiry)
	return presignedURL.String(), &expiresAt, nil
}

// InitMultipartUpload opens a multipart session for the object
func (a *Adapter) InitMultipartUpload(ctx context.Context, storageKey string, contentType string) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
	}
	uploadID, err := a.core.NewMultipartUpload(ctx, a.config.BucketName, storageKey, opts)
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", err)
	}
	return uploadID, nil
}

// PutObjectPart forwards one part's bytes to the bucket and returns its etag
func (a *Adapter) PutObjectPart(ctx context.Context, storageKey string, uploadID string, partNumber int, body io.Reader, size int64) (string, error) {
	part, err := a.core.PutObjectPart(ctx, a.config.BucketName, storageKey, uploadID, partNumber, body, size, minio.PutObjectPartOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload part %d: %w", partNumber, err)
	}
	return strings.Trim(part.ETag, "\""), nil
}

// CompleteMultipartUpload finalizes the multipart object from its ordered parts
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, storageKey string, uploadID string, parts []domain.UploadPart) error {
	completeParts := make([]minio.CompletePart, 0, len(parts))
	for _, part := range parts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       strings.Trim(part.ETag, "\""),
		})
	}

	opts := minio.PutObjectOptions{
		SendContentMd5: false,
	}

	_, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, storageKey, uploadID, completeParts, opts)
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return nil
}

// AbortMultipartUpload discards an open multipart session and its parts
func (a *Adapter) AbortMultipartUpload(ctx context.Context, storageKey string, uploadID string) error {
	err := a.core.AbortMultipartUpload(ctx, a.config.BucketName, storageKey, uploadID)
	if err != nil {
		return fmt.Errorf("failed to abort multipart upload: %w", err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("storageKey", storageKey),
		slog.String("uploadID", uploadID))

	return nil
}

// StatObject retrieves obj info. A missing key maps to domain.ErrObjectMissing.
func (a *Adapter) StatObject(ctx context.Context, storageKey string) (*minio.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, storageKey, minio.StatObjectOptions{})
	if err != nil {
		var errResp minio.ErrorResponse
		if errors.As(err, &errResp) && errResp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", domain.ErrObjectMissing, storageKey)
		}
		return nil, fmt.Errorf("failed to get object info: %w", err)
	}
	return &info, nil
}
