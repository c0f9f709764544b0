package storage

import (
	"context"
	"io"
	"time"

	"course-media/internal/core/domain"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of port.ObjectStorage
type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PresignUpload(ctx context.Context, storageKey string, contentType string, expiry time.Duration) (string, *time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiry)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStorage) PresignDownload(ctx context.Context, storageKey string, expiry time.Duration) (string, *time.Time, error) {
	args := m.Called(ctx, storageKey, expiry)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStorage) InitMultipartUpload(ctx context.Context, storageKey string, contentType string) (string, error) {
	args := m.Called(ctx, storageKey, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PutObjectPart(ctx context.Context, storageKey string, uploadID string, partNumber int, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, storageKey, uploadID, partNumber, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) CompleteMultipartUpload(ctx context.Context, storageKey string, uploadID string, parts []domain.UploadPart) error {
	args := m.Called(ctx, storageKey, uploadID, parts)
	return args.Error(0)
}

func (m *MockStorage) AbortMultipartUpload(ctx context.Context, storageKey string, uploadID string) error {
	args := m.Called(ctx, storageKey, uploadID)
	return args.Error(0)
}

func (m *MockStorage) StatObject(ctx context.Context, storageKey string) (*minio.ObjectInfo, error) {
	args := m.Called(ctx, storageKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minio.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Bucket() string {
	args := m.Called()
	return args.String(0)
}
