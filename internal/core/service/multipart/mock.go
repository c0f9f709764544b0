package multipart

import (
	"context"
	"io"

	"course-media/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockMultipartService is a mock implementation of MultipartService
type MockMultipartService struct {
	mock.Mock
}

// NewMockMultipartService creates a new MockMultipartService
func NewMockMultipartService() *MockMultipartService {
	return &MockMultipartService{}
}

func (m *MockMultipartService) Initiate(ctx context.Context, fileName string, contentType string) (*domain.MultipartUpload, error) {
	args := m.Called(ctx, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MultipartUpload), args.Error(1)
}

func (m *MockMultipartService) UploadPart(ctx context.Context, uploadID string, storageKey string, partNumber int, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, uploadID, storageKey, partNumber, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockMultipartService) Complete(ctx context.Context, uploadID string, storageKey string, parts []domain.UploadPart, title, description string) (*domain.MediaRecord, error) {
	args := m.Called(ctx, uploadID, storageKey, parts, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}
