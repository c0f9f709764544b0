package media

import (
	"context"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	mock.Mock
}

// NewMockMediaService creates a new MockMediaService
func NewMockMediaService() *MockMediaService {
	return &MockMediaService{}
}

func (m *MockMediaService) Register(ctx context.Context, title, description, storageKey, contentType string, sizeBytes int64) (*domain.MediaRecord, error) {
	args := m.Called(ctx, title, description, storageKey, contentType, sizeBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}
