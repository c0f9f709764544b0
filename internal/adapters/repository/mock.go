package repository

import (
	"context"
	"time"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMediaRepository is a mock implementation of port.MediaRepository
type MockMediaRepository struct {
	mock.Mock
}

func NewMockMediaRepository() *MockMediaRepository {
	return &MockMediaRepository{}
}

func (m *MockMediaRepository) Create(ctx context.Context, record *domain.MediaRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

func (m *MockMediaRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.MediaRecord, error) {
	args := m.Called(ctx, storageKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

func (m *MockMediaRepository) FindBatch(ctx context.Context, ids []uuid.UUID, limit int) ([]domain.MediaRecord, error) {
	args := m.Called(ctx, ids, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediaRecord), args.Error(1)
}

func (m *MockMediaRepository) UpdateAccessURL(ctx context.Context, id uuid.UUID, accessURL string, expiresAt time.Time) error {
	args := m.Called(ctx, id, accessURL, expiresAt)
	return args.Error(0)
}

func (m *MockMediaRepository) UpdateObjectInfo(ctx context.Context, id uuid.UUID, sizeBytes int64, contentType string) error {
	args := m.Called(ctx, id, sizeBytes, contentType)
	return args.Error(0)
}
