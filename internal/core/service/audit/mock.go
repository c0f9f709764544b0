package audit

import (
	"context"

	"course-media/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

// NewMockAuditService creates a new MockAuditService
func NewMockAuditService() *MockAuditService {
	return &MockAuditService{}
}

func (m *MockAuditService) Check(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}

func (m *MockAuditService) Refresh(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditReport), args.Error(1)
}
