package credential

import (
	"context"

	"course-media/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockCredentialService is a mock implementation of CredentialService
type MockCredentialService struct {
	mock.Mock
}

// NewMockCredentialService creates a new MockCredentialService
func NewMockCredentialService() *MockCredentialService {
	return &MockCredentialService{}
}

func (m *MockCredentialService) IssueUploadCredential(ctx context.Context, req domain.CredentialRequest) (*domain.UploadCredential, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadCredential), args.Error(1)
}
