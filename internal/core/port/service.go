package port

import (
	"context"
	"io"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// CredentialService is an interface to define upload credential issuance
type CredentialService interface {
	IssueUploadCredential(ctx context.Context, req domain.CredentialRequest) (*domain.UploadCredential, error)
}

// MultipartService is an interface to define the chunked transfer coordinator
type MultipartService interface {
	Initiate(ctx context.Context, fileName string, contentType string) (*domain.MultipartUpload, error)
	UploadPart(ctx context.Context, uploadID string, storageKey string, partNumber int, body io.Reader, size int64) (string, error)
	Complete(ctx context.Context, uploadID string, storageKey string, parts []domain.UploadPart, title, description string) (*domain.MediaRecord, error)
}

// AuditService is an interface to define the access URL freshness auditor
type AuditService interface {
	Check(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error)
	Refresh(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error)
}

// MediaService is an interface to define media record registration and lookup
type MediaService interface {
	Register(ctx context.Context, title, description, storageKey, contentType string, sizeBytes int64) (*domain.MediaRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.MediaRecord, error)
}
