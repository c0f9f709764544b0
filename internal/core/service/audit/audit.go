package audit

import (
	"context"
	"log/slog"
	"time"

	"course-media/internal/config"
	"course-media/internal/core/domain"
	"course-media/internal/core/port"
)

type auditService struct {
	media   port.MediaRepository
	storage port.ObjectStorage
	cfg     config.AuditConfig
	logger  *slog.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(media port.MediaRepository, storage port.ObjectStorage, cfg config.AuditConfig, logger *slog.Logger) port.AuditService {
	return &auditService{
		media:   media,
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

// Classify reports how fresh a signed URL still is at now. A nil expiry is
// treated as already expired.
func Classify(expiresAt *time.Time, now time.Time, threshold time.Duration) domain.URLFreshness {
	if expiresAt == nil {
		return domain.URLFreshnessExpired
	}
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return domain.URLFreshnessExpired
	}
	if remaining < threshold {
		return domain.URLFreshnessExpiringSoon
	}
	return domain.URLFreshnessValid
}

func (a *auditService) selectRecords(ctx context.Context, opts domain.AuditOptions) ([]domain.MediaRecord, error) {
	return a.media.FindBatch(ctx, opts.IDs, opts.BatchSize)
}

// needsRefresh decides whether a record's URL is stale enough to re-sign.
// Records already valid are never re-signed.
func (a *auditService) needsRefresh(freshness domain.URLFreshness, opts domain.AuditOptions) bool {
	switch freshness {
	case domain.URLFreshnessExpired:
		return true
	case domain.URLFreshnessExpiringSoon:
		return !opts.OnlyExpired
	default:
		return false
	}
}
