package audit

import (
	"context"
	"time"

	"course-media/internal/core/domain"
)

// Check classifies every targeted record's access URL without mutating anything
func (a *auditService) Check(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error) {
	start := time.Now()

	records, err := a.selectRecords(ctx, opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &domain.AuditReport{Total: len(records)}

	for _, record := range records {
		freshness := Classify(record.AccessURLExpiresAt, now, a.cfg.Threshold)
		if a.needsRefresh(freshness, opts) {
			report.Expired++
		}
		report.Details = append(report.Details, domain.RecordAuditDetail{
			ID:        record.ID,
			Title:     record.Title,
			Status:    domain.RecordAuditStatus(freshness),
			OldExpiry: record.AccessURLExpiresAt,
		})
	}

	report.Duration = time.Since(start)

	a.logger.Info("access url check completed",
		"total", report.Total,
		"stale", report.Expired,
		"duration", report.Duration)

	return report, nil
}
