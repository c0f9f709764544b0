package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"course-media/internal/core/domain"
)

// Refresh re-signs every targeted record whose access URL is expired or
// expiring soon and persists the new URL/expiry pair. Stale records are
// processed in fixed-size batches with in-batch parallelism and a short pause
// between batches, capping peak concurrent signing calls. One record's
// failure never aborts the run.
func (a *auditService) Refresh(ctx context.Context, opts domain.AuditOptions) (*domain.AuditReport, error) {
	start := time.Now()

	records, err := a.selectRecords(ctx, opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &domain.AuditReport{Total: len(records)}

	var stale []domain.MediaRecord
	for _, record := range records {
		freshness := Classify(record.AccessURLExpiresAt, now, a.cfg.Threshold)
		if !a.needsRefresh(freshness, opts) {
			report.Details = append(report.Details, domain.RecordAuditDetail{
				ID:        record.ID,
				Title:     record.Title,
				Status:    domain.RecordAuditStatus(freshness),
				OldExpiry: record.AccessURLExpiresAt,
			})
			continue
		}
		report.Expired++
		stale = append(stale, record)
	}

	batchSize := a.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	var mu sync.Mutex
	for batchStart := 0; batchStart < len(stale); batchStart += batchSize {
		batchEnd := batchStart + batchSize
		if batchEnd > len(stale) {
			batchEnd = len(stale)
		}

		var wg sync.WaitGroup
		for _, record := range stale[batchStart:batchEnd] {
			wg.Add(1)
			go func(record domain.MediaRecord) {
				defer wg.Done()
				detail := a.refreshRecord(ctx, record)

				mu.Lock()
				defer mu.Unlock()
				report.Details = append(report.Details, detail)
				switch detail.Status {
				case domain.RecordAuditStatusRefreshed:
					report.Refreshed++
				default:
					report.Failed++
					report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", record.ID, detail.Error))
				}
			}(record)
		}
		wg.Wait()

		if batchEnd < len(stale) && a.cfg.BatchPause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.cfg.BatchPause):
			}
		}
	}

	report.Duration = time.Since(start)

	a.logger.Info("access url refresh completed",
		"total", report.Total,
		"stale", report.Expired,
		"refreshed", report.Refreshed,
		"failed", report.Failed,
		"duration", report.Duration)

	return report, nil
}

// refreshRecord re-signs one record. The object must still exist in storage;
// a missing object is reported without touching the record's URL.
func (a *auditService) refreshRecord(ctx context.Context, record domain.MediaRecord) domain.RecordAuditDetail {
	detail := domain.RecordAuditDetail{
		ID:        record.ID,
		Title:     record.Title,
		OldExpiry: record.AccessURLExpiresAt,
	}

	if _, err := a.storage.StatObject(ctx, record.StorageKey); err != nil {
		if errors.Is(err, domain.ErrObjectMissing) {
			detail.Status = domain.RecordAuditStatusObjectMissing
		} else {
			detail.Status = domain.RecordAuditStatusFailed
		}
		detail.Error = err.Error()
		return detail
	}

	accessURL, expiresAt, err := a.storage.PresignDownload(ctx, record.StorageKey, a.cfg.SignDuration)
	if err != nil {
		detail.Status = domain.RecordAuditStatusFailed
		detail.Error = fmt.Sprintf("could not sign url: %v", err)
		return detail
	}

	if err := a.media.UpdateAccessURL(ctx, record.ID, accessURL, *expiresAt); err != nil {
		detail.Status = domain.RecordAuditStatusFailed
		detail.Error = fmt.Sprintf("could not persist url: %v", err)
		return detail
	}

	detail.Status = domain.RecordAuditStatusRefreshed
	detail.NewExpiry = expiresAt
	return detail
}
