package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordAuditStatus is the per-record outcome of an audit run
type RecordAuditStatus string

const (
	RecordAuditStatusValid         RecordAuditStatus = "valid"
	RecordAuditStatusExpiringSoon  RecordAuditStatus = "expiring-soon"
	RecordAuditStatusExpired       RecordAuditStatus = "expired"
	RecordAuditStatusRefreshed     RecordAuditStatus = "refreshed"
	RecordAuditStatusObjectMissing RecordAuditStatus = "object-missing"
	RecordAuditStatusFailed        RecordAuditStatus = "failed"
)

// RecordAuditDetail is the per-record detail line of an audit report
type RecordAuditDetail struct {
	ID        uuid.UUID
	Title     string
	Status    RecordAuditStatus
	Error     string
	OldExpiry *time.Time
	NewExpiry *time.Time
}

// AuditOptions narrows an audit run to a record subset
type AuditOptions struct {
	BatchSize   int
	OnlyExpired bool
	IDs         []uuid.UUID
}

// AuditReport aggregates one check or refresh run over the record set
type AuditReport struct {
	Total     int
	Expired   int
	Refreshed int
	Failed    int
	Errors    []string
	Details   []RecordAuditDetail
	Duration  time.Duration
}
