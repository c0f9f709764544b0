package domain

import (
	"time"

	"github.com/google/uuid"
)

// URLFreshness classifies how close a signed access URL is to its expiry
type URLFreshness string

const (
	URLFreshnessValid        URLFreshness = "valid"
	URLFreshnessExpiringSoon URLFreshness = "expiring-soon"
	URLFreshnessExpired      URLFreshness = "expired"
)

// MediaRecord represents the persisted metadata for one uploaded object.
// StorageKey is immutable once the object exists in storage under that key.
// AccessURL and AccessURLExpiresAt are always written together.
type MediaRecord struct {
	ID                 uuid.UUID
	Title              string
	Description        string
	StorageKey         string
	AccessURL          *string
	AccessURLExpiresAt *time.Time
	ContentType        string
	SizeBytes          int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
