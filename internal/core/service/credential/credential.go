package credential

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"course-media/internal/config"
	"course-media/internal/core/port"

	"github.com/google/uuid"
)

type credentialService struct {
	storage   port.ObjectStorage
	minioCfg  config.MinioConfig
	uploadCfg config.UploadConfig
}

// NewCredentialService creates a new credential service
func NewCredentialService(storage port.ObjectStorage, minioCfg config.MinioConfig, uploadCfg config.UploadConfig) port.CredentialService {
	return &credentialService{storage: storage, minioCfg: minioCfg, uploadCfg: uploadCfg}
}

// FallbackFileName substitutes a file name whose sanitized form is empty
const FallbackFileName = "file"

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedDots    = regexp.MustCompile(`\.{2,}`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
	repeatedScores  = regexp.MustCompile(`_{2,}`)
)

// SanitizeFileName strips characters outside [A-Za-z0-9._-], collapses
// repeated separators, trims leading/trailing separators and truncates to
// maxLen bytes preserving the extension. An empty result becomes FallbackFileName.
func SanitizeFileName(name string, maxLen int) string {
	sanitized := disallowedChars.ReplaceAllString(name, "")
	sanitized = repeatedDots.ReplaceAllString(sanitized, ".")
	sanitized = repeatedDashes.ReplaceAllString(sanitized, "-")
	sanitized = repeatedScores.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "._-")

	if sanitized == "" {
		return FallbackFileName
	}

	if maxLen > 0 && len(sanitized) > maxLen {
		ext := filepath.Ext(sanitized)
		if len(ext) >= maxLen {
			ext = ""
		}
		base := sanitized[:maxLen-len(ext)]
		base = strings.Trim(base, "._-")
		if base == "" {
			base = FallbackFileName
		}
		sanitized = base + ext
	}

	return sanitized
}

// BuildStorageKey prefixes the sanitized name with a millisecond timestamp and
// a random token, making collisions practically impossible without a
// uniqueness check against the store.
func BuildStorageKey(fileName string, maxNameLen int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, SanitizeFileName(fileName, maxNameLen))
}

func clampExpiry(requested, fallback, ceiling time.Duration) time.Duration {
	if requested <= 0 {
		requested = fallback
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}
