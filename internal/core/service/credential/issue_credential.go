package credential

import (
	"context"
	"fmt"
	"strings"

	"course-media/internal/core/domain"
)

// IssueUploadCredential produces a collision-free storage key and the signed
// URLs authorizing its upload and later reads. Stateless; called once per upload.
func (c *credentialService) IssueUploadCredential(ctx context.Context, req domain.CredentialRequest) (*domain.UploadCredential, error) {

	if strings.TrimSpace(req.FileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidRequest)
	}

	expiry := clampExpiry(req.Expires, c.minioCfg.UploadPresignDefault, c.minioCfg.UploadPresignCeiling)
	storageKey := BuildStorageKey(req.FileName, c.uploadCfg.MaxNameLength)

	uploadURL, _, err := c.storage.PresignUpload(ctx, storageKey, req.ContentType, expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: could not sign upload url: %w", domain.ErrStorageUnavailable, err)
	}

	downloadURL, _, err := c.storage.PresignDownload(ctx, storageKey, c.minioCfg.DownloadPresignDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: could not sign download url: %w", domain.ErrStorageUnavailable, err)
	}

	cred := &domain.UploadCredential{
		UploadURL:        uploadURL,
		DownloadURL:      downloadURL,
		StorageKey:       storageKey,
		OriginalFileName: req.FileName,
		ContentType:      req.ContentType,
		ExpiresIn:        expiry,
		Bucket:           c.storage.Bucket(),
	}

	if req.GeneratePlayURL {
		playURL, playExpiresAt, playErr := c.storage.PresignDownload(ctx, storageKey, c.minioCfg.PlayPresignDuration)
		if playErr != nil {
			return nil, fmt.Errorf("%w: could not sign play url: %w", domain.ErrStorageUnavailable, playErr)
		}
		cred.PlayURL = playURL
		cred.PlayURLExpiresAt = playExpiresAt
	}

	return cred, nil
}
