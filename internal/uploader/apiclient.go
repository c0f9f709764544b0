package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"course-media/internal/core/domain"
	"course-media/internal/core/port"
)

// APICredentialSource obtains upload credentials from the api server's
// presign endpoint. It satisfies the same port the server-side issuer does,
// so the scheduler never knows which side of the wire it runs on.
type APICredentialSource struct {
	baseURL string
	client  *http.Client
}

// NewAPICredentialSource creates a new HTTP credential source
func NewAPICredentialSource(baseURL string, client *http.Client) port.CredentialService {
	if client == nil {
		client = http.DefaultClient
	}
	return &APICredentialSource{baseURL: baseURL, client: client}
}

type presignRequest struct {
	FileName        string `json:"fileName"`
	ContentType     string `json:"contentType,omitempty"`
	ExpiresSeconds  int64  `json:"expires,omitempty"`
	GeneratePlayURL bool   `json:"generatePlayUrl,omitempty"`
}

type presignResponse struct {
	Success          bool       `json:"success"`
	UploadURL        string     `json:"uploadUrl"`
	DownloadURL      string     `json:"downloadUrl"`
	PlayURL          string     `json:"playUrl"`
	PlayURLExpiresAt *time.Time `json:"playUrlExpiresAt"`
	FileName         string     `json:"fileName"`
	OriginalFileName string     `json:"originalFileName"`
	ContentType      string     `json:"contentType"`
	ExpiresIn        int64      `json:"expiresIn"`
	Bucket           string     `json:"bucket"`
	Error            string     `json:"error"`
}

func (a *APICredentialSource) IssueUploadCredential(ctx context.Context, req domain.CredentialRequest) (*domain.UploadCredential, error) {
	payload, err := json.Marshal(presignRequest{
		FileName:        req.FileName,
		ContentType:     req.ContentType,
		ExpiresSeconds:  int64(req.Expires.Seconds()),
		GeneratePlayURL: req.GeneratePlayURL,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/v1/media/presign", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	var decoded presignResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: could not decode presign response: %v", domain.ErrNetworkFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, decoded.Error)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: presign returned status %d: %s", domain.ErrStorageUnavailable, resp.StatusCode, decoded.Error)
	}

	return &domain.UploadCredential{
		UploadURL:        decoded.UploadURL,
		DownloadURL:      decoded.DownloadURL,
		PlayURL:          decoded.PlayURL,
		PlayURLExpiresAt: decoded.PlayURLExpiresAt,
		StorageKey:       decoded.FileName,
		OriginalFileName: decoded.OriginalFileName,
		ContentType:      decoded.ContentType,
		ExpiresIn:        time.Duration(decoded.ExpiresIn) * time.Second,
		Bucket:           decoded.Bucket,
	}, nil
}
