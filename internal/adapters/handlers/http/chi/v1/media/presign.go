package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"course-media/internal/core/domain"
)

// V1PresignRequest is the request for single-PUT upload credentials
type V1PresignRequest struct {
	FileName        string `json:"fileName"`
	ContentType     string `json:"contentType"`
	ExpiresSeconds  int64  `json:"expires"`
	GeneratePlayURL bool   `json:"generatePlayUrl"`
}

// V1PresignResponse is the issued credential set
type V1PresignResponse struct {
	Success          bool             `json:"success"`
	UploadURL        string           `json:"uploadUrl"`
	DownloadURL      string           `json:"downloadUrl"`
	PlayURL          string           `json:"playUrl,omitempty"`
	PlayURLExpiresAt *time.Time       `json:"playUrlExpiresAt,omitempty"`
	FileName         string           `json:"fileName"`
	OriginalFileName string           `json:"originalFileName"`
	ContentType      string           `json:"contentType"`
	ExpiresIn        int64            `json:"expiresIn"`
	Bucket           string           `json:"bucket"`
	Metadata         V1ObjectMetadata `json:"metadata"`
}

// V1ObjectMetadata mirrors the shape clients expect alongside a credential;
// the object does not exist yet at issuance so size and etag are zero values.
type V1ObjectMetadata struct {
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
	ETag       string    `json:"etag"`
}

func (h *HandlerV1) PresignV1(w http.ResponseWriter, r *http.Request) {

	var req V1PresignRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding presign request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	credential, err := h.credentialService.IssueUploadCredential(r.Context(), domain.CredentialRequest{
		FileName:        req.FileName,
		ContentType:     req.ContentType,
		Expires:         time.Duration(req.ExpiresSeconds) * time.Second,
		GeneratePlayURL: req.GeneratePlayURL,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error issuing upload credential", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	resp := V1PresignResponse{
		Success:          true,
		UploadURL:        credential.UploadURL,
		DownloadURL:      credential.DownloadURL,
		PlayURL:          credential.PlayURL,
		PlayURLExpiresAt: credential.PlayURLExpiresAt,
		FileName:         credential.StorageKey,
		OriginalFileName: credential.OriginalFileName,
		ContentType:      credential.ContentType,
		ExpiresIn:        int64(credential.ExpiresIn.Seconds()),
		Bucket:           credential.Bucket,
		Metadata:         V1ObjectMetadata{UploadedAt: time.Now()},
	}
	h.writeJSON(w, http.StatusOK, resp)
}
