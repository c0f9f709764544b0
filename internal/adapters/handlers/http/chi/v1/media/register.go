package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// V1RegisterRequest registers an object already uploaded through a
// presigned URL
type V1RegisterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StorageKey  string `json:"storageKey"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// V1MediaResponse is the wire shape of a media record
type V1MediaResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	StorageKey         string     `json:"storageKey"`
	AccessURL          string     `json:"accessUrl,omitempty"`
	AccessURLExpiresAt *time.Time `json:"accessUrlExpiresAt,omitempty"`
	ContentType        string     `json:"contentType,omitempty"`
	SizeBytes          int64      `json:"sizeBytes"`
}

func toMediaResponse(record *domain.MediaRecord) V1MediaResponse {
	resp := V1MediaResponse{
		ID:                 record.ID,
		Title:              record.Title,
		Description:        record.Description,
		StorageKey:         record.StorageKey,
		AccessURLExpiresAt: record.AccessURLExpiresAt,
		ContentType:        record.ContentType,
		SizeBytes:          record.SizeBytes,
	}
	if record.AccessURL != nil {
		resp.AccessURL = *record.AccessURL
	}
	return resp
}

func (h *HandlerV1) RegisterV1(w http.ResponseWriter, r *http.Request) {

	var req V1RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding register request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.mediaService.Register(r.Context(), req.Title, req.Description, req.StorageKey, req.ContentType, req.SizeBytes)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error registering media record", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "could not register media record")
		return
	}

	h.writeJSON(w, http.StatusCreated, toMediaResponse(record))
}
