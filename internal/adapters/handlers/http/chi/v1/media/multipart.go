package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// maxUploadPartMemory bounds how much of a chunk is buffered in memory
// before spilling to a temp file.
const maxUploadPartMemory = 10 << 20

// V1MultipartRequest carries the init and complete actions (JSON). The
// upload action arrives as multipart/form-data instead, since it carries
// chunk bytes.
type V1MultipartRequest struct {
	Action      string       `json:"action"`
	FileName    string       `json:"fileName"`
	ContentType string       `json:"contentType"`
	UploadID    string       `json:"uploadId"`
	ObjectName  string       `json:"objectName"`
	ETags       []V1PartETag `json:"etags"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

type V1PartETag struct {
	PartNumber int    `json:"partNumber"`
	ETag       string `json:"etag"`
}

type V1MultipartInitResponse struct {
	Success    bool   `json:"success"`
	UploadID   string `json:"uploadId"`
	ObjectName string `json:"objectName"`
}

type V1MultipartUploadResponse struct {
	Success     bool   `json:"success"`
	ChunkNumber int    `json:"chunkNumber"`
	ETag        string `json:"etag"`
}

type V1MultipartCompleteResponse struct {
	Success  bool      `json:"success"`
	ID       uuid.UUID `json:"id"`
	VideoURL string    `json:"video_url"`
}

// MultipartV1 dispatches on the action field: init and complete are JSON
// bodies, upload is multipart/form-data carrying the chunk.
func (h *HandlerV1) MultipartV1(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.uploadPartV1(w, r)
		return
	}

	var req V1MultipartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding multipart request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Action {
	case "init":
		h.initMultipartV1(w, r, req)
	case "complete":
		h.completeMultipartV1(w, r, req)
	default:
		h.writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
	}
}

func (h *HandlerV1) initMultipartV1(w http.ResponseWriter, r *http.Request, req V1MultipartRequest) {
	upload, err := h.multipartService.Initiate(r.Context(), req.FileName, req.ContentType)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error initiating multipart upload", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, V1MultipartInitResponse{
		Success:    true,
		UploadID:   upload.UploadID,
		ObjectName: upload.StorageKey,
	})
}

func (h *HandlerV1) uploadPartV1(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadPartMemory); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if action := r.FormValue("action"); action != "upload" {
		h.writeError(w, http.StatusBadRequest, "unknown action: "+action)
		return
	}

	uploadID := r.FormValue("uploadId")
	objectName := r.FormValue("objectName")
	chunkNumber, err := strconv.Atoi(r.FormValue("chunkNumber"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "chunkNumber must be an integer")
		return
	}

	chunk, header, err := r.FormFile("chunk")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "chunk file is required")
		return
	}
	defer chunk.Close()

	etag, err := h.multipartService.UploadPart(r.Context(), uploadID, objectName, chunkNumber, chunk, header.Size)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error uploading part", "error", err, "chunkNumber", chunkNumber)
		h.writeError(w, http.StatusServiceUnavailable, "part upload failed")
		return
	}

	h.writeJSON(w, http.StatusOK, V1MultipartUploadResponse{
		Success:     true,
		ChunkNumber: chunkNumber,
		ETag:        etag,
	})
}

func (h *HandlerV1) completeMultipartV1(w http.ResponseWriter, r *http.Request, req V1MultipartRequest) {
	parts := make([]domain.UploadPart, 0, len(req.ETags))
	for _, etag := range req.ETags {
		parts = append(parts, domain.UploadPart{
			PartNumber: etag.PartNumber,
			ETag:       etag.ETag,
		})
	}

	record, err := h.multipartService.Complete(r.Context(), req.UploadID, req.ObjectName, parts, req.Title, req.Description)
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrIncompleteUpload), errors.Is(err, domain.ErrDuplicatePart):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("error completing multipart upload", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "could not complete upload")
		return
	}

	videoURL := ""
	if record.AccessURL != nil {
		videoURL = *record.AccessURL
	}
	h.writeJSON(w, http.StatusOK, V1MultipartCompleteResponse{
		Success:  true,
		ID:       record.ID,
		VideoURL: videoURL,
	})
}
