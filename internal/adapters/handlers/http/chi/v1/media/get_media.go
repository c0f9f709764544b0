package media

import (
	"errors"
	"net/http"

	"course-media/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *HandlerV1) GetMediaV1(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaID")

	id, err := uuid.Parse(mediaID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	record, err := h.mediaService.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		h.writeError(w, http.StatusNotFound, "media record not found")
		return
	case err != nil:
		h.logger.Error("error fetching media record", "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "could not fetch media record")
		return
	}

	h.writeJSON(w, http.StatusOK, toMediaResponse(record))
}
