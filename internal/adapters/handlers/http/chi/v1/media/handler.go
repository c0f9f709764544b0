package media

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"course-media/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 media routes
type HandlerV1 struct {
	credentialService port.CredentialService
	multipartService  port.MultipartService
	auditService      port.AuditService
	mediaService      port.MediaService
	logger            *slog.Logger
}

// NewMediaHandlerV1 creates HandlerV1
func NewMediaHandlerV1(credentialService port.CredentialService, multipartService port.MultipartService, auditService port.AuditService, mediaService port.MediaService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		credentialService: credentialService,
		multipartService:  multipartService,
		auditService:      auditService,
		mediaService:      mediaService,
		logger:            logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/presign", h.PresignV1)
	router.Post("/multipart", h.MultipartV1)
	router.Post("/refresh", h.RefreshV1)
	router.Post("/", h.RegisterV1)
	router.Get("/{mediaID}", h.GetMediaV1)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		h.logger.Error("error encoding error response", "error", err)
	}
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
