package media

import (
	"encoding/json"
	"net/http"
	"time"

	"course-media/internal/core/domain"

	"github.com/google/uuid"
)

// V1RefreshRequest selects the audit mode and its scope
type V1RefreshRequest struct {
	Action      string   `json:"action"`
	BatchSize   int      `json:"batchSize"`
	OnlyExpired bool     `json:"onlyExpired"`
	VideoIDs    []string `json:"videoIds"`
}

// V1RefreshResponse wraps the audit report
type V1RefreshResponse struct {
	Success  bool            `json:"success"`
	Action   string          `json:"action"`
	Duration string          `json:"duration"`
	Result   V1RefreshResult `json:"result"`
}

type V1RefreshResult struct {
	Total     int               `json:"total"`
	Expired   int               `json:"expired"`
	Refreshed int               `json:"refreshed"`
	Failed    int               `json:"failed"`
	Errors    []string          `json:"errors,omitempty"`
	Details   []V1RefreshDetail `json:"details,omitempty"`
}

type V1RefreshDetail struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Error     string     `json:"error,omitempty"`
	OldExpiry *time.Time `json:"oldExpiry,omitempty"`
	NewExpiry *time.Time `json:"newExpiry,omitempty"`
}

func (h *HandlerV1) RefreshV1(w http.ResponseWriter, r *http.Request) {

	var req V1RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding refresh request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ids []uuid.UUID
	for _, raw := range req.VideoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid video id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	opts := domain.AuditOptions{
		BatchSize:   req.BatchSize,
		OnlyExpired: req.OnlyExpired,
		IDs:         ids,
	}

	var report *domain.AuditReport
	var err error
	switch req.Action {
	case "check":
		report, err = h.auditService.Check(r.Context(), opts)
	case "refresh":
		report, err = h.auditService.Refresh(r.Context(), opts)
	default:
		h.writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		return
	}
	if err != nil {
		h.logger.Error("audit run failed", "action", req.Action, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "audit run failed")
		return
	}

	resp := V1RefreshResponse{
		Success:  true,
		Action:   req.Action,
		Duration: report.Duration.String(),
		Result: V1RefreshResult{
			Total:     report.Total,
			Expired:   report.Expired,
			Refreshed: report.Refreshed,
			Failed:    report.Failed,
			Errors:    report.Errors,
		},
	}
	for _, detail := range report.Details {
		resp.Result.Details = append(resp.Result.Details, V1RefreshDetail{
			ID:        detail.ID,
			Title:     detail.Title,
			Status:    string(detail.Status),
			Error:     detail.Error,
			OldExpiry: detail.OldExpiry,
			NewExpiry: detail.NewExpiry,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
