package media_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	media "course-media/internal/adapters/handlers/http/chi/v1/media"
	"course-media/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefreshV1_CheckMode(t *testing.T) {
	// Arrange
	router, mocks := newTestRouter()

	mocks.audit.
		On("Check", mock.Anything, domain.AuditOptions{}).
		Return(&domain.AuditReport{
			Total:    3,
			Expired:  1,
			Duration: 120 * time.Millisecond,
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/refresh", bytes.NewReader([]byte(`{"action":"check"}`)))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var resp media.V1RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "check", resp.Action)
	assert.Equal(t, 3, resp.Result.Total)
	assert.Equal(t, 1, resp.Result.Expired)
	assert.Zero(t, resp.Result.Refreshed)
	mocks.audit.AssertExpectations(t)
	mocks.audit.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestRefreshV1_RefreshModeWithScope(t *testing.T) {
	// Arrange
	router, mocks := newTestRouter()

	id := uuid.New()
	mocks.audit.
		On("Refresh", mock.Anything, domain.AuditOptions{
			BatchSize:   5,
			OnlyExpired: true,
			IDs:         []uuid.UUID{id},
		}).
		Return(&domain.AuditReport{
			Total:     1,
			Expired:   1,
			Refreshed: 1,
			Details: []domain.RecordAuditDetail{
				{ID: id, Title: "Lecture", Status: domain.RecordAuditStatusRefreshed},
			},
		}, nil)

	body := []byte(`{"action":"refresh","batchSize":5,"onlyExpired":true,"videoIds":["` + id.String() + `"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/refresh", bytes.NewReader(body))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var resp media.V1RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Result.Refreshed)
	require.Len(t, resp.Result.Details, 1)
	assert.Equal(t, "refreshed", resp.Result.Details[0].Status)

	// Per-record detail rows belong inside the result envelope.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "details")
	var result map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["result"], &result))
	assert.Contains(t, result, "details")

	mocks.audit.AssertExpectations(t)
}

func TestRefreshV1_InvalidVideoID(t *testing.T) {
	// Arrange
	router, mocks := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/refresh", bytes.NewReader([]byte(`{"action":"refresh","videoIds":["not-a-uuid"]}`)))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mocks.audit.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestRefreshV1_UnknownAction(t *testing.T) {
	// Arrange
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/refresh", bytes.NewReader([]byte(`{"action":"purge"}`)))
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown action")
}
