package uploader_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course-media/internal/core/domain"
	"course-media/internal/uploader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker() *uploader.Tracker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return uploader.NewTracker(&http.Client{Timeout: 5 * time.Second}, logger)
}

func TestTracker_Start_UploadsAndReportsProgress(t *testing.T) {
	// Arrange
	payload := bytes.Repeat([]byte("x"), 64*1024)
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tracker := newTracker()

	// Act
	transfer := tracker.Start(context.Background(), server.URL, bytes.NewReader(payload), int64(len(payload)), "video/mp4")

	var snapshots []uploader.Progress
	for p := range transfer.Progress() {
		snapshots = append(snapshots, p)
	}
	err := transfer.Wait()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, payload, received)
	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	assert.Equal(t, int64(len(payload)), last.LoadedBytes)
	assert.Equal(t, int64(len(payload)), last.TotalBytes)
	assert.InDelta(t, 100.0, last.Percentage, 0.001)
	for i := 1; i < len(snapshots); i++ {
		assert.GreaterOrEqual(t, snapshots[i].LoadedBytes, snapshots[i-1].LoadedBytes)
	}
}

func TestTracker_Start_RejectedStatus(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "signature mismatch", http.StatusForbidden)
	}))
	defer server.Close()

	tracker := newTracker()

	// Act
	transfer := tracker.Start(context.Background(), server.URL, strings.NewReader("data"), 4, "text/plain")
	err := transfer.Wait()

	// Assert
	assert.ErrorIs(t, err, domain.ErrUploadRejected)
	assert.ErrorContains(t, err, "403")
}

func TestTracker_Start_NetworkFailure(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	tracker := newTracker()

	// Act
	transfer := tracker.Start(context.Background(), server.URL, strings.NewReader("data"), 4, "text/plain")
	err := transfer.Wait()

	// Assert
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
}

func TestTracker_Abort(t *testing.T) {
	// Arrange
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		<-release
	}))
	defer server.Close()
	defer close(release)

	tracker := newTracker()

	// Act
	transfer := tracker.Start(context.Background(), server.URL, strings.NewReader("data"), 4, "text/plain")
	transfer.Abort()
	err := transfer.Wait()

	// Assert
	assert.ErrorIs(t, err, domain.ErrAborted)
}

func TestTracker_ProgressChannelClosesOnTerminalState(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tracker := newTracker()

	// Act
	transfer := tracker.Start(context.Background(), server.URL, strings.NewReader("data"), 4, "text/plain")
	require.NoError(t, transfer.Wait())

	// Assert
	for range transfer.Progress() {
	}
	_, open := <-transfer.Progress()
	assert.False(t, open)
}

func TestProgress_RateMath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tracker := newTracker()
	payload := bytes.Repeat([]byte("y"), 256*1024)

	transfer := tracker.Start(context.Background(), server.URL, bytes.NewReader(payload), int64(len(payload)), "application/octet-stream")

	sawRate := false
	for p := range transfer.Progress() {
		assert.GreaterOrEqual(t, p.ThroughputBytesPerSec, 0.0)
		if p.ThroughputBytesPerSec > 0 {
			sawRate = true
			if p.LoadedBytes < p.TotalBytes {
				assert.GreaterOrEqual(t, p.ETASeconds, 0.0)
			}
		} else {
			// unmeasurable rate must map to the sentinel, never +Inf
			assert.Equal(t, uploader.ETAUnknown, p.ETASeconds)
		}
	}
	require.NoError(t, transfer.Wait())
	assert.True(t, sawRate)
}
