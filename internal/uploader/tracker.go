package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"course-media/internal/core/domain"
)

// ETAUnknown is reported when throughput is zero or not yet measurable.
const ETAUnknown float64 = -1

// Progress is a point-in-time snapshot of a running transfer.
type Progress struct {
	LoadedBytes           int64
	TotalBytes            int64
	Percentage            float64
	ThroughputBytesPerSec float64
	ETASeconds            float64
}

// Tracker starts HTTP PUT transfers against presigned URLs and reports
// their progress.
type Tracker struct {
	client *http.Client
	logger *slog.Logger
}

// NewTracker creates a new transfer tracker
func NewTracker(client *http.Client, logger *slog.Logger) *Tracker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Tracker{client: client, logger: logger}
}

// Transfer is a single in-flight upload. Progress snapshots are pushed on a
// buffered channel that is closed once the transfer reaches a terminal state;
// a Transfer is not restartable.
type Transfer struct {
	startedAt time.Time
	totalSize int64

	progress chan Progress
	done     chan struct{}
	cancel   context.CancelFunc

	abortOnce sync.Once
	aborted   atomic.Bool

	err error
}

// Start begins uploading body to url with a single HTTP PUT. It returns
// immediately; the caller consumes Progress() and resolves the outcome
// through Wait().
func (t *Tracker) Start(ctx context.Context, url string, body io.Reader, size int64, contentType string) *Transfer {
	ctx, cancel := context.WithCancel(ctx)

	transfer := &Transfer{
		startedAt: time.Now(),
		totalSize: size,
		progress:  make(chan Progress, 16),
		done:      make(chan struct{}),
		cancel:    cancel,
	}

	go func() {
		defer close(transfer.done)
		defer close(transfer.progress)
		transfer.err = t.run(ctx, url, body, size, contentType, transfer)
		if transfer.err != nil {
			t.logger.Warn("transfer ended with error", "sizeBytes", size, "error", transfer.err)
		}
	}()

	return transfer
}

func (t *Tracker) run(ctx context.Context, url string, body io.Reader, size int64, contentType string, transfer *Transfer) error {
	reader := &countingReader{inner: body, transfer: transfer}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	req.ContentLength = size
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if transfer.aborted.Load() || errors.Is(err, context.Canceled) {
			return domain.ErrAborted
		}
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: storage returned status %d", domain.ErrUploadRejected, resp.StatusCode)
	}

	transfer.push(transfer.snapshot(size))
	return nil
}

// Progress returns the snapshot stream. It is closed when the transfer ends.
func (tr *Transfer) Progress() <-chan Progress {
	return tr.progress
}

// Wait blocks until the transfer reaches a terminal state and returns its
// outcome: nil, ErrUploadRejected, ErrNetworkFailure or ErrAborted.
func (tr *Transfer) Wait() error {
	<-tr.done
	return tr.err
}

// Abort cancels the transfer. The outcome becomes ErrAborted unless the
// transfer already finished.
func (tr *Transfer) Abort() {
	tr.abortOnce.Do(func() {
		tr.aborted.Store(true)
		tr.cancel()
	})
}

// snapshot derives rates from the transfer's own start time, so concurrent
// transfers never share clock state.
func (tr *Transfer) snapshot(loaded int64) Progress {
	return tr.snapshotAt(loaded, time.Since(tr.startedAt))
}

func (tr *Transfer) snapshotAt(loaded int64, elapsed time.Duration) Progress {
	p := Progress{
		LoadedBytes: loaded,
		TotalBytes:  tr.totalSize,
		ETASeconds:  ETAUnknown,
	}

	if tr.totalSize > 0 {
		p.Percentage = float64(loaded) / float64(tr.totalSize) * 100
	}

	if secs := elapsed.Seconds(); secs > 0 {
		throughput := float64(loaded) / secs
		if !math.IsInf(throughput, 0) && !math.IsNaN(throughput) {
			p.ThroughputBytesPerSec = throughput
		}
	}

	if remaining := tr.totalSize - loaded; remaining >= 0 && p.ThroughputBytesPerSec > 0 {
		eta := float64(remaining) / p.ThroughputBytesPerSec
		if !math.IsInf(eta, 0) && !math.IsNaN(eta) {
			p.ETASeconds = eta
		}
	}

	return p
}

// push never blocks the request body read; a slow consumer just misses
// intermediate snapshots.
func (tr *Transfer) push(p Progress) {
	select {
	case tr.progress <- p:
	default:
	}
}

type countingReader struct {
	inner    io.Reader
	transfer *Transfer
	loaded   int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.inner.Read(b)
	if n > 0 {
		c.loaded += int64(n)
		c.transfer.push(c.transfer.snapshot(c.loaded))
	}
	return n, err
}
