package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"course-media/internal/config"
	"course-media/internal/core/domain"
	"course-media/internal/core/port"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of one queued upload.
type SessionStatus string

const (
	StatusPending              SessionStatus = "pending"
	StatusRequestingCredential SessionStatus = "requesting-credential"
	StatusUploading            SessionStatus = "uploading"
	StatusCompleted            SessionStatus = "completed"
	StatusError                SessionStatus = "error"
)

// Session is the externally visible state of one file in the batch.
type Session struct {
	FileID   uuid.UUID
	FileName string
	Status   SessionStatus
	Progress Progress
	Err      string
}

// UploadFile is one file queued for upload. Open is called once, when the
// file is admitted to a slot.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Summary is emitted on Done() once every queued file has resolved.
type Summary struct {
	Succeeded int
	Failed    int
}

// Scheduler drains a FIFO batch of files through a bounded number of
// concurrent transfers. All session state lives on a single run-loop
// goroutine; workers only report back over the event channel.
type Scheduler struct {
	creds   port.CredentialService
	tracker *Tracker
	max     int
	logger  *slog.Logger

	events   chan schedulerEvent
	commands chan schedulerCommand
	updates  chan Session
	done     chan Summary
	stopped  chan struct{}
}

type schedulerEvent struct {
	id       uuid.UUID
	cred     *domain.UploadCredential
	progress *Progress
	err      error
	terminal bool
}

type schedulerCommand struct {
	resetFailed bool
	abortID     uuid.UUID
}

// NewScheduler creates a new upload scheduler
func NewScheduler(creds port.CredentialService, tracker *Tracker, cfg config.ClientConfig, logger *slog.Logger) *Scheduler {
	max := cfg.MaxConcurrent
	if max <= 0 {
		max = 3
	}
	return &Scheduler{
		creds:    creds,
		tracker:  tracker,
		max:      max,
		logger:   logger,
		events:   make(chan schedulerEvent, 64),
		commands: make(chan schedulerCommand, 8),
		updates:  make(chan Session, 64),
		done:     make(chan Summary, 1),
		stopped:  make(chan struct{}),
	}
}

// Run starts draining files. It returns immediately; consume Updates() and
// Done() for progress and the batch outcome.
func (s *Scheduler) Run(ctx context.Context, files []UploadFile) {
	go s.loop(ctx, files)
}

// Updates streams session snapshots. Closed when the scheduler stops.
func (s *Scheduler) Updates() <-chan Session {
	return s.updates
}

// Done yields a Summary each time the batch fully drains (again after a
// ResetFailed re-enqueue). Closed when the scheduler stops.
func (s *Scheduler) Done() <-chan Summary {
	return s.done
}

// ResetFailed re-enqueues every errored session as pending. Nothing retries
// automatically; this is the only path out of the error state.
func (s *Scheduler) ResetFailed() {
	s.send(schedulerCommand{resetFailed: true})
}

// Abort cancels the transfer of one session, freeing its slot.
func (s *Scheduler) Abort(fileID uuid.UUID) {
	s.send(schedulerCommand{abortID: fileID})
}

func (s *Scheduler) send(cmd schedulerCommand) {
	select {
	case s.commands <- cmd:
	case <-s.stopped:
	}
}

type session struct {
	Session
	file     UploadFile
	transfer *Transfer
}

func (s *Scheduler) loop(ctx context.Context, files []UploadFile) {
	defer close(s.stopped)
	defer close(s.done)
	defer close(s.updates)

	sessions := make(map[uuid.UUID]*session, len(files))
	queue := make([]uuid.UUID, 0, len(files))
	for _, file := range files {
		id := uuid.New()
		sess := &session{
			Session: Session{FileID: id, FileName: file.Name, Status: StatusPending},
			file:    file,
		}
		sessions[id] = sess
		queue = append(queue, id)
		s.publish(sess)
	}

	active := 0
	drained := false

	admit := func() {
		for active < s.max && len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			sess := sessions[id]
			sess.Status = StatusRequestingCredential
			sess.Err = ""
			active++
			drained = false
			s.publish(sess)
			go s.requestCredential(ctx, sess.file, id)
		}
	}

	checkDrained := func() {
		if drained || active > 0 || len(queue) > 0 {
			return
		}
		drained = true
		var summary Summary
		for _, sess := range sessions {
			switch sess.Status {
			case StatusCompleted:
				summary.Succeeded++
			case StatusError:
				summary.Failed++
			}
		}
		s.logger.Info("upload batch drained",
			"succeeded", summary.Succeeded,
			"failed", summary.Failed)
		select {
		case s.done <- summary:
		default:
		}
	}

	resolve := func(sess *session, err error) {
		if err != nil {
			sess.Status = StatusError
			sess.Err = err.Error()
		} else {
			sess.Status = StatusCompleted
		}
		sess.transfer = nil
		active--
		s.publish(sess)
		admit()
		checkDrained()
	}

	admit()
	checkDrained()

	for {
		select {
		case <-ctx.Done():
			for _, sess := range sessions {
				if sess.transfer != nil {
					sess.transfer.Abort()
				}
			}
			// each active worker still owes one final event; consume them so
			// none stays blocked on the channel
			for active > 0 {
				ev := <-s.events
				if ev.progress != nil {
					continue
				}
				active--
			}
			return

		case ev := <-s.events:
			sess, ok := sessions[ev.id]
			if !ok {
				continue
			}
			switch {
			case ev.terminal:
				resolve(sess, ev.err)
			case ev.progress != nil:
				if sess.Status == StatusUploading {
					sess.Progress = *ev.progress
					s.publish(sess)
				}
			case ev.err != nil:
				resolve(sess, ev.err)
			default:
				if err := s.startTransfer(ctx, sess, ev.cred); err != nil {
					resolve(sess, err)
				}
			}

		case cmd := <-s.commands:
			if cmd.resetFailed {
				for _, sess := range sessions {
					if sess.Status == StatusError {
						sess.Status = StatusPending
						sess.Err = ""
						sess.Progress = Progress{}
						queue = append(queue, sess.FileID)
						s.publish(sess)
					}
				}
				admit()
				continue
			}
			if sess, ok := sessions[cmd.abortID]; ok && sess.transfer != nil {
				sess.transfer.Abort()
			}
		}
	}
}

func (s *Scheduler) requestCredential(ctx context.Context, file UploadFile, id uuid.UUID) {
	cred, err := s.creds.IssueUploadCredential(ctx, domain.CredentialRequest{
		FileName:    file.Name,
		ContentType: file.ContentType,
	})
	s.events <- schedulerEvent{id: id, cred: cred, err: err}
}

// startTransfer runs on the loop goroutine; only the progress forwarder
// leaves it.
func (s *Scheduler) startTransfer(ctx context.Context, sess *session, cred *domain.UploadCredential) error {
	body, err := sess.file.Open()
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}

	transfer := s.tracker.Start(ctx, cred.UploadURL, body, sess.file.Size, sess.file.ContentType)
	sess.transfer = transfer
	sess.Status = StatusUploading
	s.publish(sess)

	id := sess.FileID
	go func() {
		defer body.Close()
		for p := range transfer.Progress() {
			snapshot := p
			s.events <- schedulerEvent{id: id, progress: &snapshot}
		}
		s.events <- schedulerEvent{id: id, err: transfer.Wait(), terminal: true}
	}()

	return nil
}

// publish never blocks the loop; slow consumers miss intermediate snapshots.
func (s *Scheduler) publish(sess *session) {
	select {
	case s.updates <- sess.Session:
	default:
	}
}
