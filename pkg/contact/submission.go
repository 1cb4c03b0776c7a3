package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/folio-dev/folio/pkg/logger"
)

// Submission is the state behind one contact modal.
// It is safe for concurrent use.
type Submission struct {
	deliverer Deliverer
	logger    *slog.Logger
	watchers  map[*watcher]struct{}
	config    Config
	status    Status
	form      Form

	// generation changes on Dismiss and Open; deliveries started under an
	// older generation are discarded when they resolve.
	generation uint64
	mu         sync.Mutex
	open       bool
}

type watcher struct {
	ch chan Snapshot
}

// Option configures a Submission.
type Option func(*Submission)

// WithLogger sets the logger used to report delivery failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Submission) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSubmission creates an idle submission with an empty form.
func NewSubmission(d Deliverer, cfg Config, opts ...Option) *Submission {
	s := &Submission{
		deliverer: d,
		config:    cfg,
		logger:    logger.NewNope(),
		status:    statusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateField sets one form field. Other fields are left unchanged.
func (s *Submission) UpdateField(field Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.form = s.form.With(field, value)
	s.publishLocked()
}

// Submit starts a delivery of the current form.
//
// If a delivery is already in flight the call does nothing and returns
// (nil, false). Otherwise the status becomes Sending and the returned
// channel yields exactly one Outcome once the collaborator resolves.
// The delivery is detached from ctx cancellation and has no timeout.
func (s *Submission) Submit(ctx context.Context) (<-chan Outcome, bool) {
	s.mu.Lock()
	if s.status.IsSending() {
		s.mu.Unlock()
		return nil, false
	}
	s.status = statusSending
	gen := s.generation
	req := newRequest(s.config, s.form)
	s.publishLocked()
	s.mu.Unlock()

	done := make(chan Outcome, 1)
	go s.deliver(context.WithoutCancel(ctx), gen, req, done)
	return done, true
}

func (s *Submission) deliver(ctx context.Context, gen uint64, req Request, done chan<- Outcome) {
	defer close(done)

	start := time.Now()
	err := s.call(ctx, req)

	result := statusSent
	if err != nil {
		result = statusFailed
		s.logger.ErrorContext(ctx, "contact delivery failed",
			slog.Any("error", errors.Join(ErrDeliveryFailed, err)),
			slog.Duration("duration", time.Since(start)),
		)
	} else {
		s.logger.InfoContext(ctx, "contact delivered",
			slog.Duration("duration", time.Since(start)),
		)
	}

	s.mu.Lock()
	discarded := gen != s.generation || !s.status.IsSending()
	if !discarded {
		s.status = result
		if err == nil {
			s.form = Form{}
		}
		s.publishLocked()
	}
	s.mu.Unlock()

	if discarded {
		s.logger.InfoContext(ctx, "stale contact delivery result discarded",
			slog.String("status", result.State.String()),
		)
	}

	done <- Outcome{Status: result, Discarded: discarded}
}

// call invokes the deliverer, converting a panic into a failed delivery.
func (s *Submission) call(ctx context.Context, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("deliverer panicked: %v", r)
		}
	}()
	if s.deliverer == nil {
		return errors.New("no deliverer configured")
	}
	return s.deliverer.Deliver(ctx, req)
}

// Dismiss closes the modal: the status returns to Idle and any failure
// message is cleared. The form is kept.
func (s *Submission) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
	s.resetLocked()
}

// Open reopens the modal with an Idle status. The form is kept.
func (s *Submission) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = true
	s.resetLocked()
}

func (s *Submission) resetLocked() {
	s.generation++
	s.status = statusIdle
	s.publishLocked()
}

// Status returns the current send status.
func (s *Submission) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Form returns the current form values.
func (s *Submission) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Snapshot returns a consistent copy of the form, status and visibility.
func (s *Submission) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Submission) snapshotLocked() Snapshot {
	return Snapshot{Form: s.form, Status: s.status, Open: s.open}
}

// Watch streams snapshots until ctx is done. The current snapshot is sent
// first. A slow reader only sees the latest snapshot; intermediate ones are
// dropped. The channel is closed when ctx ends.
func (s *Submission) Watch(ctx context.Context) <-chan Snapshot {
	w := &watcher{ch: make(chan Snapshot, 1)}

	s.mu.Lock()
	if s.watchers == nil {
		s.watchers = make(map[*watcher]struct{})
	}
	s.watchers[w] = struct{}{}
	w.ch <- s.snapshotLocked()
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		close(w.ch)
		s.mu.Unlock()
	}()

	return w.ch
}

// publishLocked pushes the current snapshot to every watcher.
// Sends never block: the buffer is drained first and only publishers
// holding s.mu write to it.
func (s *Submission) publishLocked() {
	if len(s.watchers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for w := range s.watchers {
		select {
		case <-w.ch:
		default:
		}
		w.ch <- snap
	}
}
