package search

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-search/internal/model"
)

const initialLineBuffer = 64 * 1024

// Session is one search invocation. Sessions are never reused.
type Session struct {
	ID        string
	Query     string
	StartedAt time.Time

	sup  *Supervisor
	opts Options
	proc Process

	// emitMu keeps state changes and their events in one order
	emitMu sync.Mutex

	mu      sync.RWMutex
	state   model.SessionState
	reason  model.StopReason
	results []model.SearchResult
	err     error

	cancelled    atomic.Bool
	exhausted    atomic.Bool
	lastActivity atomic.Int64

	// abandoned is closed when the process could not be killed; the
	// session then stops reading and waiting for it
	abandoned   chan struct{}
	abandonOnce sync.Once

	watchStop chan struct{}
	watchDone chan struct{}
	done      chan struct{}
}

func newSession(sup *Supervisor, query string, opts Options) *Session {
	return &Session{
		ID:        newSessionID(),
		Query:     query,
		sup:       sup,
		opts:      opts,
		state:     model.SessionIdle,
		abandoned: make(chan struct{}),
		watchStop: make(chan struct{}),
		watchDone: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// State returns the current lifecycle state
func (s *Session) State() model.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// StopReason tells why the session was stopped, if it was
func (s *Session) StopReason() model.StopReason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Cancelled reports whether a stop was requested
func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

// Err returns the launch error of a Failed session
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Results returns a copy of the results gathered so far
func (s *Session) Results() []model.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}

// Count returns the number of results gathered so far
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Done is closed after the terminal status event was published
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session reached a terminal state or ctx is done
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cancel requests a stop and kills the process tree. It is a no-op unless
// the session is Running.
func (s *Session) Cancel() {
	s.stop(model.StopReasonUser)
}

func (s *Session) launch(ctx context.Context) error {
	args := SearchArgs(s.Query, s.opts.ResultCount)
	s.StartedAt = s.opts.Clock.Now()

	proc, err := s.opts.Starter.Start(ctx, s.opts.ToolPath, args...)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrLaunchFailed, err)
		log.Error().Str("op", "search/launch").Err(err).Msgf("Could not start %s", s.opts.ToolPath)

		s.emitMu.Lock()
		s.mu.Lock()
		s.state = model.SessionFailed
		s.err = err
		s.mu.Unlock()
		s.publish(model.Event{Kind: model.EventStatusChanged, State: model.SessionFailed, Message: err.Error()})
		s.emitMu.Unlock()

		close(s.watchDone)
		close(s.done)
		return err
	}

	s.proc = proc
	s.touch()

	s.emitMu.Lock()
	s.mu.Lock()
	s.state = model.SessionRunning
	s.mu.Unlock()
	s.publish(model.Event{Kind: model.EventStatusChanged, State: model.SessionRunning})
	s.emitMu.Unlock()

	go s.watch(ctx)
	go s.read()
	return nil
}

// read consumes stdout line by line until it is exhausted or the process was abandoned
func (s *Session) read() {
	defer close(s.done)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go s.scan(lines, scanErr)

	var readErr error
loop:
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				readErr = <-scanErr
				break loop
			}
			if s.cancelled.Load() {
				// drain until the killed process closes stdout
				continue
			}
			s.handleLine(line)
		case <-s.abandoned:
			break loop
		}
	}

	close(s.watchStop)
	<-s.watchDone

	if readErr != nil && !s.cancelled.Load() {
		log.Error().Str("op", "search/read").Err(readErr).Msgf("Reading output of session %s failed", s.ID)
		// the tool may block on a full pipe once we stop reading
		if err := s.proc.Kill(); err != nil {
			log.Warn().Str("op", "search/read").Err(err).Msg("Could not kill search process")
			s.abandon()
		}
	}

	s.waitProcess()
	s.finish(readErr)
}

// scan splits stdout into lines. Lines are copied since the scanner reuses its buffer.
func (s *Session) scan(lines chan<- []byte, result chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(s.proc.Stdout())
	scanner.Buffer(make([]byte, 0, initialLineBuffer), MaxLineSize)

	for scanner.Scan() {
		select {
		case lines <- bytes.Clone(scanner.Bytes()):
		case <-s.abandoned:
			result <- nil
			return
		}
	}
	s.exhausted.Store(true)
	result <- scanner.Err()
}

func (s *Session) handleLine(line []byte) {
	if !s.opts.ResetOnParsedItemOnly {
		s.touch()
	}

	res, ok := ParseLine(line)
	if !ok {
		log.Debug().Str("op", "search/read").Msgf("Skipping line of %d bytes", len(line))
		return
	}
	if s.opts.ResetOnParsedItemOnly {
		s.touch()
	}
	s.add(res)
}

// waitProcess reaps the process unless it was abandoned
func (s *Session) waitProcess() {
	exited := make(chan error, 1)
	go func() {
		exited <- s.proc.Wait()
	}()

	select {
	case err := <-exited:
		if err != nil {
			log.Debug().Str("op", "search/read").Err(err).Msgf("Search process of session %s exited", s.ID)
		}
	case <-s.abandoned:
		log.Warn().Str("op", "search/read").Msgf("Leaving process %d of session %s behind", s.proc.Pid(), s.ID)
	}
}

// abandon releases the session from a process that survived Kill
func (s *Session) abandon() {
	s.abandonOnce.Do(func() {
		close(s.abandoned)
		if c, ok := s.proc.Stdout().(io.Closer); ok {
			_ = c.Close()
		}
	})
}

func (s *Session) add(res model.SearchResult) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	if s.cancelled.Load() {
		return
	}

	s.mu.Lock()
	s.results = append(s.results, res)
	count := len(s.results)
	s.mu.Unlock()

	s.publish(model.Event{
		Kind:   model.EventItemFound,
		State:  model.SessionRunning,
		Count:  count,
		Result: &res,
	})
}

func (s *Session) finish(readErr error) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.state = model.SessionCompleted
	count := len(s.results)
	reason := s.reason
	s.mu.Unlock()

	cancelled := s.cancelled.Load()
	ev := model.Event{
		Kind:      model.EventStatusChanged,
		State:     model.SessionCompleted,
		Count:     count,
		Cancelled: cancelled,
		Reason:    reason,
	}
	if readErr != nil && !cancelled {
		ev.Message = readErr.Error()
	}

	log.Info().Str("op", "search/finish").Msgf("Session %s completed with %d results (cancelled=%t)", s.ID, count, cancelled)
	s.publish(ev)
}

// stop moves a Running session to StoppingRequested and kills its process tree
func (s *Session) stop(reason model.StopReason) bool {
	s.emitMu.Lock()
	s.mu.Lock()
	// a timer racing the end of output must not turn a finished search into a timeout
	if s.state != model.SessionRunning || (reason == model.StopReasonTimeout && s.exhausted.Load()) {
		s.mu.Unlock()
		s.emitMu.Unlock()
		return false
	}
	s.state = model.SessionStoppingRequested
	s.reason = reason
	s.cancelled.Store(true)
	count := len(s.results)
	s.mu.Unlock()

	if reason == model.StopReasonTimeout {
		s.publish(model.Event{
			Kind:   model.EventTimedOut,
			State:  model.SessionStoppingRequested,
			Count:  count,
			Reason: reason,
		})
	}
	s.publish(model.Event{
		Kind:      model.EventStatusChanged,
		State:     model.SessionStoppingRequested,
		Count:     count,
		Cancelled: true,
		Reason:    reason,
	})
	s.emitMu.Unlock()

	log.Info().Str("op", "search/stop").Msgf("Stopping session %s (%s)", s.ID, reason)
	if err := s.proc.Kill(); err != nil {
		err = fmt.Errorf("%w: %w", ErrTerminationFailed, err)
		log.Error().Str("op", "search/stop").Err(err).Msgf("Could not kill process %d", s.proc.Pid())

		s.emitMu.Lock()
		if s.State() == model.SessionStoppingRequested {
			s.publish(model.Event{
				Kind:      model.EventStatusChanged,
				State:     model.SessionStoppingRequested,
				Count:     s.Count(),
				Cancelled: true,
				Reason:    reason,
				Message:   err.Error(),
			})
		}
		s.emitMu.Unlock()
		s.abandon()
	}
	return true
}

// watch enforces the inactivity window while the session is alive
func (s *Session) watch(ctx context.Context) {
	defer close(s.watchDone)

	window := s.opts.InactivityTimeout
	timer := s.opts.Clock.NewTimer(window)
	defer timer.Stop()

	for {
		select {
		case <-s.watchStop:
			return
		case <-ctx.Done():
			log.Debug().Str("op", "search/watch").Msgf("Context of session %s done", s.ID)
			s.stop(model.StopReasonUser)
			return
		case <-timer.Chan():
			if s.exhausted.Load() {
				return
			}
			idle := s.opts.Clock.Since(s.lastActivityTime())
			if idle >= window {
				log.Warn().Str("op", "search/watch").Msgf("No output for %s, stopping session %s", idle, s.ID)
				s.stop(model.StopReasonTimeout)
				return
			}
			timer.Reset(window - idle)
		}
	}
}

func (s *Session) touch() {
	s.lastActivity.Store(s.opts.Clock.Now().UnixNano())
}

func (s *Session) lastActivityTime() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

func (s *Session) publish(ev model.Event) {
	ev.SessionID = s.ID
	s.sup.deliver(s, ev)
}
