package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-search/internal/model"
)

// Search defaults
const (
	// DefaultToolPath is resolved through PATH
	DefaultToolPath = "yt-dlp"

	// DefaultResultCount is the N in ytsearchN:
	DefaultResultCount = 30

	// DefaultInactivityTimeout stops a search whose output went quiet
	DefaultInactivityTimeout = 60 * time.Second

	// MaxLineSize is the longest stdout line accepted from the tool
	MaxLineSize = 16 * 1024 * 1024
)

// Search tool arguments
const (
	searchPrefix     = "ytsearch"
	printJSONFlag    = "--print-json"
	skipDownloadFlag = "--skip-download"
)

// Options configures a Supervisor. Zero values fall back to the defaults above.
type Options struct {
	ToolPath          string
	ResultCount       int
	InactivityTimeout time.Duration

	// ResetOnParsedItemOnly restarts the inactivity window only when a
	// record was parsed, instead of on every line read.
	ResetOnParsedItemOnly bool

	Clock   clockwork.Clock
	Starter Starter
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.ToolPath) == "" {
		o.ToolPath = DefaultToolPath
	}
	if o.ResultCount <= 0 {
		o.ResultCount = DefaultResultCount
	}
	if o.InactivityTimeout <= 0 {
		o.InactivityTimeout = DefaultInactivityTimeout
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Starter == nil {
		o.Starter = ExecStarter{}
	}
	return o
}

// SearchArgs returns the yt-dlp arguments searching for the first count videos matching query
func SearchArgs(query string, count int) []string {
	return []string{
		fmt.Sprintf("%s%d:%s", searchPrefix, count, query),
		printJSONFlag,
		skipDownloadFlag,
	}
}

// Supervisor owns at most one live search session at a time
type Supervisor struct {
	sink EventSink

	mu      sync.Mutex // serializes Start and guards opts
	opts    Options
	current atomic.Pointer[Session]
}

// NewSupervisor creates a supervisor publishing to sink
func NewSupervisor(sink EventSink, opts Options) *Supervisor {
	if sink == nil {
		sink = discardSink{}
	}
	return &Supervisor{
		sink: sink,
		opts: opts.withDefaults(),
	}
}

// SetResultCount changes N for subsequent searches
func (s *Supervisor) SetResultCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = DefaultResultCount
	}
	s.opts.ResultCount = n
}

// SetInactivityTimeout changes the inactivity window for subsequent searches
func (s *Supervisor) SetInactivityTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d <= 0 {
		d = DefaultInactivityTimeout
	}
	s.opts.InactivityTimeout = d
}

// SetToolPath changes the yt-dlp executable for subsequent searches
func (s *Supervisor) SetToolPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(path) == "" {
		path = DefaultToolPath
	}
	s.opts.ToolPath = path
}

// Current returns the latest session, or nil before the first Start
func (s *Supervisor) Current() *Session {
	return s.current.Load()
}

// Running reports whether the latest session still owns a live process
func (s *Supervisor) Running() bool {
	sess := s.current.Load()
	return sess != nil && sess.State().IsActive()
}

// Start launches a new search for query.
//
// While the current session is Running, Start fails with ErrAlreadyRunning.
// A previous session that is stopping, or still delivering its terminal
// event, is waited for before the new one is launched. If the tool cannot be started, the returned session is Failed,
// its single Failed status has already been published and the error wraps
// ErrLaunchFailed.
func (s *Supervisor) Start(ctx context.Context, query string) (*Session, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev := s.current.Load(); prev != nil {
		if prev.State() == model.SessionRunning {
			return nil, ErrAlreadyRunning
		}
		// Done closes after the terminal event was delivered, so no event of
		// prev can reach the sink once the new session is current
		select {
		case <-prev.Done():
		default:
			log.Debug().Str("op", "search/start").Msgf("Waiting for session %s to stop", prev.ID)
			select {
			case <-prev.Done():
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	sess := newSession(s, query, s.opts)
	s.current.Store(sess)

	log.Info().Str("op", "search/start").Msgf("Starting search %s for %q", sess.ID, query)
	if err := sess.launch(ctx); err != nil {
		return sess, err
	}
	return sess, nil
}

// Cancel requests a stop of sess. It is safe to call with a nil or finished session.
func (s *Supervisor) Cancel(sess *Session) {
	if sess == nil {
		return
	}
	sess.Cancel()
}

// CancelCurrent requests a stop of the latest session, if any
func (s *Supervisor) CancelCurrent() {
	s.Cancel(s.current.Load())
}

// deliver forwards ev unless sess was superseded by a newer session
func (s *Supervisor) deliver(sess *Session, ev model.Event) {
	if s.current.Load() != sess {
		log.Debug().Str("op", "search/deliver").Msgf("Dropping %s event of stale session %s", ev.Kind, sess.ID)
		return
	}
	s.sink.Publish(ev)
}
