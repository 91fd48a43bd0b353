package search_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/search"
)

const eventTimeout = 5 * time.Second

// fakeProcess simulates the search tool: the test writes its stdout lines
type fakeProcess struct {
	pr *io.PipeReader
	pw *io.PipeWriter

	exited   chan struct{}
	exitOnce sync.Once

	// holdOnKill keeps the process alive after Kill until exit is called
	holdOnKill bool
	killErr    error
	kills      atomic.Int32
}

func newFakeProcess() *fakeProcess {
	pr, pw := io.Pipe()
	return &fakeProcess{pr: pr, pw: pw, exited: make(chan struct{})}
}

func (p *fakeProcess) Stdout() io.Reader { return p.pr }
func (p *fakeProcess) Pid() int          { return 4242 }

func (p *fakeProcess) Wait() error {
	<-p.exited
	return nil
}

func (p *fakeProcess) Kill() error {
	p.kills.Add(1)
	if !p.holdOnKill {
		p.exit()
	}
	return p.killErr
}

// exit closes stdout and lets Wait return
func (p *fakeProcess) exit() {
	p.exitOnce.Do(func() {
		_ = p.pw.Close()
		close(p.exited)
	})
}

func (p *fakeProcess) writeLine(t *testing.T, line string) {
	t.Helper()
	_, err := fmt.Fprintln(p.pw, line)
	require.NoError(t, err)
}

type fakeStarter struct {
	mu    sync.Mutex
	procs []*fakeProcess
	err   error
	name  string
	args  []string
}

func (s *fakeStarter) Start(_ context.Context, name string, args ...string) (search.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	s.args = args
	if s.err != nil {
		return nil, s.err
	}
	if len(s.procs) == 0 {
		return nil, fmt.Errorf("no fake process queued")
	}
	p := s.procs[0]
	s.procs = s.procs[1:]
	return p, nil
}

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []model.Event
	ch     chan model.Event
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan model.Event, 1024)}
}

func (r *recorder) Publish(ev model.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func (r *recorder) all() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) next(t *testing.T) model.Event {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for event")
		return model.Event{}
	}
}

// until returns events up to and including the first one matching pred
func (r *recorder) until(t *testing.T, pred func(model.Event) bool) []model.Event {
	t.Helper()
	var seen []model.Event
	for {
		ev := r.next(t)
		seen = append(seen, ev)
		if pred(ev) {
			return seen
		}
	}
}

func (r *recorder) terminal(t *testing.T) model.Event {
	t.Helper()
	seen := r.until(t, model.Event.IsTerminal)
	return seen[len(seen)-1]
}

func (r *recorder) requireQuiet(t *testing.T) {
	t.Helper()
	select {
	case ev := <-r.ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func isItem(ev model.Event) bool { return ev.Kind == model.EventItemFound }

func record(id, title string) string {
	return fmt.Sprintf(`{"id":%q,"title":%q,"uploader":"chan","view_count":10,"upload_date":"20240102"}`, id, title)
}

// waitDone fails the test if the session does not finish in time
func waitDone(t *testing.T, sess *search.Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	require.NoError(t, sess.Wait(ctx))
}
