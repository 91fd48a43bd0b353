package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultWaitDelay bounds how long Wait keeps copying output after the process exited
	DefaultWaitDelay = 2 * time.Second
)

// Process is a running search tool as seen by a session
type Process interface {
	// Stdout streams the tool's standard output
	Stdout() io.Reader
	// Wait blocks until the process exited and its output was released
	Wait() error
	// Kill terminates the process together with everything it spawned
	Kill() error
	Pid() int
}

// Starter launches the search tool
type Starter interface {
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// ExecStarter starts real processes in their own process group so that a
// kill reaches every child (yt-dlp may spawn ffmpeg or a JS runtime).
type ExecStarter struct {
	WaitDelay time.Duration
}

// Start implements Starter
func (s ExecStarter) Start(_ context.Context, name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)
	cmd.Stderr = &lineLogger{op: "search/stderr"}
	cmd.WaitDelay = s.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("error creating stdout pipe: %w", err)
	}

	log.Debug().Str("op", "search/exec").Msgf("Executing command: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd, stdout: stdout}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Wait() error       { return p.cmd.Wait() }
func (p *execProcess) Pid() int          { return p.cmd.Process.Pid }
func (p *execProcess) Kill() error       { return killProcessTree(p.cmd.Process) }

// lineLogger forwards complete lines written to it to the debug log
type lineLogger struct {
	op  string
	buf bytes.Buffer
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.buf.Write(p)
	for {
		line, err := l.buf.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			l.buf.Reset()
			l.buf.WriteString(line)
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			log.Debug().Str("op", l.op).Msg(line)
		}
	}
	return len(p), nil
}
