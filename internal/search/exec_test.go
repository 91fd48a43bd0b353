package search_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/search"
)

// writeScript creates an executable shell script standing in for yt-dlp
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
	path := filepath.Join(t.TempDir(), "fake-yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestExecSearchCompletes(t *testing.T) {
	tool := writeScript(t, `echo "[youtube] searching $1"
echo '{"id":"a","title":"A","view_count":3}'
echo '{"id":"b","title":"B","upload_date":"20240101"}'
echo "progress" >&2`)

	rec := newRecorder()
	sup := search.NewSupervisor(rec, search.Options{ToolPath: tool})

	sess, err := sup.Start(t.Context(), "real")
	require.NoError(t, err)

	last := rec.terminal(t)
	require.Equal(t, model.SessionCompleted, last.State)
	require.False(t, last.Cancelled)
	require.Equal(t, 2, last.Count)
	waitDone(t, sess)

	results := sess.Results()
	require.Equal(t, "a", results[0].ID)
	require.EqualValues(t, 3, results[0].ViewCount)
	require.Equal(t, "2024.01.01", results[1].FormattedDate())
}

func TestExecSearchImmediateExit(t *testing.T) {
	tool := writeScript(t, "exit 1")

	rec := newRecorder()
	sup := search.NewSupervisor(rec, search.Options{ToolPath: tool})

	sess, err := sup.Start(t.Context(), "nothing")
	require.NoError(t, err)

	last := rec.terminal(t)
	require.Equal(t, model.SessionCompleted, last.State)
	require.Zero(t, last.Count)
	waitDone(t, sess)
}

func TestExecCancelKillsProcessTree(t *testing.T) {
	tool := writeScript(t, `echo '{"id":"a","title":"A"}'
sleep 30 &
sleep 30
wait`)

	rec := newRecorder()
	sup := search.NewSupervisor(rec, search.Options{ToolPath: tool})

	sess, err := sup.Start(t.Context(), "long")
	require.NoError(t, err)
	rec.until(t, isItem)

	sess.Cancel()
	last := rec.terminal(t)
	require.Equal(t, model.SessionCompleted, last.State)
	require.True(t, last.Cancelled)
	require.Equal(t, 1, last.Count)
	waitDone(t, sess)
}

func TestExecMissingBinary(t *testing.T) {
	rec := newRecorder()
	sup := search.NewSupervisor(rec, search.Options{ToolPath: filepath.Join(t.TempDir(), "no-such-yt-dlp")})

	sess, err := sup.Start(t.Context(), "missing")
	require.ErrorIs(t, err, search.ErrLaunchFailed)
	require.Equal(t, model.SessionFailed, sess.State())

	events := rec.all()
	require.Len(t, events, 1)
	require.Equal(t, model.SessionFailed, events[0].State)
}
