package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-search/internal/cli"
	"github.com/ytget/yt-search/internal/download"
	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/search"
)

const (
	lineA = `{"id":"aaa","title":"First","uploader":"Ann","view_count":1500,"upload_date":"20240102"}`
	lineB = `{"id":"bbb","title":"Second","uploader":"Bob","view_count":20,"upload_date":"20230101"}`
)

// scriptedProcess prints lines and exits, or hangs until killed
type scriptedProcess struct {
	pr     *io.PipeReader
	pw     *io.PipeWriter
	exited chan struct{}
	once   sync.Once
}

func newScriptedProcess(lines []string, hang bool) *scriptedProcess {
	pr, pw := io.Pipe()
	p := &scriptedProcess{pr: pr, pw: pw, exited: make(chan struct{})}
	go func() {
		for _, line := range lines {
			if _, err := io.WriteString(pw, line+"\n"); err != nil {
				return
			}
		}
		if !hang {
			p.exit()
		}
	}()
	return p
}

func (p *scriptedProcess) exit() {
	p.once.Do(func() {
		_ = p.pw.Close()
		close(p.exited)
	})
}

func (p *scriptedProcess) Stdout() io.Reader { return p.pr }
func (p *scriptedProcess) Pid() int          { return 1 }
func (p *scriptedProcess) Kill() error       { p.exit(); return nil }

func (p *scriptedProcess) Wait() error {
	<-p.exited
	return nil
}

type scriptedStarter struct {
	lines   []string
	hang    bool
	err     error
	onStart func()

	mu   sync.Mutex
	name string
	args []string
}

func (s *scriptedStarter) Start(_ context.Context, name string, args ...string) (search.Process, error) {
	s.mu.Lock()
	s.name, s.args = name, args
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.onStart != nil {
		s.onStart()
	}
	return newScriptedProcess(s.lines, s.hang), nil
}

type fakeDownloader struct {
	download.Downloader

	dir      string
	tool     string
	result   model.SearchResult
	mode     model.DownloadMode
	onUpdate func(*model.DownloadTask)
}

func (f *fakeDownloader) SetUpdateCallback(cb func(*model.DownloadTask)) { f.onUpdate = cb }
func (f *fakeDownloader) SetDownloadDirectory(dir string)                { f.dir = dir }
func (f *fakeDownloader) SetToolPath(path string)                        { f.tool = path }

func (f *fakeDownloader) Download(_ context.Context, result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error) {
	f.result, f.mode = result, mode
	task := &model.DownloadTask{ID: "t1", Result: result, Mode: mode, Status: model.TaskStatusDownloading, ETASec: -1}
	for _, pct := range []int{5, 12, 15, 55} {
		task.Percent = pct
		f.onUpdate(task)
	}
	task.Status = model.TaskStatusCompleted
	task.OutputPath = filepath.Join(f.dir, result.Title+".mp4")
	return task, nil
}

type fakePlayer struct {
	path  string
	url   string
	audio bool
}

func (f *fakePlayer) Play(_ context.Context, url string, audioOnly bool) error {
	f.url, f.audio = url, audioOnly
	return nil
}

type fakeOpener struct{ url string }

func (f *fakeOpener) OpenURL(url string) error {
	f.url = url
	return nil
}

type fakeLister struct{ results []model.SearchResult }

func (f *fakeLister) List(context.Context, string) ([]model.SearchResult, error) {
	return f.results, nil
}

func run(t *testing.T, ctx context.Context, env *cli.Env, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd(env)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestSearchPrintsResults(t *testing.T) {
	starter := &scriptedStarter{lines: []string{"[youtube] noise", lineA, lineB}}
	out, _, err := run(t, context.Background(), &cli.Env{Starter: starter}, "--ytdlp", "/bin/yt", "search", "-n", "2", "lofi", "beats")
	require.NoError(t, err)

	require.Equal(t, "/bin/yt", starter.name)
	require.Equal(t, []string{"ytsearch2:lofi beats", "--print-json", "--skip-download"}, starter.args)

	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	require.True(t, first >= 0 && second > first, "results out of order:\n%s", out)
	require.Contains(t, out, "1,500 views")
	require.Contains(t, out, "2024.01.02")
	require.Contains(t, out, "https://www.youtube.com/watch?v=aaa")
	require.Contains(t, out, "Search finished, 2 results")
}

func TestSearchUsesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("search_result_count: 5\nytdlp_path: /usr/local/bin/yt-dlp\n"), 0o644))

	starter := &scriptedStarter{}
	root := cli.NewRootCmd(&cli.Env{Starter: starter})
	root.SetArgs([]string{"--config", cfg, "search", "jazz"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	require.NoError(t, root.Execute())

	require.Equal(t, "/usr/local/bin/yt-dlp", starter.name)
	require.Equal(t, "ytsearch5:jazz", starter.args[0])
	require.Contains(t, out.String(), "No videos found")
}

func TestSearchJSON(t *testing.T) {
	starter := &scriptedStarter{lines: []string{lineA}}
	out, _, err := run(t, context.Background(), &cli.Env{Starter: starter}, "search", "--json", "q")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)

	var got map[string]any
	require.NoError(t, sonic.UnmarshalString(lines[0], &got))
	require.Equal(t, "aaa", got["id"])
	require.Equal(t, "https://www.youtube.com/watch?v=aaa", got["url"])
}

func TestSearchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	starter := &scriptedStarter{lines: []string{lineA}, hang: true, onStart: cancel}
	_, errOut, err := run(t, ctx, &cli.Env{Starter: starter}, "search", "q")
	require.NoError(t, err)
	require.Contains(t, errOut, "Search stopped")
}

func TestSearchLaunchFailure(t *testing.T) {
	starter := &scriptedStarter{err: errors.New("executable file not found")}
	_, _, err := run(t, context.Background(), &cli.Env{Starter: starter}, "search", "q")
	require.ErrorIs(t, err, search.ErrLaunchFailed)
}

func TestSearchNeedsQuery(t *testing.T) {
	_, _, err := run(t, context.Background(), &cli.Env{Starter: &scriptedStarter{}}, "search")
	require.Error(t, err)
}

func TestDownload(t *testing.T) {
	dl := &fakeDownloader{}
	env := &cli.Env{NewDownloader: func(string) download.Downloader { return dl }}
	dir := t.TempDir()

	out, _, err := run(t, context.Background(), env,
		"--ytdlp", "/opt/yt-dlp", "download", "https://youtu.be/abc123", "--video", "--title", "My Song", "-o", dir)
	require.NoError(t, err)

	require.Equal(t, "abc123", dl.result.ID)
	require.Equal(t, "My Song", dl.result.Title)
	require.Equal(t, model.DownloadVideo, dl.mode)
	require.Equal(t, "/opt/yt-dlp", dl.tool)
	require.Equal(t, dir, dl.dir)

	// 5% and 15% stay inside an already printed step
	require.Equal(t, 1, strings.Count(out, " 12%"))
	require.NotContains(t, out, " 15%")
	require.Contains(t, out, " 55%")
	require.Contains(t, out, "Saved "+filepath.Join(dir, "My Song.mp4"))
}

func TestDownloadDefaultsToAudio(t *testing.T) {
	dl := &fakeDownloader{}
	env := &cli.Env{NewDownloader: func(string) download.Downloader { return dl }}
	_, _, err := run(t, context.Background(), env, "download", "abc123", "-o", t.TempDir())
	require.NoError(t, err)
	require.Equal(t, model.DownloadAudio, dl.mode)
}

func TestPlayAndOpen(t *testing.T) {
	player := &fakePlayer{}
	opener := &fakeOpener{}
	env := &cli.Env{
		NewPlayer: func(path string) cli.MediaPlayer { player.path = path; return player },
		Opener:    opener,
	}

	_, _, err := run(t, context.Background(), env, "play", "--audio", "https://www.youtube.com/watch?v=xyz")
	require.NoError(t, err)
	require.Equal(t, "mpv", player.path)
	require.Equal(t, "https://www.youtube.com/watch?v=xyz", player.url)
	require.True(t, player.audio)

	_, _, err = run(t, context.Background(), env, "open", "xyz")
	require.NoError(t, err)
	require.Equal(t, "https://www.youtube.com/watch?v=xyz", opener.url)

	_, _, err = run(t, context.Background(), env, "open", "not an id")
	require.ErrorIs(t, err, cli.ErrInvalidVideo)
}

func TestPlaylist(t *testing.T) {
	lister := &fakeLister{results: []model.SearchResult{
		{ID: "p1", Title: "Track one"},
		{ID: "p2", Title: "Track two"},
	}}
	out, _, err := run(t, context.Background(), &cli.Env{Playlists: lister}, "playlist", "https://www.youtube.com/playlist?list=PL1")
	require.NoError(t, err)
	require.Contains(t, out, "Track one")
	require.Contains(t, out, "Track two")
	require.Contains(t, out, "2 videos")
}
