package download

import (
	"context"
	"time"

	"github.com/ytget/yt-search/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	AddTask(result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error)
	Download(ctx context.Context, result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	StopTask(id string) error

	// SetMaxParallelDownloads sets the maximum number of parallel downloads
	SetMaxParallelDownloads(max int)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)

	// SetToolPath sets the yt-dlp executable
	SetToolPath(path string)
}

// Request describes one yt-dlp invocation
type Request struct {
	ToolPath       string
	URL            string
	OutputTemplate string
	Mode           model.DownloadMode
}

// Progress is a progress report of a running download
type Progress struct {
	Percent int
	ETA     time.Duration
}

// Runner executes a download request, reporting progress while it runs.
// It returns the path of the produced file when the tool reports one.
type Runner interface {
	Run(ctx context.Context, req Request, progress func(Progress)) (string, error)
}
