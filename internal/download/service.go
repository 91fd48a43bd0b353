package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/platform"
)

// Service defaults
const (
	DefaultMaxParallel = 2
	DefaultMaxRetries  = 1
	DefaultRetryDelay  = 2 * time.Second
)

var (
	// ErrTaskExists is returned when the same result is already downloading in the same mode
	ErrTaskExists = errors.New("task already exists")

	// ErrTaskNotFound is returned for unknown task IDs
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotActive is returned when stopping a finished task
	ErrTaskNotActive = errors.New("task is not active")
)

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	downloadDir string
	toolPath    string
	maxRetries  int
	retryDelay  time.Duration
	onUpdate    func(*model.DownloadTask) // callback for UI updates

	runner   Runner
	findTool func(string) (string, error)
	wg       sync.WaitGroup
}

// NewService creates a new download service
func NewService(downloadDir string, maxParallel int) *Service {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	return &Service{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: maxParallel,
		downloadDir: downloadDir,
		toolPath:    platform.YtdlpTool,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		runner:      ytdlpRunner{},
		findTool:    platform.FindTool,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetDownloadDirectory sets the download directory for new tasks
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

// SetToolPath sets the yt-dlp executable
func (s *Service) SetToolPath(path string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if strings.TrimSpace(path) == "" {
		path = platform.YtdlpTool
	}
	s.toolPath = path
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Service) SetMaxParallelDownloads(max int) {
	s.tasksMutex.Lock()
	if max < 1 {
		max = 1
	}
	s.maxParallel = max
	s.tasksMutex.Unlock()

	s.startNextPendingTask()
}

// FileBaseName returns the file name, without extension, a download of result is saved under
func FileBaseName(result model.SearchResult) string {
	return platform.SanitizeFileName(result.Title, result.ID)
}

// OutputTemplate returns the yt-dlp output template for result inside dir
func OutputTemplate(dir string, result model.SearchResult) string {
	// a literal % would start a template field
	name := strings.ReplaceAll(FileBaseName(result), "%", "%%")
	return filepath.Join(dir, name+".%(ext)s")
}

// AddTask queues a download of result and starts it if there is capacity
func (s *Service) AddTask(result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error) {
	task, err := s.newTask(result, mode)
	if err != nil {
		return nil, err
	}

	s.notifyUpdate(task)
	s.startNextPendingTask()
	return s.snapshot(task), nil
}

// Download runs a download of result to completion, bypassing the queue
func (s *Service) Download(ctx context.Context, result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error) {
	task, err := s.newTask(result, mode)
	if err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()
	s.activeCount++
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()

	s.runTask(ctx, task)

	final := s.snapshot(task)
	if final.Status == model.TaskStatusError {
		return final, errors.New(final.LastError)
	}
	if final.Status == model.TaskStatusStopped {
		return final, context.Canceled
	}
	return final, nil
}

func (s *Service) newTask(result model.SearchResult, mode model.DownloadMode) (*model.DownloadTask, error) {
	if strings.TrimSpace(result.ID) == "" {
		return nil, fmt.Errorf("%w: empty video id", ErrTaskNotFound)
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.Result.ID == result.ID && task.Mode == mode && !task.Status.IsFinished() {
			return nil, fmt.Errorf("%w: %s (%s)", ErrTaskExists, result.ID, mode)
		}
	}

	task := &model.DownloadTask{
		ID:        uuid.NewString(),
		Result:    result,
		Mode:      mode,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}
	s.tasks[task.ID] = task
	return task, nil
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	copied := *task
	return &copied, true
}

// GetAllTasks returns copies of all tasks, oldest first
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// StopTask stops a pending or running task
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	switch {
	case task.Status == model.TaskStatusPending:
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
	case task.Status.IsActive():
		task.Status = model.TaskStatusStopping
		if cancel := s.cancels[id]; cancel != nil {
			cancel()
		}
	default:
		s.tasksMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotActive, task.Status)
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// Wait blocks until every queued task finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// startTask runs a queued task in the background
func (s *Service) startTask(task *model.DownloadTask) {
	defer s.wg.Done()
	defer s.startNextPendingTask()
	s.runTask(context.Background(), task)
}

// runTask downloads a task that was already counted as active
func (s *Service) runTask(parent context.Context, task *model.DownloadTask) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s.tasksMutex.Lock()
	s.cancels[task.ID] = cancel
	stopped := task.Status == model.TaskStatusStopping
	if !stopped {
		task.Status = model.TaskStatusDownloading
	}
	req := Request{
		ToolPath:       s.toolPath,
		URL:            task.Result.WatchURL(),
		OutputTemplate: OutputTemplate(s.downloadDir, task.Result),
		Mode:           task.Mode,
	}
	dir := s.downloadDir
	s.tasksMutex.Unlock()

	defer func() {
		s.tasksMutex.Lock()
		delete(s.cancels, task.ID)
		s.activeCount--
		s.tasksMutex.Unlock()
	}()

	if stopped {
		cancel()
	}
	s.notifyUpdate(task)

	var outputPath string
	err := s.prepare(req.ToolPath, dir)
	if err == nil {
		outputPath, err = s.downloadWithRetry(ctx, req, task)
	}

	if err == nil && (outputPath == "" || task.Mode == model.DownloadAudio) {
		// extracted audio replaces the downloaded file, look it up by name
		if found, findErr := platform.FindDownloadedFile(dir, FileBaseName(task.Result)); findErr == nil {
			outputPath = found
		}
	}

	s.tasksMutex.Lock()
	switch {
	case err != nil && ctx.Err() != nil:
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Percent = 100
		task.ETASec = -1
		task.OutputPath = outputPath
	}
	task.FinishedAt = time.Now()
	status := task.Status
	s.tasksMutex.Unlock()

	log.Info().Str("op", "download/run").Msgf("Download of %s finished: %s", task.Result.ID, status)
	s.notifyUpdate(task)
}

// prepare checks the tools and the target directory before launching
func (s *Service) prepare(toolPath, dir string) error {
	if _, err := s.findTool(toolPath); err != nil {
		return err
	}
	// both the mp3 extraction and the mp4 merge need ffmpeg
	if _, err := s.findTool(platform.FFmpegTool); err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("download directory is not usable: %s", dir)
	}
	return nil
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, req Request, task *model.DownloadTask) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			log.Warn().Str("op", "download/retry").Msgf("Retrying download for task %s, attempt %d", task.ID, attempt+1)
		}

		outputPath, err := s.runner.Run(ctx, req, func(p Progress) {
			s.updateTaskProgress(task, p)
		})
		if err == nil {
			return outputPath, nil
		}

		lastErr = err
		log.Error().Str("op", "download/run").Err(err).Msgf("Download attempt %d failed for task %s", attempt+1, task.ID)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

// updateTaskProgress updates task progress from a runner report
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.tasksMutex.Lock()
	if p.Percent > task.Percent && p.Percent <= 100 {
		task.Percent = p.Percent
	}
	if p.ETA > 0 {
		task.ETASec = int(p.ETA.Seconds())
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// startNextPendingTask starts pending tasks while there is capacity
func (s *Service) startNextPendingTask() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	var pending []*model.DownloadTask
	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending {
			pending = append(pending, task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].StartedAt.Before(pending[j].StartedAt)
	})

	for _, task := range pending {
		if s.activeCount >= s.maxParallel {
			return
		}
		s.activeCount++
		task.Status = model.TaskStatusStarting
		s.wg.Add(1)
		go s.startTask(task)
	}
}

func (s *Service) snapshot(task *model.DownloadTask) *model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	copied := *task
	return &copied
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	copied := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&copied)
	}
}
