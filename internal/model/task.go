package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DownloadMode selects what a download task produces
type DownloadMode string

const (
	// DownloadAudio extracts the best audio stream to mp3
	DownloadAudio DownloadMode = "audio"
	// DownloadVideo merges best video and audio into mp4
	DownloadVideo DownloadMode = "video"
)

// ParseDownloadMode maps a user supplied mode, defaulting to audio
func ParseDownloadMode(s string) DownloadMode {
	if DownloadMode(strings.ToLower(strings.TrimSpace(s))) == DownloadVideo {
		return DownloadVideo
	}
	return DownloadAudio
}

// DownloadTask represents a single download of a search result
type DownloadTask struct {
	ID         string
	Result     SearchResult
	Mode       DownloadMode
	Status     TaskStatus
	Percent    int       // 0 to 100
	ETASec     int       // ETA in seconds, -1 if unknown
	LastError  string    // last error message if any
	OutputPath string    // path to downloaded file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or watch URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if strings.TrimSpace(dt.Result.Title) != "" {
		return dt.Result.Title
	}

	if dt.OutputPath != "" {
		filename := filepath.Base(strings.ReplaceAll(dt.OutputPath, "\\", "/"))
		if idx := strings.LastIndex(filename, "."); idx > 0 {
			filename = filename[:idx]
		}
		return filename
	}

	if dt.Result.ID == "" {
		return ""
	}
	return dt.Result.WatchURL()
}
