package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/platform"
)

// Preferences is the key/value store behind Settings.
// fyne.Preferences satisfies it, and so does FileStore.
type Preferences interface {
	String(key string) string
	SetString(key string, value string)
	Int(key string) int
	SetInt(key string, value int)
	BoolWithFallback(key string, fallback bool) bool
	SetBool(key string, value bool)
}

// Settings keys
const (
	KeyDownloadDir       = "download_directory"
	KeyResultCount       = "search_result_count"
	KeyInactivityTimeout = "inactivity_timeout_seconds"
	KeyYtdlpPath         = "ytdlp_path"
	KeyPlayerPath        = "player_path"
	KeyDownloadMode      = "download_mode"
	KeyLanguage          = "app_language"
	KeyDebugLogging      = "debug_logging"
)

// Default values
const (
	DefaultResultCount       = 30
	DefaultInactivityTimeout = 60
	DefaultYtdlpPath         = platform.YtdlpTool
	DefaultPlayerPath        = platform.PlayerTool
	DefaultDownloadMode      = model.DownloadAudio
	DefaultLanguage          = "system"
	DefaultDebugLogging      = false
	DownloadSubdir           = "yt-search"
)

// Limits
const (
	MinResultCount       = 1
	MaxResultCount       = 100
	MinInactivityTimeout = 5
	MaxInactivityTimeout = 600
)

// Settings manages application configuration
type Settings struct {
	prefs Preferences
}

// NewSettings creates a new settings manager
func NewSettings(prefs Preferences) *Settings {
	return &Settings{prefs: prefs}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), DownloadSubdir)
		}
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetResultCount returns how many results one search asks for
func (s *Settings) GetResultCount() int {
	value := s.prefs.Int(KeyResultCount)
	if value <= 0 {
		return DefaultResultCount
	}
	return clamp(value, MinResultCount, MaxResultCount)
}

// SetResultCount sets how many results one search asks for
func (s *Settings) SetResultCount(count int) {
	s.prefs.SetInt(KeyResultCount, clamp(count, MinResultCount, MaxResultCount))
}

// GetInactivityTimeout returns how long a search may stay silent
func (s *Settings) GetInactivityTimeout() time.Duration {
	value := s.prefs.Int(KeyInactivityTimeout)
	if value <= 0 {
		value = DefaultInactivityTimeout
	}
	return time.Duration(clamp(value, MinInactivityTimeout, MaxInactivityTimeout)) * time.Second
}

// SetInactivityTimeout sets the inactivity timeout, rounded down to seconds
func (s *Settings) SetInactivityTimeout(d time.Duration) {
	s.prefs.SetInt(KeyInactivityTimeout, clamp(int(d/time.Second), MinInactivityTimeout, MaxInactivityTimeout))
}

// GetYtdlpPath returns the yt-dlp executable
func (s *Settings) GetYtdlpPath() string {
	return s.stringWithDefault(KeyYtdlpPath, DefaultYtdlpPath)
}

// SetYtdlpPath sets the yt-dlp executable
func (s *Settings) SetYtdlpPath(path string) {
	s.prefs.SetString(KeyYtdlpPath, path)
}

// GetPlayerPath returns the media player executable
func (s *Settings) GetPlayerPath() string {
	return s.stringWithDefault(KeyPlayerPath, DefaultPlayerPath)
}

// SetPlayerPath sets the media player executable
func (s *Settings) SetPlayerPath(path string) {
	s.prefs.SetString(KeyPlayerPath, path)
}

// GetDownloadMode returns the default download mode
func (s *Settings) GetDownloadMode() model.DownloadMode {
	return model.ParseDownloadMode(s.stringWithDefault(KeyDownloadMode, string(DefaultDownloadMode)))
}

// SetDownloadMode sets the default download mode
func (s *Settings) SetDownloadMode(mode model.DownloadMode) {
	s.prefs.SetString(KeyDownloadMode, string(model.ParseDownloadMode(string(mode))))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.stringWithDefault(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetDebugLogging reports whether debug logging is enabled
func (s *Settings) GetDebugLogging() bool {
	return s.prefs.BoolWithFallback(KeyDebugLogging, DefaultDebugLogging)
}

// SetDebugLogging enables or disables debug logging
func (s *Settings) SetDebugLogging(enabled bool) {
	s.prefs.SetBool(KeyDebugLogging, enabled)
}

func (s *Settings) stringWithDefault(key, fallback string) string {
	if value := s.prefs.String(key); value != "" {
		return value
	}
	return fallback
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}
