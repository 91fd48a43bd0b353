package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File name constants
const (
	DownloadsDirName     = "Downloads"
	InvalidFileNameChars = `<>:"/\|?*`
	FileNameReplacement  = "_"
	MaxFileNameLength    = 200
)

// File extensions left behind by unfinished downloads
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// ErrFileNotFound is returned when no downloaded file matches
var ErrFileNotFound = errors.New("file not found")

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// SanitizeFileName replaces characters that are invalid in file names on
// any supported OS with "_". Leading and trailing spaces and dots are
// dropped; an empty result falls back to fallback.
func SanitizeFileName(name, fallback string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(InvalidFileNameChars, r) {
			b.WriteString(FileNameReplacement)
			continue
		}
		b.WriteRune(r)
	}

	clean := strings.Trim(b.String(), " .")
	if len([]rune(clean)) > MaxFileNameLength {
		clean = strings.TrimRight(string([]rune(clean)[:MaxFileNameLength]), " .")
	}
	if clean == "" {
		return fallback
	}
	return clean
}

// FindDownloadedFile looks in dir for a finished file named baseName with any
// extension. When several match, the most recently modified one wins.
func FindDownloadedFile(dir, baseName string) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("%w: empty name", ErrFileNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	type candidate struct {
		path    string
		modTime int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || isPartialDownload(entry.Name()) {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) != baseName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{filepath.Join(dir, name), info.ModTime().UnixNano()})
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, filepath.Join(dir, baseName))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path, nil
}

// isPartialDownload reports whether name belongs to an unfinished download
func isPartialDownload(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// ExecutableName appends the platform executable suffix to name
func ExecutableName(name string) string {
	if runtime.GOOS == OSWindows && filepath.Ext(name) == "" {
		return name + ".exe"
	}
	return name
}
