package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// External tools
const (
	YtdlpTool  = "yt-dlp"
	FFmpegTool = "ffmpeg"
	PlayerTool = "mpv"
)

// ErrToolNotFound is returned when an external executable is missing
var ErrToolNotFound = errors.New("tool not found")

// FindTool resolves an external executable. Explicit paths are checked as
// is; bare names are looked up in PATH and then next to our own executable.
func FindTool(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty name", ErrToolNotFound)
	}

	if strings.ContainsAny(name, `/\`) {
		info, err := os.Stat(name)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		return name, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), ExecutableName(name))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			log.Debug().Str("op", "platform/tools").Msgf("Using %s next to executable", candidate)
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s not found in PATH, please install it", ErrToolNotFound, name)
}
