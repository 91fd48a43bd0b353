package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config file location
const (
	AppDirName     = "yt-search"
	ConfigFileName = "config.yaml"
	FilePermission = 0o644
	DirPermission  = 0o755
)

// FileStore keeps preferences in a YAML file. Every change is written
// through to disk.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	values map[string]any
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/yt-search/config.yaml (or the OS equivalent)
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// LoadFileStore reads the YAML file at path. A missing file yields an empty store.
func LoadFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path, values: make(map[string]any)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &store.values); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if store.values == nil {
		store.values = make(map[string]any)
	}
	return store, nil
}

// Path returns the backing file
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the current values to disk
func (f *FileStore) Save() error {
	f.mu.RLock()
	data, err := yaml.Marshal(f.values)
	f.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), DirPermission); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, FilePermission); err != nil {
		return fmt.Errorf("failed to write config %s: %w", f.path, err)
	}
	return nil
}

// String returns the string stored under key, or ""
func (f *FileStore) String(key string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch v := f.values[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// SetString stores a string
func (f *FileStore) SetString(key string, value string) {
	f.set(key, value)
}

// Int returns the integer stored under key, or 0
func (f *FileStore) Int(key string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch v := f.values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// SetInt stores an integer
func (f *FileStore) SetInt(key string, value int) {
	f.set(key, value)
}

// BoolWithFallback returns the bool stored under key, or fallback
func (f *FileStore) BoolWithFallback(key string, fallback bool) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch v := f.values[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// SetBool stores a bool
func (f *FileStore) SetBool(key string, value bool) {
	f.set(key, value)
}

func (f *FileStore) set(key string, value any) {
	f.mu.Lock()
	f.values[key] = value
	f.mu.Unlock()

	if err := f.Save(); err != nil {
		log.Error().Str("op", "config/save").Err(err).Msg("Failed to persist settings")
	}
}
