package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	store, err := LoadFileStore(path)
	if err != nil {
		t.Fatalf("Missing file should not fail: %v", err)
	}
	if store.String(KeyYtdlpPath) != "" {
		t.Error("Expected empty store")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Loading must not create the file")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	store, err := LoadFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	settings := NewSettings(store)
	settings.SetResultCount(15)
	settings.SetInactivityTimeout(2 * time.Minute)
	settings.SetYtdlpPath("/usr/local/bin/yt-dlp")
	settings.SetDebugLogging(true)

	reloaded, err := LoadFileStore(path)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	again := NewSettings(reloaded)

	if got := again.GetResultCount(); got != 15 {
		t.Errorf("Expected result count 15, got %d", got)
	}
	if got := again.GetInactivityTimeout(); got != 2*time.Minute {
		t.Errorf("Expected timeout 2m, got %s", got)
	}
	if got := again.GetYtdlpPath(); got != "/usr/local/bin/yt-dlp" {
		t.Errorf("Expected stored yt-dlp path, got %s", got)
	}
	if !again.GetDebugLogging() {
		t.Error("Expected debug logging to persist")
	}
}

func TestLoadFileStoreHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := strings.Join([]string{
		"search_result_count: \"12\"",
		"debug_logging: \"true\"",
		"download_mode: video",
		"player_path: /usr/bin/mpv",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadFileStore(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	settings := NewSettings(store)

	if got := settings.GetResultCount(); got != 12 {
		t.Errorf("Expected quoted count to parse, got %d", got)
	}
	if !settings.GetDebugLogging() {
		t.Error("Expected quoted bool to parse")
	}
	if got := settings.GetDownloadMode(); got != "video" {
		t.Errorf("Expected video mode, got %s", got)
	}
	if got := settings.GetPlayerPath(); got != "/usr/bin/mpv" {
		t.Errorf("Unexpected player path %s", got)
	}
}

func TestLoadFileStoreInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("key: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileStore(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := DefaultConfigPath()
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	if filepath.Base(path) != ConfigFileName || filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("Unexpected config path %s", path)
	}
}
