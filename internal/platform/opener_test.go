package platform

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

type startCall struct {
	name string
	args []string
}

func newTestOpener(goos string, available ...string) (*Opener, *[]startCall) {
	var calls []startCall
	have := make(map[string]bool)
	for _, name := range available {
		have[name] = true
	}
	o := &Opener{
		goos: goos,
		start: func(name string, args ...string) error {
			calls = append(calls, startCall{name, args})
			return nil
		},
		lookPath: func(name string) (string, error) {
			if have[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
	}
	return o, &calls
}

func TestOpenURL(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=abc"
	tests := []struct {
		goos     string
		expected startCall
	}{
		{OSDarwin, startCall{OpenCommand, []string{url}}},
		{OSWindows, startCall{RunDLLCommand, []string{WindowsURLHandler, url}}},
		{OSLinux, startCall{XDGOpenCommand, []string{url}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o, calls := newTestOpener(tt.goos)
			if err := o.OpenURL(url); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(*calls) != 1 || !reflect.DeepEqual((*calls)[0], tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, *calls)
			}
		})
	}
}

func TestOpenFolderCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "music")
	o, calls := newTestOpener(OSLinux, XDGOpenCommand)

	if err := o.OpenFolder(dir); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := startCall{XDGOpenCommand, []string{dir}}
	if len(*calls) != 1 || !reflect.DeepEqual((*calls)[0], expected) {
		t.Errorf("Expected %+v, got %+v", expected, *calls)
	}
}

func TestOpenFolderLinuxFallback(t *testing.T) {
	dir := t.TempDir()

	o, calls := newTestOpener(OSLinux, "thunar")
	if err := o.OpenFolder(dir); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if (*calls)[0].name != "thunar" {
		t.Errorf("Expected thunar fallback, got %+v", *calls)
	}

	o, _ = newTestOpener(OSLinux)
	if err := o.OpenFolder(dir); err == nil {
		t.Error("Expected error without any file manager")
	}
}

func TestRevealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")

	o, calls := newTestOpener(OSWindows)
	if err := o.RevealFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := startCall{ExplorerCommand, []string{WindowsSelectParam + path}}
	if !reflect.DeepEqual((*calls)[0], expected) {
		t.Errorf("Expected %+v, got %+v", expected, (*calls)[0])
	}

	o, calls = newTestOpener(OSDarwin)
	if err := o.RevealFile(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected = startCall{OpenCommand, []string{MacOSSelectFlag, path}}
	if !reflect.DeepEqual((*calls)[0], expected) {
		t.Errorf("Expected %+v, got %+v", expected, (*calls)[0])
	}
}
