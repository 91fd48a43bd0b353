package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	RunDLLCommand   = "rundll32"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsURLHandler  = "url.dll,FileProtocolHandler"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// StartFunc launches a detached process without waiting for it
type StartFunc func(name string, args ...string) error

// StartDetached starts the command and reaps it in the background
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug().Str("op", "platform/start").Err(err).Msgf("%s exited", name)
		}
	}()
	return nil
}

// Opener hands URLs, folders and files to the desktop environment
type Opener struct {
	goos     string
	start    StartFunc
	lookPath func(string) (string, error)
}

// NewOpener creates an opener for the running OS
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: StartDetached, lookPath: exec.LookPath}
}

// OpenURL opens url in the default web browser
func (o *Opener) OpenURL(url string) error {
	log.Debug().Str("op", "platform/open").Msgf("Opening URL %s", url)
	switch o.goos {
	case OSDarwin:
		return o.start(OpenCommand, url)
	case OSWindows:
		return o.start(RunDLLCommand, WindowsURLHandler, url)
	default:
		return o.start(XDGOpenCommand, url)
	}
}

// OpenFolder shows dir in the system file manager, creating it if needed
func (o *Opener) OpenFolder(dir string) error {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	log.Debug().Str("op", "platform/open").Msgf("Opening folder %s", absDir)
	switch o.goos {
	case OSDarwin:
		return o.start(OpenCommand, absDir)
	case OSWindows:
		return o.start(ExplorerCommand, absDir)
	default:
		return o.openLinux(absDir)
	}
}

// RevealFile shows the file selected in the file manager where supported.
// Linux file managers have no common selection flag, so the parent folder is opened.
func (o *Opener) RevealFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch o.goos {
	case OSDarwin:
		return o.start(OpenCommand, MacOSSelectFlag, absPath)
	case OSWindows:
		return o.start(ExplorerCommand, WindowsSelectParam+absPath)
	default:
		return o.openLinux(filepath.Dir(absPath))
	}
}

func (o *Opener) openLinux(dir string) error {
	if _, err := o.lookPath(XDGOpenCommand); err == nil {
		return o.start(XDGOpenCommand, dir)
	}
	for _, fm := range LinuxFileManagers {
		if _, err := o.lookPath(fm); err == nil {
			return o.start(fm, dir)
		}
	}
	return fmt.Errorf("no suitable file manager found")
}
