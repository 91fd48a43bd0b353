package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-search/internal/config"
	"github.com/ytget/yt-search/internal/download"
	"github.com/ytget/yt-search/internal/logging"
	"github.com/ytget/yt-search/internal/platform"
	"github.com/ytget/yt-search/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-search"
	AppName = "YT Search"
)

func main() {
	myApp := app.NewWithID(AppID)
	settings := config.NewSettings(myApp.Preferences())

	logging.Init(settings.GetDebugLogging())
	log.Info().Str("op", "main").Msgf("%s v%s starting", AppName, version)

	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow(AppName)

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Warn().Str("op", "main").Err(err).Msg("Failed to ensure downloads dir")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	downloadSvc := download.NewService(downloadsDir, download.DefaultMaxParallel)
	root := ui.NewRootUI(ctx, myWindow, settings, ui.Services{
		Downloads: downloadSvc,
		Opener:    platform.NewOpener(),
		Playlists: platform.NewPlaylistLister(),
	})

	myWindow.SetCloseIntercept(func() {
		root.Shutdown()
		cancel()
		myWindow.Close()
	})

	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	myWindow.ShowAndRun()
}
