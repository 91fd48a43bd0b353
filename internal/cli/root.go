package cli

import (
	"context"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-search/internal/config"
	"github.com/ytget/yt-search/internal/download"
	"github.com/ytget/yt-search/internal/logging"
	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/platform"
	"github.com/ytget/yt-search/internal/search"
)

// Version is set during build via -ldflags
var Version = "dev"

// MediaPlayer starts playback of a watch URL
type MediaPlayer interface {
	Play(ctx context.Context, url string, audioOnly bool) error
}

// URLOpener opens a URL in the default browser
type URLOpener interface {
	OpenURL(url string) error
}

// PlaylistLister lists the videos of a playlist
type PlaylistLister interface {
	List(ctx context.Context, rawURL string) ([]model.SearchResult, error)
}

// Env holds the backends the commands use. Zero fields fall back to the
// real implementations.
type Env struct {
	Starter       search.Starter
	Clock         clockwork.Clock
	NewDownloader func(dir string) download.Downloader
	NewPlayer     func(path string) MediaPlayer
	Opener        URLOpener
	Playlists     PlaylistLister
}

func (e *Env) withDefaults() *Env {
	out := *e
	if out.Starter == nil {
		out.Starter = search.ExecStarter{}
	}
	if out.Clock == nil {
		out.Clock = clockwork.NewRealClock()
	}
	if out.NewDownloader == nil {
		out.NewDownloader = func(dir string) download.Downloader {
			return download.NewService(dir, 1)
		}
	}
	if out.NewPlayer == nil {
		out.NewPlayer = func(path string) MediaPlayer { return platform.NewPlayer(path) }
	}
	if out.Opener == nil {
		out.Opener = platform.NewOpener()
	}
	if out.Playlists == nil {
		out.Playlists = platform.NewPlaylistLister()
	}
	return &out
}

// globals are the persistent flags shared by every command
type globals struct {
	configPath string
	debug      bool
	ytdlpPath  string
}

type app struct {
	env   *Env
	flags globals
}

// settings opens the YAML settings file named by --config
func (a *app) settings() (*config.Settings, error) {
	path := a.flags.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}
	store, err := config.LoadFileStore(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("op", "cli/config").Msgf("Using settings from %s", path)
	return config.NewSettings(store), nil
}

func (a *app) toolPath(settings *config.Settings) string {
	if strings.TrimSpace(a.flags.ytdlpPath) != "" {
		return a.flags.ytdlpPath
	}
	return settings.GetYtdlpPath()
}

func (a *app) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// NewRootCmd builds the yt-search command tree
func NewRootCmd(env *Env) *cobra.Command {
	if env == nil {
		env = &Env{}
	}
	a := &app{env: env.withDefaults()}

	cmd := &cobra.Command{
		Use:           "yt-search",
		Short:         "Search, play and download YouTube videos through yt-dlp",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(a.flags.debug)
			logging.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/yt-search/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.flags.ytdlpPath, "ytdlp", "", "yt-dlp executable (overrides the settings file)")

	cmd.AddCommand(
		newSearchCmd(a),
		newDownloadCmd(a),
		newPlayCmd(a),
		newOpenCmd(a),
		newPlaylistCmd(a),
	)
	return cmd
}

// Execute runs the command line and exits non-zero on failure
func Execute() {
	cmd := NewRootCmd(nil)
	if err := cmd.Execute(); err != nil {
		NewPrinter(os.Stdout, os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}
