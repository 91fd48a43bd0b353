package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/platform"
)

// ProgressStep is the percent granularity of printed download progress
const ProgressStep = 10

func newDownloadCmd(a *app) *cobra.Command {
	var video bool
	var title string
	var output string

	cmd := &cobra.Command{
		Use:   "download ID [--video] [--title T]",
		Short: "Download the audio (mp3) or video (mp4) of a result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings()
			if err != nil {
				return err
			}
			result, err := resultFromArg(args[0], title)
			if err != nil {
				return err
			}

			mode := settings.GetDownloadMode()
			if cmd.Flags().Changed("video") {
				mode = model.DownloadAudio
				if video {
					mode = model.DownloadVideo
				}
			}
			dir := output
			if dir == "" {
				dir = settings.GetDownloadDirectory()
			}

			p := a.printer(cmd)
			svc := a.env.NewDownloader(dir)
			svc.SetToolPath(a.toolPath(settings))
			svc.SetDownloadDirectory(dir)
			svc.SetUpdateCallback(progressPrinter(p))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			p.Info("Downloading %s (%s) to %s", result.ID, mode, dir)
			task, err := svc.Download(ctx, result, mode)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					p.Warning("Download of %s stopped", result.ID)
					return nil
				}
				return fmt.Errorf("download of %s failed: %w", result.ID, err)
			}
			if task.OutputPath != "" {
				p.Success("Saved %s", task.OutputPath)
			} else {
				p.Success("Downloaded %s", task.GetDisplayTitle())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&video, "video", false, "Download video (mp4) instead of audio (mp3)")
	cmd.Flags().StringVar(&title, "title", "", "Title used for the file name (defaults to the video ID)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Download directory (defaults to the settings file)")
	return cmd
}

// progressPrinter prints a line whenever a download crosses a ProgressStep
func progressPrinter(p *Printer) func(*model.DownloadTask) {
	var mu sync.Mutex
	last := -1
	return func(task *model.DownloadTask) {
		if task.Status != model.TaskStatusDownloading {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		step := task.Percent / ProgressStep
		if step <= last {
			return
		}
		last = step
		p.Info("%3d%%  ETA %s", task.Percent, task.GetETAString())
	}
}

func newPlayCmd(a *app) *cobra.Command {
	var audio bool

	cmd := &cobra.Command{
		Use:   "play ID [--audio]",
		Short: "Play a video in mpv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings()
			if err != nil {
				return err
			}
			result, err := resultFromArg(args[0], "")
			if err != nil {
				return err
			}
			if err := a.env.NewPlayer(settings.GetPlayerPath()).Play(cmd.Context(), result.WatchURL(), audio); err != nil {
				return err
			}
			a.printer(cmd).Success("Playing %s", result.WatchURL())
			return nil
		},
	}

	cmd.Flags().BoolVar(&audio, "audio", false, "Play the audio only, without a video window")
	return cmd
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open ID",
		Short: "Open the watch page of a video in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := resultFromArg(args[0], "")
			if err != nil {
				return err
			}
			if err := a.env.Opener.OpenURL(result.WatchURL()); err != nil {
				return fmt.Errorf("could not open browser: %w", err)
			}
			a.printer(cmd).Success("Opened %s", result.WatchURL())
			return nil
		},
	}
}

func newPlaylistCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "playlist URL",
		Short: "List the videos of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := platform.ExtractPlaylistID(args[0]); err != nil {
				return err
			}
			p := a.printer(cmd)
			p.SetJSON(asJSON)

			results, err := a.env.Playlists.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			log.Debug().Str("op", "cli/playlist").Msgf("Listed %d videos", len(results))
			for i, r := range results {
				p.Result(i+1, r)
			}
			p.Success("%d videos", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per video")
	return cmd
}
