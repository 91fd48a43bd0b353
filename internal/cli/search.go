package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/yt-search/internal/model"
	"github.com/ytget/yt-search/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var count int
	var timeout time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search QUERY [--count N] [--timeout D]",
		Short: "Search YouTube and print results as they arrive",
		Long:  "Search YouTube through yt-dlp. Results are printed while the search runs; Ctrl-C stops it and keeps what was found.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.settings()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = settings.GetResultCount()
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = settings.GetInactivityTimeout()
			}

			p := a.printer(cmd)
			p.SetJSON(asJSON)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runSearch(ctx, p, strings.Join(args, " "), search.Options{
				ToolPath:          a.toolPath(settings),
				ResultCount:       count,
				InactivityTimeout: timeout,
				Clock:             a.env.Clock,
				Starter:           a.env.Starter,
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", search.DefaultResultCount, "Number of results to ask for")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", search.DefaultInactivityTimeout, "Stop when yt-dlp prints nothing for this long")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per result")
	return cmd
}

// runSearch runs one session to its end. ctx cancellation stops the
// session; the results found so far stay printed.
func runSearch(ctx context.Context, p *Printer, query string, opts search.Options) error {
	sink := search.SinkFunc(func(ev model.Event) {
		switch ev.Kind {
		case model.EventItemFound:
			p.Result(ev.Count, *ev.Result)
		case model.EventTimedOut:
			p.Warning("No output for %s, stopping", opts.InactivityTimeout)
		case model.EventStatusChanged:
			printStatus(p, ev)
		}
	})

	sup := search.NewSupervisor(sink, opts)
	sess, err := sup.Start(ctx, query)
	if err != nil {
		return err
	}

	// the session stops itself once ctx is done
	if err := sess.Wait(context.Background()); err != nil {
		return err
	}
	log.Debug().Str("op", "cli/search").Msgf("Session %s ended in %s", sess.ID, sess.State())
	return nil
}

func printStatus(p *Printer, ev model.Event) {
	switch ev.State {
	case model.SessionRunning:
		p.Info("Searching...")
	case model.SessionStoppingRequested:
		if ev.Message != "" {
			p.Error("Stop failed: %s", ev.Message)
		}
	case model.SessionCompleted:
		switch {
		case ev.Message != "":
			p.Error("Search ended with an error after %d results: %s", ev.Count, ev.Message)
		case ev.Cancelled && ev.Reason == model.StopReasonTimeout:
			p.Warning("Stopped by timeout with %d results", ev.Count)
		case ev.Cancelled:
			p.Warning("Search stopped with %d results", ev.Count)
		case ev.Count == 0:
			p.Info("No videos found")
		default:
			p.Success("Search finished, %d results", ev.Count)
		}
	}
}
