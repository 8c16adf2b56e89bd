package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/servr-dev/servr/cmd/servr/internal/format"
	"github.com/servr-dev/servr/pkg/appctx"
	"github.com/servr-dev/servr/pkg/browser"
	"github.com/servr-dev/servr/pkg/logging"
	"github.com/servr-dev/servr/pkg/probe"
	"github.com/servr-dev/servr/pkg/recent"
	"github.com/servr-dev/servr/pkg/server"
	"github.com/servr-dev/servr/pkg/site"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	urlStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")) // Gray
)

// newServeCommand creates and returns the 'servr serve' command.
//
// The command resolves the directory to serve (argument or working
// directory), probes for a free port starting at the preferred one, starts
// the static-file server, records the directory in the recent list, and
// blocks until interrupted (SIGINT/SIGTERM) or the server fails. Shutdown
// drains in-flight requests for a bounded interval before forcing the
// listener closed.
func newServeCommand() *cobra.Command {
	var openBrowser bool

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve a directory over HTTP on localhost",
		Long: `Serve a directory as a static website on a local port.

The preferred port (default 8000) is probed first; if it is taken, servr
scans upward until it finds a free port or the scan window is exhausted.
The served directory is added to the recent list so it can be reused later
with 'servr recent'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := format.FromCommand(cmd)

			cfgMgr, ok := appctx.Config(cmd.Context())
			if !ok {
				return fmt.Errorf("configuration unavailable in command context")
			}
			cfg := cfgMgr.Get()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			} else if wd, err := os.Getwd(); err == nil {
				dir = wd
			}

			logger := logging.NewLogger("serve", zerolog.InfoLevel)

			port, err := probe.FindAvailablePort(cfg.Server.Host, cfg.Server.Port, cfg.Server.PortScanAttempts)
			if err != nil {
				formatter.PrintFailure("find available port", err, server.ErrorCode(err), server.Suggestions(err))
				return silence(err)
			}
			if port != cfg.Server.Port {
				logger.Info().
					Int("preferred", cfg.Server.Port).
					Int("selected", port).
					Msg("preferred port taken, scanned upward")
			}

			controller := server.NewController(
				server.WithHost(cfg.Server.Host),
				server.WithDrainTimeout(cfg.Server.DrainTimeout),
				server.WithHTTPTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
				server.WithLogger(logging.NewLogger("server", zerolog.InfoLevel)),
			)

			session, err := controller.Start(cmd.Context(), dir, port)
			if err != nil {
				formatter.PrintFailure("start server", err, server.ErrorCode(err), server.Suggestions(err))
				return silence(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Remember the directory and keep the list fresh if another
			// process updates it while we run.
			store := recent.NewStore(cfg.Recent.File, cfg.Recent.Limit)
			if err := store.Load(); err != nil {
				logger.Warn().Err(err).Msg("recent list unavailable")
			} else {
				if err := store.Add(session.Root); err != nil {
					logger.Warn().Err(err).Msg("could not record recent directory")
				}
				if watcher, werr := recent.NewWatcher(store); werr == nil {
					go func() {
						if werr := watcher.Start(ctx); werr != nil {
							logger.Debug().Err(werr).Msg("recent list watcher stopped")
						}
					}()
				}
			}

			printBanner(cmd, session)

			if openBrowser || cfg.Server.OpenBrowser {
				target := session.URL()
				if index, ok := site.FindIndexFile(session.Root); ok {
					target = session.PageURL(index)
				}
				if err := browser.OpenURL(target); err != nil {
					logger.Warn().Err(err).Str("url", target).Msg("could not open browser")
				}
			}

			var runErr error
			select {
			case <-ctx.Done():
				logger.Info().Msg("interrupt received, shutting down")
			case failure := <-controller.Failure():
				runErr = server.WithErrorCode(failure, "SERVER_RUNTIME_FAILED")
				formatter.PrintFailure("serve directory", runErr, server.ErrorCode(runErr), server.Suggestions(runErr))
			}

			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.DrainTimeout+5*time.Second)
			defer cancel()
			if err := controller.Stop(stopCtx); err != nil {
				logger.Warn().Err(err).Msg("shutdown was not fully graceful")
			}

			if runErr != nil {
				return silence(runErr)
			}
			formatter.PrintSummary("Server stopped.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&openBrowser, "open", false, "Open the default browser after start")

	return cmd
}

func printBanner(cmd *cobra.Command, session server.Session) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bannerStyle.Render(fmt.Sprintf("Serving %s", session.Root)))
	fmt.Fprintf(out, "  %s %s\n", hintStyle.Render("Local:"), urlStyle.Render(session.URL()))
	fmt.Fprintln(out, hintStyle.Render("  Press Ctrl+C to stop"))
}
