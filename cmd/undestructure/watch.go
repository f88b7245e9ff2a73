package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"undestructure/internal/core/app"
	"undestructure/internal/core/config"
	"undestructure/internal/ui/live"
	"undestructure/internal/ui/report"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Scan once, then rescan files as they change",
		Long: `watch runs an initial scan and rescans files as they change. On a terminal
the findings are shown in a live list; otherwise each report is written to
stdout in the configured format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			interactive := !plain && isTerminal(root.stdout)
			if interactive {
				closeLog, err := redirectLogs(cfg, root.verbose)
				if err != nil {
					return err
				}
				defer closeLog()
			}

			stop, err := startObservability(ctx, cfg)
			if err != nil {
				return err
			}
			defer stop()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.Scan(ctx, args)
			if err != nil {
				return err
			}
			if _, err := a.RecordReport(rep); err != nil {
				slog.Warn("failed to record scan", "error", err)
			}

			if err := a.StartWatcher(ctx, args); err != nil {
				return err
			}

			if interactive {
				return live.Run(ctx, a, rep)
			}

			if err := report.Write(root.stdout, cfg.Output.Format, rep); err != nil {
				return err
			}
			a.SetUpdateCallback(func(rep *app.Report) {
				if err := report.Write(root.stdout, cfg.Output.Format, rep); err != nil {
					slog.Error("failed to write report", "error", err)
				}
			})

			slog.Info("watching for changes", "paths", len(args))
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Write reports to stdout even on a terminal")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// redirectLogs sends logs to a file next to the history database so they do
// not draw over the live view.
func redirectLogs(cfg *config.Config, verbose bool) (func(), error) {
	logPath := filepath.Join(filepath.Dir(cfg.History.Path), "undestructure.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return nil, err
	}
	if fi, err := os.Lstat(logPath); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return func() {}, nil
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	setupLogging(f, verbose)
	return func() { _ = f.Close() }, nil
}
