package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"undestructure/internal/core/config"
	"undestructure/internal/shared/observability"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath         string
	verbose            bool
	uppercaseFuncNames bool
	metricsAddr        string

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "undestructure",
		Short: "Find UI components that destructure their props",
		Long: `undestructure walks JavaScript and TypeScript sources, decides which functions
are UI components, and reports the ones whose first parameter is an object
destructuring pattern.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.stderr, opts.verbose)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "Path to config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&opts.uppercaseFuncNames, "uppercase-func-names", false, "Treat functions with an uppercase name as components")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")

	cmd.AddCommand(
		newScanCmd(opts),
		newWatchCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the config file and applies flag overrides. A missing file
// at the default path falls back to built-in defaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(o.configPath); err != nil && o.configPath == config.DefaultConfigPath {
		slog.Debug("no config file found, using defaults", "path", o.configPath)
		cfg = config.Default()
		config.ApplyEnvOverrides(cfg)
	} else {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("uppercase-func-names") {
		cfg.UppercaseFuncNames = o.uppercaseFuncNames
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Observability.MetricsAddr = o.metricsAddr
	}
	return cfg, nil
}

// startObservability brings up tracing and, when configured, the metrics
// server. The returned func tears both down.
func startObservability(ctx context.Context, cfg *config.Config) (func(), error) {
	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		return nil, err
	}

	var server *observability.Server
	if cfg.Observability.MetricsAddr != "" {
		server = observability.NewServer(cfg.Observability.MetricsAddr)
		if err := server.Start(ctx); err != nil {
			_ = shutdownTracing(ctx)
			return nil, err
		}
	}

	return func() {
		stopCtx := context.WithoutCancel(ctx)
		if server != nil {
			if err := server.Stop(stopCtx); err != nil {
				slog.Warn("failed to stop observability server", "error", err)
			}
		}
		if err := shutdownTracing(stopCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}, nil
}
