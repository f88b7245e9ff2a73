package main

import (
	"bytes"
	"fmt"
	"io"

	"undestructure/internal/core/app"
	"undestructure/internal/shared/util"
	"undestructure/internal/ui/report"

	"github.com/spf13/cobra"
)

func newScanCmd(root *rootOptions) *cobra.Command {
	var (
		format             string
		outputFile         string
		failOnDestructured bool
		includeTests       bool
	)

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Classify every supported file and print a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.File = outputFile
			}
			if cmd.Flags().Changed("include-tests") {
				cfg.Scan.IncludeTests = includeTests
			}

			stop, err := startObservability(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer stop()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, err := a.Scan(cmd.Context(), args)
			if err != nil {
				return err
			}
			if _, err := a.RecordReport(rep); err != nil {
				return err
			}

			if err := writeReport(root.stdout, cfg.Output.File, cfg.Output.Format, rep); err != nil {
				return err
			}

			if failOnDestructured && rep.HasDestructuring() {
				return &exitError{code: exitDestructuring, msg: fmt.Sprintf("%d components destructure their props", rep.Rewrites)}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Report format (text, json)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&failOnDestructured, "fail-on-destructuring", false, "Exit with status 3 when a component destructures its props")
	cmd.Flags().BoolVar(&includeTests, "include-tests", false, "Scan test files too")
	return cmd
}

func writeReport(stdout io.Writer, path, format string, rep *app.Report) error {
	if path == "" {
		return report.Write(stdout, format, rep)
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, format, rep); err != nil {
		return err
	}
	return util.WriteFileWithDirs(path, buf.Bytes(), 0o644)
}
