package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"undestructure/internal/data/history"

	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		limit    int
		findings string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored scan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.History.Path); err != nil {
				fmt.Fprintf(root.stdout, "no history at %s\n", cfg.History.Path)
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			tw := tabwriter.NewWriter(root.stdout, 0, 4, 2, ' ', 0)
			if findings != "" {
				rows, err := store.Findings(findings)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "PATH\tLINE\tNAME\tRESULT\tPROPS")
				for _, f := range rows {
					fmt.Fprintf(tw, "%s\t%d:%d\t%s\t%s\t%v\n", f.Path, f.Line, f.Column, f.Name, f.Result, f.Props)
				}
				return tw.Flush()
			}

			runs, err := store.ListRuns(cfg.History.Project, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "ID\tSTARTED\tFILES\tCOMPONENTS\tDESTRUCTURED\tERRORS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n",
					r.ID, r.StartedAt.Local().Format(time.DateTime), r.Files, r.Components, r.Rewrites, r.FileErrors)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	cmd.Flags().StringVar(&findings, "run", "", "Show the findings of one run ID")
	return cmd
}
