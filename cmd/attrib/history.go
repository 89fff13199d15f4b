package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent runs, or the outcomes of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			exp, err := loadExperiment(cmd)
			if err != nil {
				return err
			}
			path = exp.DB
		}
		if path == "" {
			return fmt.Errorf("no results database configured")
		}
		st, err := openStore(ctx, path)
		if err != nil {
			return err
		}
		defer st.Close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		if len(args) == 0 {
			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := st.RecentRuns(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "RUN\tSTARTED\tFOLDER\tMIN WORDS\tSEED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Folder, r.MinWords, r.Seed)
			}
			return tw.Flush()
		}

		if _, ok, err := st.GetRun(ctx, args[0]); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("run %s not found", args[0])
		}
		outcomes, err := st.Outcomes(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "SET\tDIMENSION\tPRECISION\tRECALL\tF1")
		for _, o := range outcomes {
			if o.Failed() {
				fmt.Fprintf(tw, "%s\t%s\terror: %s\t\t\n", o.Set, o.Dimension, o.Err)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\n", o.Set, o.Dimension, o.Precision, o.Recall, o.F1)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to list")
}
