package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/app"
	"github.com/kilianp07/edgecover/core/runlog"
)

var historyOpts struct {
	algorithm string
	scenario  string
	since     time.Duration
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded selector runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyOpts.algorithm, "algorithm", "a", "", "only runs of this selector")
	historyCmd.Flags().StringVarP(&historyOpts.scenario, "scenario", "s", "", "only runs on this scenario")
	historyCmd.Flags().DurationVar(&historyOpts.since, "since", 0, "only runs newer than this duration")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Selection.Publish = false
	q := runlog.Query{Algorithm: historyOpts.algorithm, Scenario: historyOpts.scenario}
	if historyOpts.since > 0 {
		q.Start = time.Now().Add(-historyOpts.since)
	}
	return withApp(cfg, func(a *app.App) error {
		recs, err := a.Store.Query(context.Background(), q)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tSCENARIO\tALGORITHM\tDEVICES\tENERGY\tLOWER BOUND\tERROR")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.4f\t%.4f\t%s\n",
				r.Timestamp.Format(time.RFC3339), r.Scenario, r.Algorithm, len(r.Devices), r.Energy, r.LowerBound, r.Error)
		}
		return tw.Flush()
	})
}
