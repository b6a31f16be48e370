package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/app"
	"github.com/kilianp07/edgecover/core/selection"
	"github.com/kilianp07/edgecover/pkg/export"
	"github.com/kilianp07/edgecover/pkg/scenariofile"
)

var compareOpts struct {
	algorithms []string
	format     string
}

var compareCmd = &cobra.Command{
	Use:   "compare <scenario>",
	Short: "Run several selectors on the same scenario and compare their energy",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringSliceVar(&compareOpts.algorithms, "algorithms", nil, "selectors to compare (default all)")
	compareCmd.Flags().StringVarP(&compareOpts.format, "format", "f", "table", "output format: table, json or csv")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := scenariofile.Load(args[0])
	if err != nil {
		return err
	}
	return withApp(cfg, func(a *app.App) error {
		reports, runErr := a.Runner.Compare(context.Background(), sc, compareOpts.algorithms...)
		out := cmd.OutOrStdout()
		var err error
		switch strings.ToLower(compareOpts.format) {
		case "json":
			err = export.WriteJSON(out, reports)
		case "csv":
			err = export.WriteCSV(out, reports)
		case "table":
			err = writeTable(cmd, reports)
		default:
			return fmt.Errorf("unknown format %q", compareOpts.format)
		}
		if err != nil {
			return err
		}
		return runErr
	})
}

func writeTable(cmd *cobra.Command, reports []selection.Report) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tDEVICES\tENERGY\tLOWER BOUND\tGAP\tITERATIONS\tERROR")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%d\t%s\n",
			r.Algorithm, len(r.Result.Devices), r.Result.Energy, r.LowerBound, r.Gap(), r.Result.Iterations, r.Err)
	}
	return tw.Flush()
}
