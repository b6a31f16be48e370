package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/app"
	"github.com/kilianp07/edgecover/core/selection"
	"github.com/kilianp07/edgecover/infra/plot"
	"github.com/kilianp07/edgecover/pkg/export"
	"github.com/kilianp07/edgecover/pkg/scenariofile"
)

var selectOpts struct {
	algorithm string
	publish   bool
	output    string
	chart     string
}

var selectCmd = &cobra.Command{
	Use:   "select <scenario>",
	Short: "Select the devices to activate for a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

func init() {
	selectCmd.Flags().StringVarP(&selectOpts.algorithm, "algorithm", "a", "", "selector name or alias (default from config)")
	selectCmd.Flags().BoolVar(&selectOpts.publish, "publish", false, "publish activation commands over MQTT")
	selectCmd.Flags().StringVarP(&selectOpts.output, "output", "o", "", "write the report as JSON to this file")
	selectCmd.Flags().StringVar(&selectOpts.chart, "plot", "", "render an HTML chart of the selection to this file")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if selectOpts.algorithm != "" {
		cfg.Selection.Algorithm = selectOpts.algorithm
	}
	if selectOpts.publish {
		cfg.Selection.Publish = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	sc, err := scenariofile.Load(args[0])
	if err != nil {
		return err
	}

	return withApp(cfg, func(a *app.App) error {
		a.ServeMetrics(ctx)
		rep, err := a.Runner.Run(ctx, sc, cfg.Selection.Algorithm)
		if err != nil {
			return err
		}
		printReport(cmd, rep)
		if selectOpts.output != "" {
			if err := writeReports(selectOpts.output, []selection.Report{rep}); err != nil {
				return err
			}
		}
		if selectOpts.chart != "" {
			return plot.RenderFile(selectOpts.chart, sc, rep.Algorithm, rep.Result.Devices)
		}
		return nil
	})
}

func printReport(cmd *cobra.Command, rep selection.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "algorithm:   %s\n", rep.Algorithm)
	fmt.Fprintf(out, "devices:     %v\n", rep.Result.Devices)
	fmt.Fprintf(out, "energy:      %.4f\n", rep.Result.Energy)
	fmt.Fprintf(out, "lower bound: %.4f\n", rep.LowerBound)
	fmt.Fprintf(out, "iterations:  %d\n", rep.Result.Iterations)
	if len(rep.Acks) > 0 {
		acked := 0
		for _, ok := range rep.Acks {
			if ok {
				acked++
			}
		}
		fmt.Fprintf(out, "acked:       %d/%d\n", acked, len(rep.Acks))
	}
}

func writeReports(path string, reports []selection.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
