package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/app"
	"github.com/kilianp07/edgecover/core/model"
	"github.com/kilianp07/edgecover/infra/plot"
	"github.com/kilianp07/edgecover/pkg/scenariofile"
)

var plotOpts struct {
	algorithm string
	out       string
}

var plotCmd = &cobra.Command{
	Use:   "plot <scenario>",
	Short: "Render a scenario, optionally with a selection, as an HTML chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotOpts.algorithm, "algorithm", "a", "", "run this selector and highlight its devices")
	plotCmd.Flags().StringVarP(&plotOpts.out, "out", "o", "scenario.html", "output HTML file")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	sc, err := scenariofile.Load(args[0])
	if err != nil {
		return err
	}
	title := "scenario"
	var selected []model.DeviceID
	if plotOpts.algorithm != "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Selection.Publish = false
		err = withApp(cfg, func(a *app.App) error {
			reps, err := a.Runner.Compare(context.Background(), sc, plotOpts.algorithm)
			if err != nil {
				return err
			}
			title, selected = reps[0].Algorithm, reps[0].Result.Devices
			return nil
		})
		if err != nil {
			return err
		}
	}
	if err := plot.RenderFile(plotOpts.out, sc, title, selected); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", plotOpts.out)
	return nil
}
