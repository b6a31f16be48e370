package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/app"
	"github.com/kilianp07/edgecover/config"
	"github.com/kilianp07/edgecover/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "edgecover",
	Short:         "Energy-aware device selection for location coverage",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// withApp builds the application for the duration of fn.
func withApp(cfg *config.Config, fn func(a *app.App) error) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.New("main").Errorf("app close: %v", err)
		}
	}()
	return fn(a)
}
