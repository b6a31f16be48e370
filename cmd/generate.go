package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/edgecover/core/generator"
	"github.com/kilianp07/edgecover/infra/logger"
	"github.com/kilianp07/edgecover/pkg/scenariofile"
)

var generateOpts struct {
	out       string
	name      string
	devices   int
	locations int
	nodes     int
	seed      uint64
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random scenario file",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.out, "out", "o", "scenario.yaml", "output file (.yaml, .yml or .json)")
	f.StringVar(&generateOpts.name, "name", "", "scenario name")
	f.IntVar(&generateOpts.devices, "devices", 0, "number of devices")
	f.IntVar(&generateOpts.locations, "locations", 0, "number of locations")
	f.IntVar(&generateOpts.nodes, "nodes", 0, "number of edge nodes")
	f.Uint64Var(&generateOpts.seed, "seed", 0, "random seed")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gc := cfg.Generator
	flags := cmd.Flags()
	if flags.Changed("name") {
		gc.Name = generateOpts.name
	}
	if flags.Changed("devices") {
		gc.Devices = generateOpts.devices
	}
	if flags.Changed("locations") {
		gc.Locations = generateOpts.locations
	}
	if flags.Changed("nodes") {
		gc.Nodes = generateOpts.nodes
	}
	if flags.Changed("seed") {
		gc.Seed = generateOpts.seed
	}
	g, err := generator.New(gc, logger.New("generator"))
	if err != nil {
		return err
	}
	sc, err := g.Generate()
	if err != nil {
		return err
	}
	if err := scenariofile.Save(generateOpts.out, sc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d devices, %d locations, %d nodes\n",
		generateOpts.out, len(sc.Devices), len(sc.Locations), len(sc.Nodes))
	return nil
}
