// energygdp entrypoint.
//
// Commands:
//  1. run (also the default): load the GDP, energy and population tables, keep the configured
//     countries and years, join them, derive intensity, per-capita and elasticity indicators,
//     export the tables and render the three figures.
//  2. config init: write the default YAML configuration so paths and thresholds can be edited.
//
// Without --config every setting falls back to the built-in defaults (Data/ inputs, Output/ results).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/config"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/logging"
	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/pipeline"
)

const defaultConfigFile = "energygdp.yaml"

type runFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	skipCharts bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var f runFlags
	runE := func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context(), f, stdout)
	}

	root := &cobra.Command{
		Use:           "energygdp",
		Short:         "Energy intensity and energy-GDP elasticity for a set of countries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}
	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "YAML config file (defaults apply when empty or missing)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
	root.PersistentFlags().StringVar(&f.logFormat, "log-format", "", "Log format override (console|json)")
	root.PersistentFlags().BoolVar(&f.skipCharts, "skip-charts", false, "Write tables only, no PNG figures")

	run := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline once",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	root.AddCommand(run, configCmd)
	return root
}

func runPipeline(ctx context.Context, f runFlags, stdout io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	defer logging.Sync()

	res, err := pipeline.Run(ctx, cfg, pipeline.Options{Summary: stdout, SkipCharts: f.skipCharts})
	if err != nil {
		return err
	}
	for _, a := range res.Artifacts {
		logging.Infof("[main] wrote %s", a)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
