// Package cmd provides the tariffctl commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/app"
	"github.com/Simplici0/tokenwatt/internal/config"
	"github.com/Simplici0/tokenwatt/internal/logging"
)

// Version is overridden at build time with -ldflags.
var Version = "0.0.0-dev"

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	cfgFile  string
	tariffID string
	verbose  bool
	asJSON   bool

	logger *zap.Logger
	app    *app.App
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "tariffctl",
		Short: "Convert between electricity units and amounts paid",
		Long: `tariffctl prices electricity consumption under a three-tier tariff with VAT.

Examples:
  tariffctl cost 45
  tariffctl units 5000 --initial 1000
  tariffctl units 2000 --existing 30 --tariff old
  tariffctl export site --dir dist`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "path to an optional YAML config file")
	root.PersistentFlags().StringVarP(&c.tariffID, "tariff", "t", "", "tariff schedule id (default from config)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print the breakdown as JSON")

	root.AddCommand(
		c.newCostCmd(),
		c.newUnitsCmd(),
		c.newSchedulesCmd(),
		c.newExportCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}

	// stdout carries command output
	c.logger, err = logging.New(logLevel(cfg, c.verbose), "stderr")
	if err != nil {
		return err
	}

	c.app, err = app.Bootstrap(cmd.Context(), cfg, c.logger)
	return err
}

func logLevel(cfg config.Config, verbose bool) string {
	if verbose {
		return "debug"
	}
	return cfg.Log.Level
}

func (c *cli) teardown(*cobra.Command, []string) error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.app != nil {
		return c.app.Close()
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// no database is needed to print the version
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tariffctl version %s\n", Version)
		},
	}
}
