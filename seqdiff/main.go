// Command seqdiff compares sequences of elements and reports how they changed.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"znkr.io/ext/seqdiff/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           "seqdiff [command]",
		Short:         "Compare sequences of elements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(verbose); err != nil {
				return err
			}
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			log.Debugf("config: %+v", cfg)
			return cfg.Apply(cmd.Flags())
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")

	rootCmd.AddCommand(
		newDiffCmd(),
		newEditsCmd(),
		newReportCmd(),
		newServeCmd(),
		newCoalesceCmd(),
	)
	return rootCmd
}

// initLogging logs to stderr. The level is taken from SEQDIFF_LOG unless verbose is set.
func initLogging(verbose bool) error {
	log.SetHandler(cli.New(os.Stderr))

	level := log.InfoLevel
	if s := os.Getenv("SEQDIFF_LOG"); s != "" {
		var err error
		if level, err = log.ParseLevel(strings.ToLower(s)); err != nil {
			return fmt.Errorf("SEQDIFF_LOG: %v", err)
		}
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	return nil
}
