// File: cmd/loopctl/commands/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Root command, global flags and config loading for loopctl.

// Package commands implements the loopctl CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/momentics/hioload-loops/control"
	"github.com/momentics/hioload-loops/internal/logger"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"

	// Global flags.
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "loopctl",
	Short: "Inspect hioload execution groups",
	Long: `loopctl inspects the execution groups a hioload event loop selector
would build on this host.

Every setting can be overridden with HIOLOAD_<SECTION>_<KEY>, for example
HIOLOAD_LOOPS_WORKERS=8 or HIOLOAD_LOGGING_LEVEL=DEBUG.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, JSON or TOML)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(groupsCmd)
}

// loadConfig reads --config and applies its logging section.
func loadConfig() (*control.Config, error) {
	cfg, err := control.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}
