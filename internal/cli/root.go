// Package cli holds the eventease commands.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Shivanand-hulikatti/event-ease/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "eventease",
	Short: "Campus event discovery and booking",
	Long: `EventEase lets students browse campus events, book them, send contact
messages and manage a local account. It ships an interactive client
(shell) and an in-memory demo REST API (api).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "eventease.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads and validates the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// quietLogger only writes when --verbose is set. The interactive shell
// uses it so log lines do not interleave with prompts.
func quietLogger() *log.Logger {
	if verbose {
		return newLogger()
	}
	return log.New(io.Discard, "", 0)
}
