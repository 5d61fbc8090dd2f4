// Package cli implements the tinysearch command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gwenf/tinysearch/pkg/config"
	"github.com/gwenf/tinysearch/pkg/logger"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:          "tinysearch",
		Short:        "Build and query a full-text index over a directory of text files",
		SilenceUsage: true,
		Long: `tinysearch indexes the text files under a directory into a compact
binary index stored alongside them, and answers ranked keyword queries
against it.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
}

// Execute is called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and installs the logger before any
// command runs.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}
