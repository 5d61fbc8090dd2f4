package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gwenf/tinysearch/internal/indexer"
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Index every document under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		stats, err := indexer.Run(cmd.Context(), cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("indexed %d documents, %d terms in %s\n",
			stats.Documents, stats.Terms, stats.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
