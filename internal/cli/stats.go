package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gwenf/tinysearch/internal/indexer"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dir>",
	Short: "Print size statistics for a built index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rd, err := indexer.Open(cfg, args[0])
		if err != nil {
			return err
		}
		defer rd.Close()

		blobSize, err := rd.BlobSize()
		if err != nil {
			return err
		}
		fmt.Printf("documents:     %d\n", rd.DocCount())
		fmt.Printf("terms:         %d\n", rd.TermCount())
		fmt.Printf("postings blob: %d bytes\n", blobSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
