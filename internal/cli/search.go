package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gwenf/tinysearch/internal/indexer"
	"github.com/gwenf/tinysearch/internal/searcher"
)

var searchCmd = &cobra.Command{
	Use:   "search <dir> <query>...",
	Short: "Run a ranked keyword query against a built index",
	Args:  cobra.MinimumNArgs(2),
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

		results, err := searcher.Search(rd, strings.Join(args[1:], " "), cfg.Search.Limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for i, res := range results {
			fmt.Printf("%2d. %-50s %10.2f\n", i+1, res.Path, res.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
