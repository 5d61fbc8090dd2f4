package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gwenf/tinysearch/internal/indexer"
	"github.com/gwenf/tinysearch/internal/server"
	"github.com/gwenf/tinysearch/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve <dir>",
	Short: "Serve ranked queries over HTTP with Prometheus metrics",
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Server, rd, metrics.New(), cfg.Search.Limit)
		return srv.Run(ctx, cfg.Server.ShutdownTimeout)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
