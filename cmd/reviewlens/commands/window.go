package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spacesedan/reviewlens/internal/metrics"
	"github.com/spacesedan/reviewlens/internal/shell"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(windowCmd)
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Opens the review analyzer window on a local address.",
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, cleanup, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		metrics.Init(prometheus.DefaultRegisterer)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sh := shell.New(ctx, analyzer)
		srv := shell.NewServer(sh)

		serverErr := make(chan error, 1)
		go func() {
			if err := srv.Listen(cfg.Server.Addr); err != nil {
				slog.Error("[Main] Server error", slog.String("error", err.Error()))
				serverErr <- err
			}
		}()
		slog.Info("[Main] Review Analyzer window ready", slog.String("url", "http://"+cfg.Server.Addr))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case <-quit:
		case err := <-serverErr:
			cancel()
			sh.Wait()
			return fmt.Errorf("window server stopped: %w", err)
		}

		slog.Info("[Main] Shutting down window...")
		cancel()
		sh.Wait()
		return srv.Shutdown()
	},
}
