package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/restaurant-reservations/internal/queue"
)

func newConsumeCmd(configPath *string) *cobra.Command {
	var logPath string

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Record reservation events from the broker",
		Long: `Consumes the reservation event queue and appends one line per event to the
events log file. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if logPath != "" {
				cfg.Events.LogPath = logPath
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := queue.NewConsumer(cfg.Events.URL, cfg.Events.Queue, cfg.Events.LogPath, log.Named("consumer"))
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logPath, "log-path", "", "file to append events to (overrides EVENTS_LOG_PATH)")
	return cmd
}
