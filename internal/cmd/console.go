package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservations/internal/config"
	"github.com/iliyamo/restaurant-reservations/internal/console"
	"github.com/iliyamo/restaurant-reservations/internal/queue"
	"github.com/iliyamo/restaurant-reservations/internal/reservation"
	"github.com/iliyamo/restaurant-reservations/internal/service"
)

func newConsoleCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive reservation console",
		Long:  `Opens the menu-driven console. Reservations live in memory for the duration of the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, *configPath)
		},
	}
}

func runConsole(cmd *cobra.Command, configPath string) error {
	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	log.Info("console started",
		zap.String("restaurant", cfg.Restaurant.Name),
		zap.Int("first_slot", cfg.Restaurant.FirstSlot),
		zap.Int("last_slot", cfg.Restaurant.LastSlot),
		zap.Int("capacity", cfg.Restaurant.Capacity),
		zap.Bool("events", cfg.Events.Enabled))

	return console.New(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

// newService wires an allocator for the configured policy to the event
// publisher.
func newService(cfg config.Config, log *zap.Logger) (*service.ReservationService, error) {
	alloc, err := reservation.New(cfg.Policy())
	if err != nil {
		return nil, fmt.Errorf("failed to create allocator: %w", err)
	}
	var pub queue.Publisher = queue.NopPublisher{}
	if cfg.Events.Enabled {
		pub = queue.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Queue)
	}
	return service.NewReservationService(alloc, pub, log, cfg.Events.PublishTimeout), nil
}
