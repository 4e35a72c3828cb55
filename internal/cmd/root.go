// Package cmd holds the cobra commands of the reservas binary.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservations/internal/config"
	"github.com/iliyamo/restaurant-reservations/internal/logger"
)

// NewRootCmd creates the root command.  Run without a subcommand it opens
// the interactive console.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "reservas",
		Short: "Restaurant slot reservation system",
		Long: `Reservas books guests into hourly slots with a fixed capacity per slot.
Without a subcommand it starts the interactive console.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $RESERVAS_CONFIG or "+config.DefaultPath+")")

	root.AddCommand(newConsoleCmd(&configPath))
	root.AddCommand(newConsumeCmd(&configPath))
	root.AddCommand(newSlotsCmd(&configPath))
	return root
}

// bootstrap loads the configuration and builds the logger every command
// shares.
func bootstrap(configPath string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, logger.MustNew(cfg.Env, cfg.LogLevel), nil
}
