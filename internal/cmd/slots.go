package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSlotsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Show the configured slot policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			bold := color.New(color.Bold).SprintFunc()
			out := cmd.OutOrStdout()
			r := cfg.Restaurant
			fmt.Fprintln(out, bold(r.Name))
			fmt.Fprintf(out, "  Slots:     %d:00 - %d:00 (%d slots)\n", r.FirstSlot, r.LastSlot, r.LastSlot-r.FirstSlot+1)
			fmt.Fprintf(out, "  Capacity:  %d per slot\n", r.Capacity)
			if cfg.Events.Enabled {
				fmt.Fprintf(out, "  Events:    %s\n", color.GreenString("queue %s", cfg.Events.Queue))
			} else {
				fmt.Fprintf(out, "  Events:    %s\n", color.YellowString("disabled"))
			}
			return nil
		},
	}
}
