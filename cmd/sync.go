package cmd

import (
	"context"
	"log"
	"time"

	"PinguinAgent/config"
	"PinguinAgent/services"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full accounting pass and exit",
	Long: `Runs the complete pipeline once: reconstruct today's usage, evaluate
limits and schedules, reconcile with the remote store and update the
blocker. Invoked by the OS background scheduler when the resident agent
is not running. Safe under at-least-once delivery: a duplicate invocation
finds nothing changed and writes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.LoadSettings()
		monitor := buildMonitor(settings)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		pass, err := monitor.RunPass(ctx, services.TriggerTask)
		if err != nil {
			return err
		}
		log.Printf("Pass %s: %d apps, %d upserts, %d resets, %d blocked",
			pass.ID, pass.AppsSeen, pass.Upserts, pass.ImplicitResets, pass.BlockedCount)
		return nil
	},
}
