package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.3.1"

var rootCmd = &cobra.Command{
	Use:   "pinguinagent",
	Short: "On-device usage accounting and enforcement agent",
	Long: `PinguinAgent tracks per-app foreground usage on the monitored device,
evaluates the limits and schedules set by the parent, and keeps the
platform blocker and the family backend in sync.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file, using environment variables")
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the agent version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pinguinagent", version)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
