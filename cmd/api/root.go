package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bossygit/vibes-arc-sub000/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "vibes",
	Short:         "Habit progress analytics",
	Long:          `Tracks habits and identities and builds engagement and weekly reports from them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		loaded.SetupLogging()
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
}
