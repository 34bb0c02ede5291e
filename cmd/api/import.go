package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/export"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a backup file",
	Long:  `Append the habits and identities of a JSON backup to the configured storage.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	backup, err := export.DecodeBackup(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.backups.Import(ctx, backup)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d habits and %d identities\n", result.Habits, result.Identities)
	return nil
}
