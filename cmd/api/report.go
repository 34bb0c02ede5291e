package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bossygit/vibes-arc-sub000/internal/core/workers"
)

var reportCmd = &cobra.Command{
	Use:       "report [engagement|weekly]",
	Short:     "Write a report to disk",
	Long:      `Build the engagement report (JSON plus one CSV per table) or the weekly report (JSON) and write the files to --out.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{workers.ExportEngagement, workers.ExportWeekly},
	RunE:      runReport,
}

var (
	reportOut   string
	reportLabel string
	reportDays  int
)

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output directory (defaults to EXPORT_DIR)")
	reportCmd.Flags().StringVar(&reportLabel, "label", "", "Period label of the engagement report")
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "Number of days covered by the engagement report")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := reportOut
	if dir == "" {
		dir = cfg.ExportDir
	}

	files, err := workers.NewExportWorker(a.reports, dir).Run(ctx, workers.ExportJob{
		ID:    uuid.NewString(),
		Kind:  args[0],
		Label: reportLabel,
		Days:  reportDays,
	})
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
