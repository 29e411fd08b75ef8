package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one catalog sync and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		job := a.jobs.Start()
		report, err := a.orch.Run(ctx, job.ID)
		a.jobs.Finish(job.ID, report, err)
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}

		fmt.Printf("sync complete: %d titles scanned, %d new titles, %d new videos, %d removed, %d transcoded, %d enriched, %d failures (%s)\n",
			report.EntriesScanned, report.EntriesInserted, report.VideosInserted,
			report.VideosRemoved, report.Transcoded, report.Enriched,
			report.Failures, report.Duration.Round(time.Second))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
