package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "filmhaus",
	Short: "Self-hosted media catalog",
	Long: `filmhaus - self-hosted media catalog

Scans movie and tv library folders, normalizes videos for browser
playback, resolves subtitle tracks, and enriches titles with TMDB
metadata.

Run 'filmhaus sync' for a one-shot catalog sync, or 'filmhaus serve'
to keep syncing on a schedule.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: auto-discover)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("filmhaus {{.Version}}\n")
}
