package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// eventRetention bounds how far back the persisted event history goes.
const eventRetention = 30 * 24 * time.Hour

var serveNoInitialSync bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run catalog syncs on a schedule",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveNoInitialSync, "no-initial-sync", false,
		"Skip the immediate sync on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mirror every published event into the server log. The channel is
	// closed by bus.Close on shutdown.
	feed := a.bus.SubscribeAll(64)
	go func() {
		for e := range feed {
			a.log.Info("event",
				"type", e.EventType(),
				"entity", e.EntityType(),
				"entity_id", e.EntityID(),
			)
		}
	}()

	runOnce := func() {
		// A slow sync can outlast its schedule slot; never stack runs.
		if a.jobs.Running() {
			a.log.Warn("previous sync still running, skipping this run")
			return
		}
		job := a.jobs.Start()
		a.log.Info("sync starting", "job", job.ID)
		report, err := a.orch.Run(ctx, job.ID)
		a.jobs.Finish(job.ID, report, err)
		if err != nil && ctx.Err() == nil {
			a.log.Error("sync failed", "job", job.ID, "error", err)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(a.cfg.Sync.Schedule, runOnce); err != nil {
		return fmt.Errorf("schedule %q: %w", a.cfg.Sync.Schedule, err)
	}
	if _, err := scheduler.AddFunc("@daily", func() {
		pruned, err := a.eventLog.Prune(eventRetention)
		if err != nil {
			a.log.Error("event prune failed", "error", err)
			return
		}
		if pruned > 0 {
			a.log.Info("pruned old events", "count", pruned)
		}
	}); err != nil {
		return fmt.Errorf("schedule event prune: %w", err)
	}
	scheduler.Start()

	a.log.Info("scheduler started",
		"schedule", a.cfg.Sync.Schedule,
		"database", a.cfg.Database.Path,
		"enrichment", a.cfg.Enrichment.Enabled,
	)

	// A fresh install should be browsable without waiting for the first
	// scheduled slot.
	if !serveNoInitialSync {
		go runOnce()
	}

	<-ctx.Done()
	a.log.Info("received signal, shutting down")

	waitCtx := scheduler.Stop()
	<-waitCtx.Done()

	a.log.Info("scheduler stopped")
	return nil
}
