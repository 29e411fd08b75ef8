package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okvist/filmhaus/internal/events"
)

var (
	eventsLimit  int
	eventsSince  time.Duration
	eventsEntity string
	eventsID     int64
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the catalog's event history",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "Only events newer than this (e.g. 24h)")
	eventsCmd.Flags().StringVar(&eventsEntity, "entity", "", `Filter by entity type ("sync", "entry", "video")`)
	eventsCmd.Flags().Int64Var(&eventsID, "id", 0, "Entity id, used with --entity")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var list []events.StoredEvent
	switch {
	case eventsEntity != "":
		list, err = a.eventLog.ForEntity(eventsEntity, eventsID)
	case eventsSince > 0:
		list, err = a.eventLog.Since(time.Now().Add(-eventsSince))
	default:
		list, err = a.eventLog.Recent(eventsLimit)
	}
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No events")
		return nil
	}

	fmt.Printf("%-12s %-24s %-15s\n", "TIME", "TYPE", "ENTITY")
	fmt.Println(strings.Repeat("-", 53))
	for _, e := range list {
		entity := fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)
		fmt.Printf("%-12s %-24s %-15s\n", timeAgo(e.OccurredAt), e.EventType, entity)
	}
	return nil
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
