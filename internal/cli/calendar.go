package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mantara-io/gworkspace/calendar"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Work with Google Calendar events",
}

var calendarEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List upcoming events",
	RunE:  runCalendarEvents,
}

// Flags for calendar events.
var (
	calAccount string
	calID      string
	calDays    int
	calMax     int64
	calQuery   string
)

func init() {
	calendarEventsCmd.Flags().StringVar(
		&calAccount, "account", "", "Stored account to act as")
	calendarEventsCmd.Flags().StringVar(
		&calID, "calendar", "primary", "Calendar ID")
	calendarEventsCmd.Flags().IntVar(
		&calDays, "days", 7, "How many days ahead to list")
	calendarEventsCmd.Flags().Int64Var(
		&calMax, "max", 25, "Maximum number of events")
	calendarEventsCmd.Flags().StringVar(
		&calQuery, "query", "", "Free-text filter")

	calendarCmd.AddCommand(calendarEventsCmd)
	rootCmd.AddCommand(calendarCmd)
}

func runCalendarEvents(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, err := openData()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := loadRecord(ctx, store, calAccount)
	if err != nil {
		return err
	}
	mgr := clientForRecord(store, rec)

	now := time.Now()
	builder := calendar.NewEvents(mgr).List(calID).
		TimeMin(now).
		TimeMax(now.AddDate(0, 0, calDays)).
		SingleEvents(true).
		OrderBy(calendar.OrderByStartTime).
		MaxResults(calMax)
	if calQuery != "" {
		builder.Query(calQuery)
	}

	list, err := builder.Request(ctx)
	if err != nil {
		return err
	}

	if len(list.Items) == 0 {
		cmd.Println("No upcoming events.")
		return nil
	}

	for i := range list.Items {
		ev := &list.Items[i]
		cmd.Printf("%-22s  %s\n", eventStart(ev), ev.Summary)
	}
	return nil
}

// eventStart renders the start of an event, all-day or timed.
func eventStart(ev *calendar.Event) string {
	if ev.Start == nil {
		return ""
	}
	if ev.Start.Date != "" {
		return ev.Start.Date + " (all day)"
	}
	return ev.Start.DateTime
}
