// Create command for the apptbook CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/apptbook/pkg/scheduler"
)

var (
	createTitle       string
	createDate        string
	createTime        string
	createDuration    int
	createClient      string
	createDescription string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new appointment with overlap detection",
	Long: `Create validates the date and time, checks the requested interval
against every non-cancelled appointment on that date, and persists the
new record only when the slot is free.

Example:
  apptbook create --title "Dentist" --date 2026-01-15 --time 10:00
  apptbook create --title "Review" --date 2026-01-15 --time 14:30 --duration 30 --client "ACME"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration := createDuration
		if duration == 0 {
			duration = cfg.DefaultDurationMinutes
		}

		sched, store, err := openScheduler()
		if err != nil {
			fail("create", err)
		}
		defer store.Close()

		appt, err := sched.Create(scheduler.CreateRequest{
			Title:           createTitle,
			Date:            createDate,
			Time:            createTime,
			DurationMinutes: duration,
			ClientName:      createClient,
			Description:     createDescription,
		})
		if err != nil {
			fail("create", err)
		}

		if flagJSON {
			printJSON(appt)
		} else {
			fmt.Printf("Created appointment %d: %s on %s at %s (%d min)\n",
				appt.ID, appt.Title, appt.Date, appt.Time, appt.DurationMinutes)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "appointment title (required)")
	createCmd.Flags().StringVar(&createDate, "date", "", "date, YYYY-MM-DD (required)")
	createCmd.Flags().StringVar(&createTime, "time", "", "start time, HH:MM (required)")
	createCmd.Flags().IntVar(&createDuration, "duration", 0, "duration in minutes (default from config)")
	createCmd.Flags().StringVar(&createClient, "client", "", "client name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "free-form description")

	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("date")
	createCmd.MarkFlagRequired("time")
}
