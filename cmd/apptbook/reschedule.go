// Reschedule command moves an appointment to a new date and time.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule <id> <date> <time>",
	Short: "Move an appointment to a new date and time",
	Long: `Reschedule re-runs conflict detection at the new slot using the
appointment's stored duration. The appointment's own current slot does
not count as a conflict, so shifting within its old interval works.

Example:
  apptbook reschedule 3 2026-01-16 11:30`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("reschedule", err)
		}

		sched, store, err := openScheduler()
		if err != nil {
			fail("reschedule", err)
		}
		defer store.Close()

		appt, err := sched.Reschedule(id, args[1], args[2])
		if err != nil {
			fail("reschedule", err)
		}

		if flagJSON {
			printJSON(appt)
		} else {
			fmt.Printf("Rescheduled appointment %d to %s at %s\n", appt.ID, appt.Date, appt.Time)
		}
		return nil
	},
}
