// Day command prints the schedule for one date.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

var dayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show the schedule for a date",
	Long: `Day lists every appointment on the given date sorted by start time,
cancelled ones included so the day's history stays visible.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, store, err := openScheduler()
		if err != nil {
			fail("day", err)
		}
		defer store.Close()

		appts, err := sched.DaySchedule(args[0])
		if err != nil {
			fail("day", err)
		}

		if flagJSON {
			if appts == nil {
				appts = []types.Appointment{}
			}
			printJSON(appts)
		} else {
			printAppointmentTable(appts)
		}
		return nil
	},
}
