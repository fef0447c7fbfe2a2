// Upcoming command lists appointments in the next days.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

var upcomingDays int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List non-cancelled appointments in the coming days",
	Long: `Upcoming lists non-cancelled appointments dated between today and
today plus --days, inclusive, sorted by date and time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, store, err := openScheduler()
		if err != nil {
			fail("upcoming", err)
		}
		defer store.Close()

		appts, err := sched.Upcoming(upcomingDays)
		if err != nil {
			fail("upcoming", err)
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

func init() {
	upcomingCmd.Flags().IntVar(&upcomingDays, "days", 7, "how many days ahead to include")
}
