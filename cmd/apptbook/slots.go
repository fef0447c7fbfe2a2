// Slots command enumerates free start times for a date.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	slotsDuration int
	slotsFrom     int
	slotsTo       int
	slotsInterval int
)

var slotsCmd = &cobra.Command{
	Use:   "slots <date>",
	Short: "List available time slots for a date",
	Long: `Slots enumerates candidate start times within the working window and
keeps the ones whose interval does not overlap any non-cancelled
appointment on that date.

Example:
  apptbook slots 2026-01-15
  apptbook slots 2026-01-15 --duration 30 --from 8 --to 18`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := args[0]

		duration := slotsDuration
		if duration == 0 {
			duration = cfg.DefaultDurationMinutes
		}
		from := slotsFrom
		if from == 0 {
			from = cfg.DayStartHour
		}
		to := slotsTo
		if to == 0 {
			to = cfg.DayEndHour
		}
		interval := slotsInterval
		if interval == 0 {
			interval = cfg.SlotIntervalMinutes
		}

		sched, store, err := openScheduler()
		if err != nil {
			fail("slots", err)
		}
		defer store.Close()

		slots, err := sched.AvailableSlots(date, duration, from, to, interval)
		if err != nil {
			fail("slots", err)
		}

		if flagJSON {
			if slots == nil {
				slots = []string{}
			}
			printJSON(slots)
			return nil
		}

		if len(slots) == 0 {
			fmt.Printf("No available slots on %s for a %d minute appointment.\n", date, duration)
			return nil
		}
		fmt.Printf("Available slots on %s (%d min):\n", date, duration)
		for _, slot := range slots {
			fmt.Printf("  %s\n", slot)
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().IntVar(&slotsDuration, "duration", 0, "appointment duration in minutes (default from config)")
	slotsCmd.Flags().IntVar(&slotsFrom, "from", 0, "working window start hour (default from config)")
	slotsCmd.Flags().IntVar(&slotsTo, "to", 0, "working window end hour, exclusive (default from config)")
	slotsCmd.Flags().IntVar(&slotsInterval, "interval", 0, "slot granularity in minutes (default from config)")
}
