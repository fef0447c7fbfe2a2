// Cancel command marks an appointment cancelled.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Long: `Cancel marks the appointment cancelled. The record stays in storage
for the audit trail but stops occupying its time slot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("cancel", err)
		}

		sched, store, err := openScheduler()
		if err != nil {
			fail("cancel", err)
		}
		defer store.Close()

		if err := sched.Cancel(id); err != nil {
			fail("cancel", err)
		}

		if flagJSON {
			printJSON(map[string]any{"cancelled": id})
		} else {
			fmt.Printf("Cancelled appointment %d\n", id)
		}
		return nil
	},
}
