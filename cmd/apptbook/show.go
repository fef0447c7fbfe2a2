// Show command displays a single appointment by ID.
package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("show", err)
		}

		store, err := openStore()
		if err != nil {
			fail("show", err)
		}
		defer store.Close()

		appt, err := store.Get(id)
		if err != nil {
			fail("show", err)
		}

		if flagJSON {
			printJSON(appt)
		} else {
			printAppointment(appt)
		}
		return nil
	},
}
