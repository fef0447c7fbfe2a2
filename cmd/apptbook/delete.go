// Delete command removes an appointment record entirely.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an appointment record",
	Long: `Delete removes the record from storage entirely, unlike cancel which
keeps it. The deleted identifier is never reassigned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("delete", err)
		}

		sched, store, err := openScheduler()
		if err != nil {
			fail("delete", err)
		}
		defer store.Close()

		if err := sched.Delete(id); err != nil {
			fail("delete", err)
		}

		if flagJSON {
			printJSON(map[string]any{"deleted": id})
		} else {
			fmt.Printf("Deleted appointment %d\n", id)
		}
		return nil
	},
}
