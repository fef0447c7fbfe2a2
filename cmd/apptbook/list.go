// List command shows the stored appointments.
package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	Long: `List shows stored appointments sorted by date and time. Cancelled
appointments are hidden unless --all is given.

Example:
  apptbook list
  apptbook list --all
  apptbook list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			fail("list", err)
		}
		defer store.Close()

		appts, err := store.Load()
		if err != nil {
			fail("list", err)
		}

		if !listAll {
			kept := appts[:0]
			for _, a := range appts {
				if !a.Cancelled() {
					kept = append(kept, a)
				}
			}
			appts = kept
		}

		sort.SliceStable(appts, func(i, j int) bool {
			if appts[i].Date != appts[j].Date {
				return appts[i].Date < appts[j].Date
			}
			return appts[i].Time < appts[j].Time
		})

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
	listCmd.Flags().BoolVar(&listAll, "all", false, "include cancelled appointments")
}
