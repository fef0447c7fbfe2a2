// Init command prepares the configuration and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the appointment book storage",
	Long: `Init creates the data directory and an empty store for the configured
backend. The config directory and a default config.yaml are created on
any command's first run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := resolveDataDir()
		if err != nil {
			fail("init", err)
		}

		store, err := openStore()
		if err != nil {
			fail("init", err)
		}
		defer store.Close()

		fmt.Printf("Initialized appointment book (%s backend) in %s\n", cfg.Backend, dataDir)
		return nil
	},
}
