// Root command for the apptbook CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/apptbook/internal/paths"
	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad input, conflicts, unknown
// IDs), 2 system error (storage or configuration failure).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// cfg holds the effective configuration loaded by PersistentPreRunE so
// all subcommands can use it.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:   "apptbook",
	Short: "Apptbook is a local appointment scheduler",
	Long: `Apptbook manages time-bounded appointments in a durable local store:
creating with overlap detection, listing, free-slot enumeration,
rescheduling, and cancelling.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		cfg = configFromViper(v)
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.apptbook-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(rescheduleCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(upcomingCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > APPTBOOK_DATA_DIR env >
// default $(CWD)/.apptbook-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > APPTBOOK_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
