// Config loading for the apptbook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

const (
	configFileName     = "config"
	configFileType     = "yaml"
	configFileFullName = "config.yaml"

	// Config keys.
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyDuration     = "default_duration_minutes"
	cfgKeyDayStart     = "day_start_hour"
	cfgKeyDayEnd       = "day_end_hour"
	cfgKeySlotInterval = "slot_interval_minutes"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Apptbook CLI configuration

# Backend selection: json (flat appointments.json file) or sqlite
backend: json

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Scheduling defaults
default_duration_minutes: 60
day_start_hour: 9
day_end_hour: 17
slot_interval_minutes: 30
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSON)
	v.SetDefault(cfgKeyDuration, types.DefaultDurationMinutes)
	v.SetDefault(cfgKeyDayStart, types.DefaultDayStartHour)
	v.SetDefault(cfgKeyDayEnd, types.DefaultDayEndHour)
	v.SetDefault(cfgKeySlotInterval, types.DefaultSlotInterval)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// configFromViper builds the effective Config from loaded settings.
func configFromViper(v *viper.Viper) types.Config {
	return types.Config{
		Backend:                v.GetString(cfgKeyBackend),
		DataDir:                v.GetString(cfgKeyDataDir),
		DefaultDurationMinutes: v.GetInt(cfgKeyDuration),
		DayStartHour:           v.GetInt(cfgKeyDayStart),
		DayEndHour:             v.GetInt(cfgKeyDayEnd),
		SlotIntervalMinutes:    v.GetInt(cfgKeySlotInterval),
	}.WithDefaults()
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileFullName)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
