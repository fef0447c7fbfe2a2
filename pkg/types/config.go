package types

import "errors"

// Config holds backend selection and scheduling defaults for opening a
// Store and driving the scheduler from the CLI.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Scheduling defaults applied when the caller does not override them.
	DefaultDurationMinutes int `json:"default_duration_minutes" yaml:"default_duration_minutes"`
	DayStartHour           int `json:"day_start_hour" yaml:"day_start_hour"`
	DayEndHour             int `json:"day_end_hour" yaml:"day_end_hour"`
	SlotIntervalMinutes    int `json:"slot_interval_minutes" yaml:"slot_interval_minutes"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrDurationInvalid      = errors.New("default duration must be positive")
	ErrWorkingWindowInvalid = errors.New("day start hour must be before day end hour, both within 0-24")
	ErrSlotIntervalInvalid  = errors.New("slot interval must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendJSON:   true,
	BackendSQLite: true,
}

// Default scheduling parameters used when a Config field is zero.
const (
	DefaultDurationMinutes = 60
	DefaultDayStartHour    = 9
	DefaultDayEndHour      = 17
	DefaultSlotInterval    = 30
)

// WithDefaults returns a copy of the config with zero scheduling fields
// replaced by the package defaults.
func (c Config) WithDefaults() Config {
	if c.DefaultDurationMinutes == 0 {
		c.DefaultDurationMinutes = DefaultDurationMinutes
	}
	if c.DayStartHour == 0 {
		c.DayStartHour = DefaultDayStartHour
	}
	if c.DayEndHour == 0 {
		c.DayEndHour = DefaultDayEndHour
	}
	if c.SlotIntervalMinutes == 0 {
		c.SlotIntervalMinutes = DefaultSlotInterval
	}
	return c
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure. Validate expects a config that
// already passed through WithDefaults; zero scheduling fields fail.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DefaultDurationMinutes <= 0 {
		return ErrDurationInvalid
	}
	if c.DayStartHour < 0 || c.DayEndHour > 24 || c.DayStartHour >= c.DayEndHour {
		return ErrWorkingWindowInvalid
	}
	if c.SlotIntervalMinutes <= 0 {
		return ErrSlotIntervalInvalid
	}
	return nil
}
