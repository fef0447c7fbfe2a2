package types

import "errors"

// Store defines the interface for durable appointment persistence.
// Implementations own the canonical collection; callers hold no cached
// state and re-read on every operation. Every mutation is a full
// load, mutate in memory, rewrite cycle under a single-writer
// assumption.
type Store interface {
	// Load returns the full appointment collection. A missing backing
	// container yields an empty collection. Corrupt content also yields
	// an empty collection rather than an error, so a damaged file never
	// takes the tool down; implementations report the degradation
	// through their warn hook.
	Load() ([]Appointment, error)

	// Save assigns the next identifier, stamps CreatedAt, appends the
	// record, and persists. Identifiers increase monotonically and are
	// never reused, even after Delete.
	Save(a *Appointment) error

	// Get returns the appointment with the given identifier.
	// Returns ErrNotFound if no record matches.
	Get(id int) (*Appointment, error)

	// Update merges the patch into the matching record, stamps
	// UpdatedAt, and persists. Returns ErrNotFound if no record matches.
	Update(id int, patch AppointmentPatch) error

	// Delete removes the matching record and persists. Returns
	// ErrNotFound if no record matches. Deleting does not free the
	// record's identifier for reuse.
	Delete(id int) error

	// ByDate returns all appointments whose date equals the given
	// YYYY-MM-DD string, in storage order.
	ByDate(date string) ([]Appointment, error)

	// Close releases backend resources. Idempotent; operations after
	// Close return ErrStoreClosed.
	Close() error
}

// Store lifecycle errors.
var (
	ErrNotFound    = errors.New("appointment not found")
	ErrStoreClosed = errors.New("store is closed")
)
