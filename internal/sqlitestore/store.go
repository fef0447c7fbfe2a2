// Package sqlitestore implements the SQLite backend for the apptbook
// record store. It exposes the same Store contract as the flat JSON
// backend; the collection simply lives in an appointments table with a
// date index instead of a rewritten file.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// FileName is the database file created inside the data directory.
const FileName = "appointments.db"

// timeLayout is the column format for created_at and updated_at.
const timeLayout = time.RFC3339Nano

// Store is a types.Store backed by a local SQLite database.
type Store struct {
	db     *sql.DB
	closed bool
}

// Open creates the data directory and database if needed, applies the
// schema, and returns a ready Store.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the full collection in insertion order.
func (s *Store) Load() ([]types.Appointment, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(selectColumns + ` FROM appointments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// Save inserts the record and fills in its assigned identifier and
// CreatedAt stamp. AUTOINCREMENT guarantees identifiers increase
// monotonically and are never reused after deletion.
func (s *Store) Save(a *types.Appointment) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	a.CreatedAt = time.Now()
	res, err := s.db.Exec(
		`INSERT INTO appointments
		 (title, date, time, duration_minutes, client_name, description, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Date, a.Time, a.DurationMinutes, a.ClientName,
		a.Description, a.Status, a.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading assigned id: %w", err)
	}
	a.ID = int(id)
	return nil
}

// Get returns the appointment with the given identifier.
// Returns types.ErrNotFound if no row matches.
func (s *Store) Get(id int) (*types.Appointment, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(selectColumns+` FROM appointments WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying appointment %d: %w", id, err)
	}
	defer rows.Close()
	appts, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return nil, types.ErrNotFound
	}
	return &appts[0], nil
}

// Update loads the matching row, merges the patch, stamps UpdatedAt,
// and writes the row back. Returns types.ErrNotFound if no row matches.
func (s *Store) Update(id int, patch types.AppointmentPatch) error {
	a, err := s.Get(id)
	if err != nil {
		return err
	}
	patch.Apply(a)
	a.UpdatedAt = time.Now()
	_, err = s.db.Exec(
		`UPDATE appointments
		 SET title = ?, date = ?, time = ?, duration_minutes = ?,
		     client_name = ?, description = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		a.Title, a.Date, a.Time, a.DurationMinutes, a.ClientName,
		a.Description, a.Status, a.UpdatedAt.Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("updating appointment %d: %w", id, err)
	}
	return nil
}

// Delete removes the matching row. Returns types.ErrNotFound if no row
// matches. The AUTOINCREMENT sequence keeps the deleted identifier
// retired.
func (s *Store) Delete(id int) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	res, err := s.db.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting appointment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting appointment %d: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ByDate returns all appointments on the given date in insertion order,
// served by the date index.
func (s *Store) ByDate(date string) ([]types.Appointment, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.db.Query(selectColumns+` FROM appointments WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("querying appointments for %s: %w", date, err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}
	return nil
}

const selectColumns = `SELECT id, title, date, time, duration_minutes,
	client_name, description, status, created_at, updated_at`

// scanAppointments drains the rows into appointment values.
func scanAppointments(rows *sql.Rows) ([]types.Appointment, error) {
	appts := []types.Appointment{}
	for rows.Next() {
		var (
			a         types.Appointment
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Date, &a.Time, &a.DurationMinutes,
			&a.ClientName, &a.Description, &a.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		ts, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		a.CreatedAt = ts
		if updatedAt.Valid && updatedAt.String != "" {
			ts, err := time.Parse(timeLayout, updatedAt.String)
			if err != nil {
				return nil, fmt.Errorf("parsing updated_at: %w", err)
			}
			a.UpdatedAt = ts
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading appointments: %w", err)
	}
	return appts, nil
}
