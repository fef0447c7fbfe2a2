// Package jsonstore implements the flat-file JSON backend for the
// apptbook record store. The whole collection lives in a single
// human-readable appointments.json file that is rewritten in full,
// atomically, on every mutation.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// FileName is the backing file created inside the data directory.
const FileName = "appointments.json"

// Store is a types.Store backed by a single JSON array file.
type Store struct {
	path   string
	closed bool

	// Warn receives a diagnostic message when the store degrades
	// silently, e.g. when corrupt content is replaced by an empty
	// collection. Nil disables the hook.
	Warn func(msg string)
}

// Open creates the data directory and backing file if needed and
// returns a ready Store.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s := &Store{path: filepath.Join(dataDir, FileName)}
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		if err := s.persist(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s, nil
}

// Load returns the full collection. A missing file or corrupt content
// yields an empty collection; corruption is reported through Warn so
// the degradation is observable without failing the caller.
func (s *Store) Load() ([]types.Appointment, error) {
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Appointment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []types.Appointment{}, nil
	}
	var appts []types.Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		s.warnf("corrupt storage file %s, starting from an empty collection: %v", s.path, err)
		return []types.Appointment{}, nil
	}
	return appts, nil
}

// Save assigns the next identifier, stamps CreatedAt, appends the
// record, and rewrites the collection. Identifiers are one greater
// than the highest ever assigned, so deletion never frees an ID for
// reuse.
func (s *Store) Save(a *types.Appointment) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	appts, err := s.Load()
	if err != nil {
		return err
	}
	next := 1
	for _, existing := range appts {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	a.ID = next
	a.CreatedAt = time.Now()
	appts = append(appts, *a)
	return s.persist(appts)
}

// Get returns the appointment with the given identifier via a linear
// scan. Returns types.ErrNotFound if no record matches.
func (s *Store) Get(id int) (*types.Appointment, error) {
	appts, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			return &appts[i], nil
		}
	}
	return nil, types.ErrNotFound
}

// Update merges the patch into the matching record, stamps UpdatedAt,
// and rewrites the collection. Returns types.ErrNotFound if no record
// matches.
func (s *Store) Update(id int, patch types.AppointmentPatch) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	appts, err := s.Load()
	if err != nil {
		return err
	}
	for i := range appts {
		if appts[i].ID == id {
			patch.Apply(&appts[i])
			appts[i].UpdatedAt = time.Now()
			return s.persist(appts)
		}
	}
	return types.ErrNotFound
}

// Delete removes the matching record and rewrites the collection.
// Returns types.ErrNotFound if no record matches.
func (s *Store) Delete(id int) error {
	if s.closed {
		return types.ErrStoreClosed
	}
	appts, err := s.Load()
	if err != nil {
		return err
	}
	kept := appts[:0]
	for _, a := range appts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(appts) {
		return types.ErrNotFound
	}
	return s.persist(kept)
}

// ByDate returns all appointments whose date matches exactly, in
// storage order.
func (s *Store) ByDate(date string) ([]types.Appointment, error) {
	appts, err := s.Load()
	if err != nil {
		return nil, err
	}
	var matched []types.Appointment
	for _, a := range appts {
		if a.Date == date {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

// Close marks the store closed. Idempotent; there is no underlying
// handle to release because every operation opens the file itself.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

func (s *Store) warnf(format string, args ...any) {
	if s.Warn != nil {
		s.Warn(fmt.Sprintf(format, args...))
	}
}

// persist atomically writes the collection using the temp-file, fsync,
// rename pattern so a crashed write never leaves a half-written file.
func (s *Store) persist(appts []types.Appointment) error {
	if appts == nil {
		appts = []types.Appointment{}
	}
	data, err := json.MarshalIndent(appts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding appointments: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".appointments-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing records: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
