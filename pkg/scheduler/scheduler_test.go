package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// memStore is an in-memory types.Store for engine tests. It counts
// operations so tests can assert that validation failures never reach
// the store.
type memStore struct {
	appts  []types.Appointment
	nextID int

	loads, saves, updates, deletes, byDates int

	saveErr   error
	updateErr error
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (m *memStore) Load() ([]types.Appointment, error) {
	m.loads++
	out := make([]types.Appointment, len(m.appts))
	copy(out, m.appts)
	return out, nil
}

func (m *memStore) Save(a *types.Appointment) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	m.appts = append(m.appts, *a)
	return nil
}

func (m *memStore) Get(id int) (*types.Appointment, error) {
	for i := range m.appts {
		if m.appts[i].ID == id {
			a := m.appts[i]
			return &a, nil
		}
	}
	return nil, types.ErrNotFound
}

func (m *memStore) Update(id int, patch types.AppointmentPatch) error {
	m.updates++
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.appts {
		if m.appts[i].ID == id {
			patch.Apply(&m.appts[i])
			m.appts[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return types.ErrNotFound
}

func (m *memStore) Delete(id int) error {
	m.deletes++
	for i := range m.appts {
		if m.appts[i].ID == id {
			m.appts = append(m.appts[:i], m.appts[i+1:]...)
			return nil
		}
	}
	return types.ErrNotFound
}

func (m *memStore) ByDate(date string) ([]types.Appointment, error) {
	m.byDates++
	var out []types.Appointment
	for _, a := range m.appts {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) mutations() int { return m.saves + m.updates + m.deletes }

func mustCreate(t *testing.T, s *Scheduler, title, date, clock string, duration int) *types.Appointment {
	t.Helper()
	appt, err := s.Create(CreateRequest{
		Title:           title,
		Date:            date,
		Time:            clock,
		DurationMinutes: duration,
	})
	require.NoError(t, err)
	return appt
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := New(newMemStore())

	for i := 1; i <= 5; i++ {
		appt := mustCreate(t, s, "Meeting", "2026-01-15", fmt.Sprintf("%02d:00", 8+i), 30)
		assert.Equal(t, i, appt.ID)
		assert.Equal(t, types.StatusScheduled, appt.Status)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr error
	}{
		{
			name:    "empty title",
			req:     CreateRequest{Date: "2026-01-15", Time: "10:00"},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "US-style date",
			req:     CreateRequest{Title: "Meeting", Date: "01-15-2026", Time: "10:00"},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "nonsense date",
			req:     CreateRequest{Title: "Meeting", Date: "not-a-date", Time: "10:00"},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "bad clock",
			req:     CreateRequest{Title: "Meeting", Date: "2026-01-15", Time: "25:99"},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "clock with seconds",
			req:     CreateRequest{Title: "Meeting", Date: "2026-01-15", Time: "10:00:00"},
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			s := New(store)

			_, err := s.Create(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.mutations(), "validation failure must not reach the store")
			assert.Zero(t, store.byDates, "validation failure must not even read the store")
		})
	}
}

func TestCreateSurfacesSaveFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	s := New(store)

	appt, err := s.Create(CreateRequest{Title: "Meeting", Date: "2026-01-15", Time: "10:00"})
	require.ErrorIs(t, err, store.saveErr)
	assert.Nil(t, appt, "a failed save must not hand back an appointment")
}

func TestRescheduleSurfacesUpdateFailure(t *testing.T) {
	store := newMemStore()
	s := New(store)
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	store.updateErr = errors.New("disk full")
	_, err := s.Reschedule(appt.ID, "2026-01-16", "14:00")
	require.ErrorIs(t, err, store.updateErr)

	unchanged, err := store.Get(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", unchanged.Date)
	assert.Equal(t, "10:00", unchanged.Time)
}

func TestCancelSurfacesUpdateFailure(t *testing.T) {
	store := newMemStore()
	s := New(store)
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	store.updateErr = errors.New("disk full")
	err := s.Cancel(appt.ID)
	require.ErrorIs(t, err, store.updateErr)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestCreateConflictScenario(t *testing.T) {
	s := New(newMemStore())

	first := mustCreate(t, s, "Meeting 1", "2026-01-15", "10:00", 60)
	assert.Equal(t, 1, first.ID)

	// 10:30 overlaps [10:00, 11:00).
	_, err := s.Create(CreateRequest{Title: "Meeting 2", Date: "2026-01-15", Time: "10:30", DurationMinutes: 60})
	require.ErrorIs(t, err, ErrConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, Conflict{ID: 1, Title: "Meeting 1", Time: "10:00", DurationMinutes: 60}, conflictErr.Conflicts[0])

	// 11:00 touches the end of [10:00, 11:00): no overlap.
	third := mustCreate(t, s, "Meeting 3", "2026-01-15", "11:00", 60)
	assert.Equal(t, 2, third.ID, "failed create must not consume an ID")
}

func TestConflictHalfOpenIntervals(t *testing.T) {
	tests := []struct {
		name         string
		existing     string // HH:MM, 60 min
		candidate    string // HH:MM, 60 min
		wantConflict bool
	}{
		{name: "identical", existing: "10:00", candidate: "10:00", wantConflict: true},
		{name: "candidate starts inside", existing: "10:00", candidate: "10:30", wantConflict: true},
		{name: "candidate ends inside", existing: "10:00", candidate: "09:30", wantConflict: true},
		{name: "candidate touches end", existing: "10:00", candidate: "11:00", wantConflict: false},
		{name: "candidate touches start", existing: "10:00", candidate: "09:00", wantConflict: false},
		{name: "disjoint before", existing: "10:00", candidate: "08:00", wantConflict: false},
		{name: "disjoint after", existing: "10:00", candidate: "12:00", wantConflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(newMemStore())
			mustCreate(t, s, "Existing", "2026-01-15", tt.existing, 60)

			conflicts, err := s.Conflicts("2026-01-15", tt.candidate, 60, 0)
			require.NoError(t, err)
			if tt.wantConflict {
				assert.NotEmpty(t, conflicts)
			} else {
				assert.Empty(t, conflicts)
			}
		})
	}
}

func TestConflictIgnoresOtherDatesAndCancelled(t *testing.T) {
	s := New(newMemStore())
	mustCreate(t, s, "Other day", "2026-01-16", "10:00", 60)
	cancelled := mustCreate(t, s, "Cancelled", "2026-01-15", "10:00", 60)
	require.NoError(t, s.Cancel(cancelled.ID))

	conflicts, err := s.Conflicts("2026-01-15", "10:00", 60, 0)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestAvailableSlots(t *testing.T) {
	s := New(newMemStore())
	mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	slots, err := s.AvailableSlots("2026-01-15", 60, 9, 17, 30)
	require.NoError(t, err)

	assert.Contains(t, slots, "09:00")
	assert.Contains(t, slots, "11:00")
	assert.NotContains(t, slots, "09:30", "a 60 min booking at 09:30 would run into [10:00, 11:00)")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")

	// Ascending generation order.
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestAvailableSlotsNeverConflict(t *testing.T) {
	s := New(newMemStore())
	mustCreate(t, s, "A", "2026-01-15", "09:15", 45)
	mustCreate(t, s, "B", "2026-01-15", "12:00", 90)
	mustCreate(t, s, "C", "2026-01-15", "16:30", 60)

	slots, err := s.AvailableSlots("2026-01-15", 30, 9, 17, 30)
	require.NoError(t, err)

	for _, slot := range slots {
		conflicts, err := s.Conflicts("2026-01-15", slot, 30, 0)
		require.NoError(t, err)
		assert.Empty(t, conflicts, "slot %s must be conflict-free", slot)
	}
}

func TestAvailableSlotsEmptyWindowOnFullDay(t *testing.T) {
	s := New(newMemStore())
	mustCreate(t, s, "All day", "2026-01-15", "09:00", 8*60)

	slots, err := s.AvailableSlots("2026-01-15", 30, 9, 17, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	s := New(newMemStore())

	_, err := s.AvailableSlots("15/01/2026", 60, 9, 17, 30)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCancelFreesSlot(t *testing.T) {
	s := New(newMemStore())
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	slots, err := s.AvailableSlots("2026-01-15", 60, 9, 17, 30)
	require.NoError(t, err)
	require.NotContains(t, slots, "10:00")

	require.NoError(t, s.Cancel(appt.ID))

	slots, err = s.AvailableSlots("2026-01-15", 60, 9, 17, 30)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00", "cancelling must free the former slot")
}

func TestCancelNotFound(t *testing.T) {
	s := New(newMemStore())
	assert.ErrorIs(t, s.Cancel(42), types.ErrNotFound)
}

func TestRescheduleMovesAppointment(t *testing.T) {
	store := newMemStore()
	s := New(store)
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 45)

	moved, err := s.Reschedule(appt.ID, "2026-01-16", "14:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-16", moved.Date)
	assert.Equal(t, "14:00", moved.Time)
	assert.Equal(t, 45, moved.DurationMinutes, "duration is kept, not re-specified")
}

func TestRescheduleConflictLeavesRecordUnchanged(t *testing.T) {
	store := newMemStore()
	s := New(store)
	blocker := mustCreate(t, s, "Blocker", "2026-01-15", "10:00", 60)
	appt := mustCreate(t, s, "Movable", "2026-01-15", "13:00", 60)

	_, err := s.Reschedule(appt.ID, "2026-01-15", "10:30")
	require.ErrorIs(t, err, ErrConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, blocker.ID, conflictErr.Conflicts[0].ID)

	unchanged, err := store.Get(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", unchanged.Date)
	assert.Equal(t, "13:00", unchanged.Time)
}

func TestRescheduleOntoOwnSlotAllowed(t *testing.T) {
	s := New(newMemStore())
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	// Shift by 30 minutes into the record's own current interval.
	moved, err := s.Reschedule(appt.ID, "2026-01-15", "10:30")
	require.NoError(t, err, "an appointment must not conflict with itself")
	assert.Equal(t, "10:30", moved.Time)
}

func TestRescheduleNotFound(t *testing.T) {
	s := New(newMemStore())
	_, err := s.Reschedule(42, "2026-01-15", "10:00")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRescheduleInvalidFormat(t *testing.T) {
	s := New(newMemStore())
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	_, err := s.Reschedule(appt.ID, "2026/01/16", "10:00")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDayScheduleSortedAndCancelledInclusive(t *testing.T) {
	s := New(newMemStore())
	mustCreate(t, s, "Late", "2026-01-15", "15:00", 30)
	early := mustCreate(t, s, "Early", "2026-01-15", "09:00", 30)
	mustCreate(t, s, "Other day", "2026-01-16", "09:00", 30)
	require.NoError(t, s.Cancel(early.ID))

	appts, err := s.DaySchedule("2026-01-15")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "Early", appts[0].Title)
	assert.Equal(t, types.StatusCancelled, appts[0].Status, "day schedule keeps cancelled records visible")
	assert.Equal(t, "Late", appts[1].Title)
}

func TestUpcoming(t *testing.T) {
	store := newMemStore()
	s := New(store)
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC)
	}

	mustCreate(t, s, "Today", "2026-01-15", "16:00", 30)
	mustCreate(t, s, "Last day", "2026-01-22", "09:00", 30)
	mustCreate(t, s, "Too far", "2026-01-23", "09:00", 30)
	mustCreate(t, s, "Yesterday", "2026-01-14", "09:00", 30)
	cancelled := mustCreate(t, s, "Cancelled", "2026-01-16", "09:00", 30)
	require.NoError(t, s.Cancel(cancelled.ID))

	// Hand-edited storage can hold unparseable dates; they are skipped.
	store.appts = append(store.appts, types.Appointment{
		ID: 99, Title: "Broken", Date: "soon", Time: "09:00", Status: types.StatusScheduled,
	})

	appts, err := s.Upcoming(7)
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "Today", appts[0].Title)
	assert.Equal(t, "Last day", appts[1].Title)
}

func TestUpcomingSortsByDateThenTime(t *testing.T) {
	s := New(newMemStore())
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	}

	mustCreate(t, s, "B", "2026-01-16", "09:00", 30)
	mustCreate(t, s, "C", "2026-01-16", "11:00", 30)
	mustCreate(t, s, "A", "2026-01-15", "16:00", 30)

	appts, err := s.Upcoming(7)
	require.NoError(t, err)
	require.Len(t, appts, 3)
	assert.Equal(t, "A", appts[0].Title)
	assert.Equal(t, "B", appts[1].Title)
	assert.Equal(t, "C", appts[2].Title)
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	s := New(store)
	appt := mustCreate(t, s, "Meeting", "2026-01-15", "10:00", 60)

	require.NoError(t, s.Delete(appt.ID))
	_, err := store.Get(appt.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, s.Delete(appt.ID), types.ErrNotFound)
}
