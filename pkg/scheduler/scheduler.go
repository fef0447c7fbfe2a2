// Package scheduler enforces the scheduling business rules on top of a
// types.Store: format validation, interval-overlap conflict detection,
// free-slot enumeration, and the reschedule/cancel workflow. The
// scheduler holds no state between calls; the store is the sole source
// of truth and is re-read on every operation.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mesh-intelligence/apptbook/pkg/types"
)

// Business-rule errors. ErrConflict is carried by a ConflictError that
// also lists the conflicting appointments.
var (
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidFormat = errors.New("invalid date or time format")
	ErrConflict      = errors.New("appointment conflicts with existing slots")
)

// Conflict identifies an existing appointment that overlaps a requested
// interval. The field names match the result shape consumed by
// presentation layers.
type Conflict struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration"`
}

// ConflictError reports the appointments that block a requested slot.
// It unwraps to ErrConflict so callers can match with errors.Is.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting appointment(s)", ErrConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Scheduler applies scheduling rules against a record store.
type Scheduler struct {
	store types.Store

	// now supplies the wall clock for Upcoming; overridable in tests.
	now func() time.Time
}

// New returns a Scheduler backed by the given store.
func New(store types.Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

// CreateRequest carries the caller-supplied fields for a new
// appointment. DurationMinutes of zero or less falls back to 60.
type CreateRequest struct {
	Title           string
	Date            string
	Time            string
	DurationMinutes int
	ClientName      string
	Description     string
}

// Create validates the request, rejects overlapping bookings, and
// persists a new scheduled appointment. Validation failures never touch
// the store. Returns the created appointment with its assigned ID, a
// ConflictError listing blockers, ErrEmptyTitle, or ErrInvalidFormat.
func (s *Scheduler) Create(req CreateRequest) (*types.Appointment, error) {
	if req.Title == "" {
		return nil, ErrEmptyTitle
	}
	if !types.ValidDate(req.Date) || !types.ValidClock(req.Time) {
		return nil, ErrInvalidFormat
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = types.DefaultDurationMinutes
	}

	conflicts, err := s.Conflicts(req.Date, req.Time, duration, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	appt := &types.Appointment{
		Title:           req.Title,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: duration,
		ClientName:      req.ClientName,
		Description:     req.Description,
		Status:          types.StatusScheduled,
	}
	if err := s.store.Save(appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// Conflicts returns the non-cancelled appointments on date whose
// [start, start+duration) interval overlaps the requested one.
// Touching endpoints do not conflict. excludeID skips one appointment,
// letting a reschedule ignore the record's own current slot; zero
// excludes nothing. Stored records with unparseable times are skipped.
func (s *Scheduler) Conflicts(date, clock string, duration, excludeID int) ([]Conflict, error) {
	start, err := types.MinuteOfDay(clock)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	end := start + duration

	appts, err := s.store.ByDate(date)
	if err != nil {
		return nil, fmt.Errorf("load appointments for %s: %w", date, err)
	}

	var conflicts []Conflict
	for _, appt := range appts {
		if appt.Cancelled() || appt.ID == excludeID {
			continue
		}
		apptStart, err := appt.StartMinute()
		if err != nil {
			continue
		}
		apptEnd := apptStart + appt.DurationMinutes
		if start < apptEnd && end > apptStart {
			conflicts = append(conflicts, Conflict{
				ID:              appt.ID,
				Title:           appt.Title,
				Time:            appt.Time,
				DurationMinutes: appt.DurationMinutes,
			})
		}
	}
	return conflicts, nil
}

// AvailableSlots enumerates conflict-free start times on date for a
// booking of the given duration. Candidates run from startHour:00
// inclusive up to but excluding endHour:00 at intervalMinutes
// granularity, ascending. Returns ErrInvalidFormat for an unparseable
// date rather than an empty list, so "bad input" and "fully booked"
// stay distinguishable.
func (s *Scheduler) AvailableSlots(date string, duration, startHour, endHour, intervalMinutes int) ([]string, error) {
	if !types.ValidDate(date) {
		return nil, ErrInvalidFormat
	}
	if duration <= 0 {
		duration = types.DefaultDurationMinutes
	}
	if intervalMinutes <= 0 {
		intervalMinutes = types.DefaultSlotInterval
	}

	var slots []string
	for minute := startHour * 60; minute < endHour*60; minute += intervalMinutes {
		clock := fmt.Sprintf("%02d:%02d", minute/60, minute%60)
		conflicts, err := s.Conflicts(date, clock, duration, 0)
		if err != nil {
			return nil, err
		}
		if len(conflicts) == 0 {
			slots = append(slots, clock)
		}
	}
	return slots, nil
}

// Reschedule moves an existing appointment to a new date and time,
// keeping its stored duration. The appointment's own current slot is
// excluded from the conflict check, so moving within or adjacent to its
// old interval is permitted. Returns the updated appointment,
// types.ErrNotFound, ErrInvalidFormat, or a ConflictError.
func (s *Scheduler) Reschedule(id int, newDate, newTime string) (*types.Appointment, error) {
	appt, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !types.ValidDate(newDate) || !types.ValidClock(newTime) {
		return nil, ErrInvalidFormat
	}

	conflicts, err := s.Conflicts(newDate, newTime, appt.DurationMinutes, id)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	patch := types.AppointmentPatch{
		Date: types.String(newDate),
		Time: types.String(newTime),
	}
	if err := s.store.Update(id, patch); err != nil {
		return nil, fmt.Errorf("update appointment %d: %w", id, err)
	}
	return s.store.Get(id)
}

// Cancel marks an appointment cancelled. The record stays in storage
// but stops occupying its slot. Returns types.ErrNotFound if no record
// matches.
func (s *Scheduler) Cancel(id int) error {
	patch := types.AppointmentPatch{Status: types.String(types.StatusCancelled)}
	if err := s.store.Update(id, patch); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update appointment %d: %w", id, err)
	}
	return nil
}

// Delete removes an appointment record entirely. Unlike Cancel it
// leaves no trace; the identifier is still never reused. Returns
// types.ErrNotFound if no record matches.
func (s *Scheduler) Delete(id int) error {
	return s.store.Delete(id)
}

// DaySchedule returns every appointment on date, cancelled ones
// included, sorted ascending by start time. Filtering cancelled
// records is the caller's choice.
func (s *Scheduler) DaySchedule(date string) ([]types.Appointment, error) {
	appts, err := s.store.ByDate(date)
	if err != nil {
		return nil, fmt.Errorf("load appointments for %s: %w", date, err)
	}
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Time < appts[j].Time
	})
	return appts, nil
}

// Upcoming returns the non-cancelled appointments dated between today
// and today+daysAhead inclusive, sorted by date then time. Records
// whose date does not parse are skipped; the engine never persists
// such records, so only hand-edited storage can contain them.
func (s *Scheduler) Upcoming(daysAhead int) ([]types.Appointment, error) {
	appts, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	year, month, day := s.now().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	var upcoming []types.Appointment
	for _, appt := range appts {
		if appt.Cancelled() {
			continue
		}
		date, err := time.Parse(types.DateLayout, appt.Date)
		if err != nil {
			continue
		}
		days := int(date.Sub(today).Hours() / 24)
		if days >= 0 && days <= daysAhead {
			upcoming = append(upcoming, appt)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})
	return upcoming, nil
}
