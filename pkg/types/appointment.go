package types

import "time"

// Appointment statuses. A scheduled appointment can only transition to
// cancelled; there is no un-cancel operation.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// Date and clock layouts used throughout the system.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Appointment represents a single time-bounded booking. The JSON field
// names are the durable storage format and must not change.
type Appointment struct {
	ID              int       `json:"id"`                  // Assigned by the store on first save.
	Title           string    `json:"title"`               // Human-readable title (required, non-empty).
	Date            string    `json:"date"`                // Calendar date, YYYY-MM-DD.
	Time            string    `json:"time"`                // Start-of-day clock time, HH:MM (24-hour).
	DurationMinutes int       `json:"duration_minutes"`    // Length of the booking, positive.
	ClientName      string    `json:"client_name"`         // Optional client name.
	Description     string    `json:"description"`         // Optional free-form description.
	Status          string    `json:"status"`              // One of the Status constants.
	CreatedAt       time.Time `json:"created_at"`          // Stamped by the store on first save.
	UpdatedAt       time.Time `json:"updated_at,omitzero"` // Stamped by the store on update.
}

// Cancel marks the appointment as cancelled and stamps UpdatedAt.
// Cancelling is one-way and idempotent. Cancelled appointments stay in
// storage but no longer occupy their time slot.
func (a *Appointment) Cancel() {
	a.Status = StatusCancelled
	a.UpdatedAt = time.Now()
}

// Cancelled reports whether the appointment has been cancelled.
func (a *Appointment) Cancelled() bool {
	return a.Status == StatusCancelled
}

// StartMinute returns the appointment's start as minutes after midnight.
// Returns an error if the Time field does not parse as HH:MM.
func (a *Appointment) StartMinute() (int, error) {
	return MinuteOfDay(a.Time)
}

// EndMinute returns the appointment's end as minutes after midnight,
// treating the occupied interval as half-open: [start, start+duration).
func (a *Appointment) EndMinute() (int, error) {
	start, err := a.StartMinute()
	if err != nil {
		return 0, err
	}
	return start + a.DurationMinutes, nil
}

// MinuteOfDay parses an HH:MM clock string and returns minutes after
// midnight.
func MinuteOfDay(clock string) (int, error) {
	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidDate reports whether s parses as a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidClock reports whether s parses as an HH:MM 24-hour clock time.
func ValidClock(s string) bool {
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// AppointmentPatch describes a partial update to a stored appointment.
// Nil fields are left untouched by Apply.
type AppointmentPatch struct {
	Title           *string
	Date            *string
	Time            *string
	DurationMinutes *int
	ClientName      *string
	Description     *string
	Status          *string
}

// Apply merges the non-nil patch fields into the appointment. The
// UpdatedAt stamp is the store's responsibility, not Apply's.
func (p AppointmentPatch) Apply(a *Appointment) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.DurationMinutes != nil {
		a.DurationMinutes = *p.DurationMinutes
	}
	if p.ClientName != nil {
		a.ClientName = *p.ClientName
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

// String returns a pointer to s for building patches inline.
func String(s string) *string { return &s }

// Int returns a pointer to v for building patches inline.
func Int(v int) *int { return &v }
