package model

import (
	"errors"
	"time"
)

// Appointment status values. Stored as plain text, these are the ones the
// clients are expected to send.
const (
	StatusScheduled = "Scheduled"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

// TimeLayout is the wire and storage format for time-of-day fields.
const TimeLayout = "15:04"

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

var (
	ErrMissingField = errors.New("required field missing")
	ErrInvalidField = errors.New("field value invalid")
)

// Account is a login credential row. Its ID is the opaque user identifier
// everything else keys on; the profile in Users is a separate row.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// User is a vaccination-schedule profile. UserID is assigned externally
// (by the auth flow) and never changes. FirstName, LastName and Sex are
// optional.
type User struct {
	UserID      string
	FirstName   *string
	LastName    *string
	DateOfBirth time.Time
	Sex         *string
}

func (u *User) Validate() error {
	if u.UserID == "" {
		return errors.Join(ErrMissingField, errors.New("user_id"))
	}
	if u.DateOfBirth.IsZero() {
		return errors.Join(ErrMissingField, errors.New("date_of_birth"))
	}
	return nil
}

// Doctor's ID is zero until the store assigns one on insert.
type Doctor struct {
	ID      int64
	Name    string
	Surname string
}

func (d *Doctor) Validate() error {
	if d.Name == "" {
		return errors.Join(ErrMissingField, errors.New("name"))
	}
	if d.Surname == "" {
		return errors.Join(ErrMissingField, errors.New("surname"))
	}
	return nil
}

// Vaccination is one administered vaccine record. NextDoseDate is nil when
// no follow-up dose is planned.
type Vaccination struct {
	ID               int64
	VaccineName      string
	DateAdministered time.Time
	DueDate          time.Time
	NextDoseDate     *time.Time
}

func (v *Vaccination) Validate() error {
	if v.VaccineName == "" {
		return errors.Join(ErrMissingField, errors.New("vaccine_name"))
	}
	if v.DateAdministered.IsZero() {
		return errors.Join(ErrMissingField, errors.New("date_administered"))
	}
	if v.DueDate.IsZero() {
		return errors.Join(ErrMissingField, errors.New("due_date"))
	}
	if v.DueDate.Before(v.DateAdministered) {
		return errors.Join(ErrInvalidField, errors.New("due_date before date_administered"))
	}
	return nil
}

// Appointment ties a user, a vaccine and an optional doctor to a scheduled
// date and time. DoctorID is nil when no doctor was assigned.
// IntervalDays is the gap to the next dose, 0 when unknown.
type Appointment struct {
	ID            int64
	VaccineID     int64
	UserID        string
	DoctorID      *int64
	ScheduledDate time.Time
	ScheduledTime string // HH:MM
	Status        string
	Dose          int
	IntervalDays  int
}

func (a *Appointment) Validate() error {
	if a.VaccineID == 0 {
		return errors.Join(ErrMissingField, errors.New("vaccine_id"))
	}
	if a.UserID == "" {
		return errors.Join(ErrMissingField, errors.New("user_id"))
	}
	if a.ScheduledDate.IsZero() {
		return errors.Join(ErrMissingField, errors.New("scheduled_date"))
	}
	if a.ScheduledTime == "" {
		return errors.Join(ErrMissingField, errors.New("scheduled_time"))
	}
	if _, err := time.Parse(TimeLayout, a.ScheduledTime); err != nil {
		return errors.Join(ErrInvalidField, errors.New("scheduled_time must be HH:MM"))
	}
	if a.Status == "" {
		return errors.Join(ErrMissingField, errors.New("status"))
	}
	if a.Dose <= 0 {
		return errors.Join(ErrInvalidField, errors.New("dose must be positive"))
	}
	if a.IntervalDays < 0 {
		return errors.Join(ErrInvalidField, errors.New("interval_days must not be negative"))
	}
	return nil
}
