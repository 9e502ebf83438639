package model

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{"valid", User{UserID: "abc", DateOfBirth: day(1990, time.May, 1)}, nil},
		{"optional fields set", User{UserID: "abc", FirstName: strPtr("A"), DateOfBirth: day(1990, time.May, 1), Sex: strPtr("F")}, nil},
		{"missing user id", User{DateOfBirth: day(1990, time.May, 1)}, ErrMissingField},
		{"missing date of birth", User{UserID: "abc"}, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVaccinationValidate(t *testing.T) {
	administered := day(2024, time.March, 1)
	due := day(2024, time.April, 1)

	tests := []struct {
		name    string
		v       Vaccination
		wantErr error
	}{
		{"valid", Vaccination{VaccineName: "MMR", DateAdministered: administered, DueDate: due}, nil},
		{"same day administered and due", Vaccination{VaccineName: "MMR", DateAdministered: administered, DueDate: administered}, nil},
		{"missing name", Vaccination{DateAdministered: administered, DueDate: due}, ErrMissingField},
		{"due before administered", Vaccination{VaccineName: "MMR", DateAdministered: due, DueDate: administered}, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppointmentValidate(t *testing.T) {
	valid := Appointment{
		VaccineID:     101,
		UserID:        "abc",
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        StatusOngoing,
		Dose:          1,
		IntervalDays:  30,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid appointment rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(a *Appointment)
		wantErr error
	}{
		{"missing vaccine", func(a *Appointment) { a.VaccineID = 0 }, ErrMissingField},
		{"missing user", func(a *Appointment) { a.UserID = "" }, ErrMissingField},
		{"missing time", func(a *Appointment) { a.ScheduledTime = "" }, ErrMissingField},
		{"bad time format", func(a *Appointment) { a.ScheduledTime = "9 o'clock" }, ErrInvalidField},
		{"missing status", func(a *Appointment) { a.Status = "" }, ErrMissingField},
		{"zero dose", func(a *Appointment) { a.Dose = 0 }, ErrInvalidField},
		{"negative interval", func(a *Appointment) { a.IntervalDays = -1 }, ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if err := a.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}

	// doctor is optional
	a := valid
	a.DoctorID = nil
	if err := a.Validate(); err != nil {
		t.Errorf("nil doctor rejected: %v", err)
	}
}
