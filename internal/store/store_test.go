package store_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"vaccination-schedule-api/internal/logger"
	"vaccination-schedule-api/internal/model"
	"vaccination-schedule-api/internal/store"
)

func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)

	if migration, err := os.ReadFile("../../db/migrations/001_init.sql"); err == nil {
		_, _ = pool.Exec(context.Background(), string(migration))
	}
	return store.New(pool, logger.Nop(), 5*time.Second)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func newUser(t *testing.T, s *store.Store) *model.User {
	t.Helper()
	u := &model.User{
		UserID:      uuid.New().String(),
		FirstName:   strPtr("Ada"),
		LastName:    strPtr("Lovelace"),
		DateOfBirth: day(1990, time.May, 1),
		Sex:         strPtr("F"),
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func newVaccination(t *testing.T, s *store.Store) *model.Vaccination {
	t.Helper()
	v := &model.Vaccination{
		VaccineName:      fmt.Sprintf("vaccine-%s", uuid.New().String()[:8]),
		DateAdministered: day(2024, time.March, 1),
		DueDate:          day(2024, time.April, 1),
	}
	id, err := s.CreateVaccination(context.Background(), v)
	if err != nil {
		t.Fatalf("create vaccination: %v", err)
	}
	v.ID = id
	return v
}

func TestUserRoundtrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)

	got, err := s.GetUser(ctx, u.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != u.UserID || *got.FirstName != "Ada" || *got.LastName != "Lovelace" || *got.Sex != "F" {
		t.Errorf("got %+v, want %+v", got, u)
	}
	if !got.DateOfBirth.Equal(u.DateOfBirth) {
		t.Errorf("dob = %v, want %v", got.DateOfBirth, u.DateOfBirth)
	}
}

func TestUserDuplicateInsert(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)

	dup := *u
	dup.FirstName = strPtr("Imposter")
	if err := s.CreateUser(ctx, &dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("second insert: got %v, want ErrDuplicate", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	count := 0
	for _, x := range users {
		if x.UserID == u.UserID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d rows for id, want 1", count)
	}
}

func TestUserUpdateOverwrites(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)

	updated := &model.User{
		UserID:      u.UserID,
		FirstName:   strPtr("Grace"),
		LastName:    nil, // full overwrite clears it
		DateOfBirth: day(1985, time.December, 9),
		Sex:         nil,
	}
	ok, err := s.UpdateUser(ctx, u.UserID, updated)
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}

	got, err := s.GetUser(ctx, u.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got.FirstName != "Grace" || got.LastName != nil || got.Sex != nil {
		t.Errorf("overwrite incomplete: %+v", got)
	}
	if !got.DateOfBirth.Equal(updated.DateOfBirth) {
		t.Errorf("dob = %v, want %v", got.DateOfBirth, updated.DateOfBirth)
	}
}

func TestUserDelete(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)

	ok, err := s.DeleteUser(ctx, u.UserID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, err := s.GetUser(ctx, u.UserID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get after delete: got %v, want ErrNotFound", err)
	}
	// idempotent second delete reports false, not an error
	ok, err = s.DeleteUser(ctx, u.UserID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if ok {
		t.Error("second delete reported a row")
	}
}

func TestListAppointmentsForUserEmpty(t *testing.T) {
	s := setup(t)

	appts, err := s.ListAppointmentsForUser(context.Background(), uuid.New().String())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if appts == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(appts) != 0 {
		t.Errorf("got %d rows for unknown user", len(appts))
	}
}

func TestAppointmentRoundtrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)
	v := newVaccination(t, s)

	a := &model.Appointment{
		VaccineID:     v.ID,
		UserID:        u.UserID,
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        model.StatusOngoing,
		Dose:          1,
		IntervalDays:  30,
	}
	id, err := s.CreateAppointment(ctx, a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	appts, err := s.ListAppointmentsForUser(ctx, u.UserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 1 {
		t.Fatalf("got %d appointments, want 1", len(appts))
	}
	got := appts[0]
	if got.ID != id || got.VaccineID != v.ID || got.UserID != u.UserID ||
		got.ScheduledTime != "09:00" || got.Status != model.StatusOngoing ||
		got.Dose != 1 || got.IntervalDays != 30 {
		t.Errorf("mismatch: %+v", got)
	}
	if got.DoctorID != nil {
		t.Errorf("doctor id = %v, want nil", *got.DoctorID)
	}
	if !got.ScheduledDate.Equal(a.ScheduledDate) {
		t.Errorf("date = %v, want %v", got.ScheduledDate, a.ScheduledDate)
	}
}

func TestAppointmentUpdateReplacesAllFields(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)
	v := newVaccination(t, s)

	a := &model.Appointment{
		VaccineID:     v.ID,
		UserID:        u.UserID,
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        model.StatusScheduled,
		Dose:          1,
	}
	id, err := s.CreateAppointment(ctx, a)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a.ScheduledDate = day(2024, time.May, 6)
	a.ScheduledTime = "14:30"
	a.Status = model.StatusCompleted
	a.Dose = 2
	a.IntervalDays = 60
	ok, err := s.UpdateAppointment(ctx, id, a)
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}

	got, err := s.GetAppointment(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ScheduledTime != "14:30" || got.Status != model.StatusCompleted ||
		got.Dose != 2 || got.IntervalDays != 60 || !got.ScheduledDate.Equal(a.ScheduledDate) {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestAppointmentForeignKey(t *testing.T) {
	s := setup(t)
	u := newUser(t, s)

	a := &model.Appointment{
		VaccineID:     999999999,
		UserID:        u.UserID,
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        model.StatusScheduled,
		Dose:          1,
	}
	if _, err := s.CreateAppointment(context.Background(), a); !errors.Is(err, store.ErrForeignKey) {
		t.Errorf("got %v, want ErrForeignKey", err)
	}
}

func TestVaccinationLookupsAndCounts(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)
	v := newVaccination(t, s)

	id, err := s.FindVaccinationID(ctx, v.VaccineName)
	if err != nil {
		t.Fatalf("find id: %v", err)
	}
	if id != v.ID {
		t.Errorf("id = %d, want %d", id, v.ID)
	}

	if _, err := s.FindVaccinationID(ctx, "no-such-vaccine-"+uuid.New().String()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown name: got %v, want ErrNotFound", err)
	}

	// one completed dose and one upcoming appointment
	for _, status := range []string{model.StatusCompleted, model.StatusScheduled} {
		a := &model.Appointment{
			VaccineID:     v.ID,
			UserID:        u.UserID,
			ScheduledDate: day(2024, time.April, 5),
			ScheduledTime: "09:00",
			Status:        status,
			Dose:          1,
		}
		if _, err := s.CreateAppointment(ctx, a); err != nil {
			t.Fatalf("create appointment: %v", err)
		}
	}

	doses, err := s.CountDoses(ctx, v.VaccineName)
	if err != nil {
		t.Fatalf("count doses: %v", err)
	}
	if doses != 1 {
		t.Errorf("doses = %d, want 1", doses)
	}
	appointments, err := s.CountAppointments(ctx, v.VaccineName)
	if err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	if appointments != 2 {
		t.Errorf("appointments = %d, want 2", appointments)
	}
}

func TestDoctorLookup(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	surname := "surname-" + uuid.New().String()[:8]
	id, err := s.CreateDoctor(ctx, &model.Doctor{Name: "John", Surname: surname})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}

	got, err := s.FindDoctorID(ctx, "John", surname)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != id {
		t.Errorf("id = %d, want %d", got, id)
	}

	if _, err := s.FindDoctorID(ctx, "Nobody", surname); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown doctor: got %v, want ErrNotFound", err)
	}
}

func TestDeleteUserBlockedBySchedules(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	u := newUser(t, s)
	v := newVaccination(t, s)

	a := &model.Appointment{
		VaccineID:     v.ID,
		UserID:        u.UserID,
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        model.StatusScheduled,
		Dose:          1,
	}
	if _, err := s.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	// schedules still reference the user, so the delete is refused
	if _, err := s.DeleteUser(ctx, u.UserID); !errors.Is(err, store.ErrForeignKey) {
		t.Errorf("delete user with schedules: got %v, want ErrForeignKey", err)
	}

	appts, err := s.ListAppointmentsForUser(ctx, u.UserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 1 {
		t.Errorf("schedules = %d, want 1", len(appts))
	}
}

func TestListAppointments(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	appts, err := s.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if appts == nil {
		t.Fatal("list returned nil, want a slice")
	}

	u := newUser(t, s)
	v := newVaccination(t, s)
	a := &model.Appointment{
		VaccineID:     v.ID,
		UserID:        u.UserID,
		ScheduledDate: day(2024, time.April, 5),
		ScheduledTime: "09:00",
		Status:        model.StatusScheduled,
		Dose:          1,
		IntervalDays:  30,
	}
	id, err := s.CreateAppointment(ctx, a)
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	appts, err = s.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for i := range appts {
		if appts[i].ID == id {
			found = true
			if appts[i].UserID != u.UserID || appts[i].ScheduledTime != "09:00" {
				t.Errorf("listed row mismatch: %+v", appts[i])
			}
		}
	}
	if !found {
		t.Errorf("created appointment %d missing from the full list", id)
	}
}

func TestAcquireFailureIsConnectionError(t *testing.T) {
	// nothing listens on port 1, so every acquire fails
	pool, err := pgxpool.New(context.Background(), "postgres://postgres@127.0.0.1:1/none?connect_timeout=1")
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)

	s := store.New(pool, logger.Nop(), time.Second)
	if _, err := s.GetUser(context.Background(), "nobody"); !errors.Is(err, store.ErrConnection) {
		t.Errorf("got %v, want ErrConnection", err)
	}
}
