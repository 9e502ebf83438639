package store

import (
	"context"

	"vaccination-schedule-api/internal/model"
)

const appointmentCols = `id, vaccine_id, user_id, doctor_id, scheduled_date,
	to_char(scheduled_time, 'HH24:MI'), status, dose, interval_days`

// CreateAppointment returns the id the store assigned.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) (int64, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRow(ctx,
		`INSERT INTO schedules
		   (vaccine_id, user_id, doctor_id, scheduled_date, scheduled_time, status, dose, interval_days)
		 VALUES ($1,$2,$3,$4,$5::time,$6,$7,$8)
		 RETURNING id`,
		a.VaccineID, a.UserID, a.DoctorID, a.ScheduledDate, a.ScheduledTime,
		a.Status, a.Dose, a.IntervalDays,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	a := &model.Appointment{}
	err = conn.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM schedules WHERE id = $1`, id,
	).Scan(&a.ID, &a.VaccineID, &a.UserID, &a.DoctorID, &a.ScheduledDate,
		&a.ScheduledTime, &a.Status, &a.Dose, &a.IntervalDays)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := conn.Query(ctx, `SELECT `+appointmentCols+` FROM schedules`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListAppointmentsForUser returns the user's schedule, newest date first.
// Empty slice, not nil, when the user has no entries.
func (s *Store) ListAppointmentsForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := conn.Query(ctx,
		`SELECT `+appointmentCols+`
		 FROM schedules
		 WHERE user_id = $1
		 ORDER BY scheduled_date DESC, scheduled_time DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// UpdateAppointment replaces every mutable column. The false return means
// no row had that id.
func (s *Store) UpdateAppointment(ctx context.Context, id int64, a *model.Appointment) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx,
		`UPDATE schedules
		 SET vaccine_id=$2, user_id=$3, doctor_id=$4, scheduled_date=$5,
		     scheduled_time=$6::time, status=$7, dose=$8, interval_days=$9
		 WHERE id=$1`,
		id, a.VaccineID, a.UserID, a.DoctorID, a.ScheduledDate,
		a.ScheduledTime, a.Status, a.Dose, a.IntervalDays,
	)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectAppointments(rows pgRows) ([]model.Appointment, error) {
	out := []model.Appointment{}
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.VaccineID, &a.UserID, &a.DoctorID, &a.ScheduledDate,
			&a.ScheduledTime, &a.Status, &a.Dose, &a.IntervalDays); err != nil {
			return nil, scanErr(err)
		}
		out = append(out, a)
	}
	return out, mapError(rows.Err())
}
