package store

import (
	"context"

	"vaccination-schedule-api/internal/model"
)

// CreateVaccination returns the id the store assigned.
func (s *Store) CreateVaccination(ctx context.Context, v *model.Vaccination) (int64, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRow(ctx,
		`INSERT INTO vaccinations (vaccine_name, date_administered, due_date, next_dose_date)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		v.VaccineName, v.DateAdministered, v.DueDate, v.NextDoseDate,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Store) GetVaccination(ctx context.Context, id int64) (*model.Vaccination, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	v := &model.Vaccination{}
	err = conn.QueryRow(ctx,
		`SELECT id, vaccine_name, date_administered, due_date, next_dose_date
		 FROM vaccinations WHERE id = $1`, id,
	).Scan(&v.ID, &v.VaccineName, &v.DateAdministered, &v.DueDate, &v.NextDoseDate)
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (s *Store) GetVaccinationByName(ctx context.Context, name string) (*model.Vaccination, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	v := &model.Vaccination{}
	err = conn.QueryRow(ctx,
		`SELECT id, vaccine_name, date_administered, due_date, next_dose_date
		 FROM vaccinations WHERE vaccine_name = $1`, name,
	).Scan(&v.ID, &v.VaccineName, &v.DateAdministered, &v.DueDate, &v.NextDoseDate)
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

// FindVaccinationID reports ErrNotFound for an unknown name; there is no
// zero-as-missing sentinel.
func (s *Store) FindVaccinationID(ctx context.Context, name string) (int64, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRow(ctx,
		`SELECT id FROM vaccinations WHERE vaccine_name = $1`, name,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Store) ListVaccinations(ctx context.Context) ([]model.Vaccination, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := conn.Query(ctx,
		`SELECT id, vaccine_name, date_administered, due_date, next_dose_date FROM vaccinations`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []model.Vaccination{}
	for rows.Next() {
		var v model.Vaccination
		if err := rows.Scan(&v.ID, &v.VaccineName, &v.DateAdministered, &v.DueDate, &v.NextDoseDate); err != nil {
			return nil, scanErr(err)
		}
		out = append(out, v)
	}
	return out, mapError(rows.Err())
}

func (s *Store) UpdateVaccination(ctx context.Context, id int64, v *model.Vaccination) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx,
		`UPDATE vaccinations
		 SET vaccine_name=$2, date_administered=$3, due_date=$4, next_dose_date=$5
		 WHERE id=$1`,
		id, v.VaccineName, v.DateAdministered, v.DueDate, v.NextDoseDate,
	)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteVaccination(ctx context.Context, id int64) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountDoses is the number of administered doses recorded for a vaccine,
// i.e. completed schedule entries. Computed server-side.
func (s *Store) CountDoses(ctx context.Context, vaccineName string) (int, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var n int
	err = conn.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM schedules s
		 JOIN vaccinations v ON v.id = s.vaccine_id
		 WHERE v.vaccine_name = $1 AND s.status = $2`,
		vaccineName, model.StatusCompleted,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// CountAppointments is the total number of schedule entries, in any status,
// for a vaccine.
func (s *Store) CountAppointments(ctx context.Context, vaccineName string) (int, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var n int
	err = conn.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM schedules s
		 JOIN vaccinations v ON v.id = s.vaccine_id
		 WHERE v.vaccine_name = $1`,
		vaccineName,
	).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
