package store

import (
	"context"

	"vaccination-schedule-api/internal/model"
)

// CreateDoctor returns the id the store assigned.
func (s *Store) CreateDoctor(ctx context.Context, d *model.Doctor) (int64, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRow(ctx,
		`INSERT INTO doctors (name, surname) VALUES ($1,$2) RETURNING id`,
		d.Name, d.Surname,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Store) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	d := &model.Doctor{}
	err = conn.QueryRow(ctx,
		`SELECT id, name, surname FROM doctors WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Surname)
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// FindDoctorID resolves a doctor reference by exact name and surname,
// used before writing an appointment. ErrNotFound when no doctor matches.
func (s *Store) FindDoctorID(ctx context.Context, name, surname string) (int64, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	var id int64
	err = conn.QueryRow(ctx,
		`SELECT id FROM doctors WHERE name = $1 AND surname = $2`, name, surname,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := conn.Query(ctx, `SELECT id, name, surname FROM doctors`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []model.Doctor{}
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Surname); err != nil {
			return nil, scanErr(err)
		}
		out = append(out, d)
	}
	return out, mapError(rows.Err())
}

func (s *Store) UpdateDoctor(ctx context.Context, id int64, d *model.Doctor) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx,
		`UPDATE doctors SET name=$2, surname=$3 WHERE id=$1`,
		id, d.Name, d.Surname,
	)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id int64) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}
