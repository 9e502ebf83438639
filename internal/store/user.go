package store

import (
	"context"

	"vaccination-schedule-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer done()

	_, err = conn.Exec(ctx,
		`INSERT INTO users (user_id, first_name, last_name, date_of_birth, sex)
		 VALUES ($1,$2,$3,$4,$5)`,
		u.UserID, u.FirstName, u.LastName, u.DateOfBirth, u.Sex,
	)
	return mapError(err)
}

func (s *Store) GetUser(ctx context.Context, userID string) (*model.User, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	u := &model.User{}
	err = conn.QueryRow(ctx,
		`SELECT user_id, first_name, last_name, date_of_birth, sex
		 FROM users WHERE user_id = $1`, userID,
	).Scan(&u.UserID, &u.FirstName, &u.LastName, &u.DateOfBirth, &u.Sex)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// ListUsers returns an empty slice, not nil, when the table is empty.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	rows, err := conn.Query(ctx,
		`SELECT user_id, first_name, last_name, date_of_birth, sex FROM users`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserID, &u.FirstName, &u.LastName, &u.DateOfBirth, &u.Sex); err != nil {
			return nil, scanErr(err)
		}
		out = append(out, u)
	}
	return out, mapError(rows.Err())
}

// UpdateUser overwrites the whole row. The false return means no row had
// that id.
func (s *Store) UpdateUser(ctx context.Context, userID string, u *model.User) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx,
		`UPDATE users SET first_name=$2, last_name=$3, date_of_birth=$4, sex=$5
		 WHERE user_id=$1`,
		userID, u.FirstName, u.LastName, u.DateOfBirth, u.Sex,
	)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteUser(ctx context.Context, userID string) (bool, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return false, err
	}
	defer done()

	tag, err := conn.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return false, mapError(err)
	}
	return tag.RowsAffected() > 0, nil
}
