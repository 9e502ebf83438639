package store

import (
	"context"

	"vaccination-schedule-api/internal/model"
)

func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer done()

	_, err = conn.Exec(ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES ($1,$2,$3)`,
		a.ID, a.Email, a.PasswordHash,
	)
	return mapError(err)
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	ctx, conn, done, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	a := &model.Account{}
	err = conn.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}
