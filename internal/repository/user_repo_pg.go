package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) error
	GetPasswordHash(ctx context.Context, username string) (string, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (username, password_hash) VALUES ($1, $2)`, username, passwordHash)
	return mapError(err)
}

func (r *PGUserRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	if err := r.db.QueryRow(ctx, `SELECT password_hash FROM users WHERE username=$1`, username).Scan(&hash); err != nil {
		return "", mapError(err)
	}
	return hash, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
