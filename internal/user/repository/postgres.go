package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/user"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (
            id, email, password_hash, name, role, token_version, refresh_token,
            created_at, updated_at
        )
        VALUES (
            :id, :email, :password_hash, :name, :role, :token_version, :refresh_token,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) StoreRefreshToken(ctx context.Context, userID string, digest *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET refresh_token = $1, updated_at = $2 WHERE id = $3`,
		digest, time.Now(), userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *PGRepository) BumpTokenVersion(ctx context.Context, userID string) (int, error) {
	var version int
	err := r.DB.GetContext(ctx, &version, `
        UPDATE users
        SET token_version = token_version + 1,
            refresh_token = NULL,
            updated_at = now()
        WHERE id = $1
        RETURNING token_version
    `, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, user.ErrUserNotFound
		}
		return 0, err
	}
	return version, nil
}
