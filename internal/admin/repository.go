package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("admin not found")

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id string) (*Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (*Admin, error) {
	query := `
		INSERT INTO admins (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, created_at
	`

	var a Admin
	err := r.db.GetContext(ctx, &a, query, uuid.New().String(), name, email, passwordHash)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM admins WHERE email = $1`

	var a Admin
	err := r.db.GetContext(ctx, &a, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Admin, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM admins WHERE id = $1`

	var a Admin
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE admins SET password_hash = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`)
	if err != nil {
		return 0, err
	}
	return count, nil
}
