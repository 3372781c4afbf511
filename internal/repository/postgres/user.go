package postgres

import (
	"context"
	"fmt"

	"commerce-service/internal/domain/user"
	apperrors "commerce-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, full_name, email, password_hash, role, created_at, updated_at
	`

	u := &user.User{}
	err := r.db.Pool.QueryRow(ctx, query, input.FullName, input.Email, input.Password, input.Role).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf(errFailedCreateUserFmt, err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) (*user.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($2, full_name),
		    password_hash = COALESCE($3, password_hash),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, email, password_hash, role, created_at, updated_at
	`

	return r.scanOne(r.db.Pool.QueryRow(ctx, query, id, input.FullName, input.PasswordHash))
}

func (r *UserRepository) scanOne(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, fmt.Errorf(errFailedGetUserFmt, err)
	}

	return u, nil
}
