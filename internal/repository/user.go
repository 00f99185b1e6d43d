package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siddharth180703/NextHire/pkg/model"
)

const userColumns = `user_id, fullname, email, phone_number, password_hash, role, profile, created_at, updated_at`

// CreateUser inserts a user and fills in its id and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	phone, err := r.crypto.Encrypt(user.PhoneNumber)
	if err != nil {
		return fmt.Errorf("encrypt phone: %w", err)
	}

	const q = `
INSERT INTO users (fullname, email, phone_number, password_hash, role, profile)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING user_id, created_at, updated_at
`
	row := r.db.QueryRow(ctx, q, user.Fullname, user.Email, phone, user.PasswordHash, user.Role, user.Profile)
	if err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return classify("insert user", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, q, email), "get user by email")
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.scanUser(r.db.QueryRow(ctx, q, userID), "get user by id")
}

// UpdateUser overwrites the mutable profile fields.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	phone, err := r.crypto.Encrypt(user.PhoneNumber)
	if err != nil {
		return fmt.Errorf("encrypt phone: %w", err)
	}

	const q = `
UPDATE users
SET fullname = $1, email = $2, phone_number = $3, profile = $4, updated_at = now()
WHERE user_id = $5
RETURNING updated_at
`
	row := r.db.QueryRow(ctx, q, user.Fullname, user.Email, phone, user.Profile, user.UserID)
	if err := row.Scan(&user.UpdatedAt); err != nil {
		return classify("update user", err)
	}
	return nil
}

func (r *Repository) scanUser(row pgx.Row, op string) (*model.User, error) {
	var u model.User
	var phone string
	err := row.Scan(&u.UserID, &u.Fullname, &u.Email, &phone, &u.PasswordHash, &u.Role, &u.Profile, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, classify(op, err)
	}
	if u.PhoneNumber, err = r.crypto.Decrypt(phone); err != nil {
		return nil, fmt.Errorf("%s: decrypt phone: %w", op, err)
	}
	return &u, nil
}
