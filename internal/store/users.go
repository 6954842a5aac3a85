package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/stow/internal/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns every user ordered by email.
func (s *Store) ListUsers(ctx context.Context) ([]inventory.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, full_name, is_active, is_superuser, account_id, created_at, updated_at
		FROM users
		ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	defer rows.Close()

	users := []inventory.User{}
	for rows.Next() {
		var u inventory.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.IsSuperuser, &u.AccountID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return users, nil
}

// CreateUser inserts a new user with a bcrypt-hashed password. Emails are
// stored lowercased so the unique index enforces case-insensitive identity.
func (s *Store) CreateUser(ctx context.Context, params inventory.UserParams) (inventory.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return inventory.User{}, errors.New("store: create user: email is required")
	}
	if len(params.Password) < 8 {
		return inventory.User{}, errors.New("store: create user: password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return inventory.User{}, fmt.Errorf("store: hash password: %w", err)
	}

	u := inventory.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: params.FullName,
		IsActive: true,
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, full_name, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		u.ID, u.Email, u.FullName, string(hashed)).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return inventory.User{}, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}

// GetUser fetches one user by id.
func (s *Store) GetUser(ctx context.Context, id string) (inventory.User, error) {
	var u inventory.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, is_active, is_superuser, account_id, created_at, updated_at
		FROM users
		WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.IsSuperuser, &u.AccountID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.User{}, ErrNotFound
	}
	if err != nil {
		return inventory.User{}, fmt.Errorf("store: get user: %w", err)
	}
	return u, nil
}
