// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/feedback-notes/auth"
	"github.com/danielhkuo/feedback-notes/models"
)

// UserStore is the user directory backed by the users table.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// NewUser builds a user with a hashed password. It does not persist anything;
// uniqueness is only decided when Create commits.
func NewUser(username, password, email, firstName, lastName string) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username:  username,
		Password:  hashed,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}, nil
}

// Create inserts u. A taken username or email returns a *DuplicateKeyError.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`, u.Username, u.Password, u.Email, u.FirstName, u.LastName)
	if err != nil {
		err = classifyUserInsert(err)
		if errors.Is(err, ErrDuplicateKey) {
			return err
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Get looks up a user by username
func (s *UserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password, email, first_name, last_name
		FROM users
		WHERE username = $1
	`, username).Scan(&u.Username, &u.Password, &u.Email, &u.FirstName, &u.LastName)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// Authenticate returns the user only if it exists and password verifies.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.Get(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Delete removes the user and every feedback row they own in one transaction.
func (s *UserStore) Delete(ctx context.Context, username string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM feedback WHERE username = $1`, username); err != nil {
		return fmt.Errorf("failed to delete feedback for user: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}
	return nil
}
