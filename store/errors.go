// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyField         = errors.New("title and content are required")
)

// DuplicateKeyError reports which unique column rejected an insert.
// It matches ErrDuplicateKey under errors.Is.
type DuplicateKeyError struct {
	Column string
	Err    error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on %s: %v", e.Column, e.Err)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

const pqUniqueViolation = "23505"

// classifyUserInsert turns a unique violation from either driver into a
// *DuplicateKeyError; other errors pass through untouched.
func classifyUserInsert(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		column := "username"
		if strings.Contains(pqErr.Constraint, "email") {
			column = "email"
		}
		return &DuplicateKeyError{Column: column, Err: err}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := liteErr.Error()
		if !strings.Contains(msg, "UNIQUE") && liteErr.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return err
		}
		column := "username"
		if strings.Contains(msg, "users.email") {
			column = "email"
		}
		return &DuplicateKeyError{Column: column, Err: err}
	}

	return err
}
