// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the user directory and the feedback ledger.

# User Directory

	u, err := store.NewUser(username, password, email, first, last) // hashes, no I/O
	err = users.Create(ctx, u)               // *DuplicateKeyError on taken username/email
	u, err = users.Authenticate(ctx, name, pw) // ErrInvalidCredentials
	u, err = users.Get(ctx, name)              // ErrNotFound
	err = users.Delete(ctx, name)              // removes the user's feedback too

Uniqueness is left to the database constraints; there is no check-then-insert.
Unique violations from lib/pq (SQLSTATE 23505) and modernc.org/sqlite
(SQLITE_CONSTRAINT) are both reported as *DuplicateKeyError, which matches
ErrDuplicateKey under errors.Is and names the offending column.

Delete runs in a transaction: feedback rows first, then the user row. Either
both go or neither does.

# Feedback Ledger

	fb, err := feedback.Create(ctx, title, content, owner)
	fb, err = feedback.Get(ctx, id)            // ErrNotFound
	items, err := feedback.ListByUser(ctx, owner)
	err = feedback.Update(ctx, id, title, content) // ErrEmptyField, ErrNotFound
	err = feedback.Delete(ctx, id)                 // ErrNotFound

Ownership is not checked here; callers go through the session guard first.
*/
package store
