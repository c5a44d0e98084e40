// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open picks the driver from cliparse.Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go), foreign keys enabled via DSN pragma
  - postgres: github.com/lib/pq

	conn, err := db.Open(cfg)

# Schema Creation

CreateSchema initializes all required tables for the given dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: username (PK), password hash, email (unique), first_name, last_name
  - feedback: id (auto-increment), title, content, username

# Relationships

	users 1──* feedback

feedback.username references users.username with ON DELETE CASCADE. The store
also deletes feedback explicitly inside the user-deletion transaction.

# Indexes

  - users.email (unique)
  - feedback.username
*/
package db
