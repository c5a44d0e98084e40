// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the feedback server.

Users register, log in, and keep a list of short feedback notes. Only the
author of a note can edit or delete it, and deleting an account deletes
its notes.

# Starting the Server

The server reads CLI flags first and falls back to environment variables.
A .env file in the working directory is loaded before either:

	SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -session-secret "..."

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): HMAC key for the session cookie

Generate one with:

	go run . gen-secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): connection string; defaults to file:feedback.db for sqlite
  - COOKIE_SECURE (-secure-cookies): mark the session cookie Secure

# Architecture

  - handlers: HTML request handlers (accounts, feedback)
  - router: Route definitions using Go 1.22+ routing
  - middleware: logging, security headers, form decoding
  - views: embedded templates
  - session: signed cookie sessions and ownership checks
  - store: users and feedback in SQL
  - models: records and form validation
  - auth: password hashing
  - db: connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
