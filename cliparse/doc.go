// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string (default for sqlite: file:feedback.db)
  - DatabaseType: sqlite (default) or postgres
  - SessionSecret: HMAC key for the session cookie (required)
  - SecureCookies: set the Secure attribute on the session cookie

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--session-secret Session signing secret
	--secure-cookies true/false

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → --session-secret
	COOKIE_SECURE  → --secure-cookies

CLI flags take precedence over environment variables. main loads a .env file
(if present) before ParseFlags runs, so .env values behave like real
environment variables.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - postgres is selected without a DATABASE_URL
  - PORT or COOKIE_SECURE cannot be parsed
*/
package cliparse
