// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the credential store: password hashing and verification.

# Password Hashing

Passwords are hashed with bcrypt, which salts every hash:

	hash, err := auth.HashPassword("hunter2")
	ok := auth.VerifyPassword("hunter2", hash)

Two hashes of the same password differ, but both verify. The work factor is
auth.Cost (bcrypt.DefaultCost unless lowered by tests).

# Secrets

Random hex secrets, printed by the gen-secret command for SESSION_SECRET:

	secret, err := auth.GenerateSecret(32)  // 64 hex characters
*/
package auth
