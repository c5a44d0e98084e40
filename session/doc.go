// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session is the session guard: it derives the current actor from the
signed session cookie and decides who may touch which record.

# States

A session is either Anonymous (no user_id) or Authenticated(username):

	sess.Login("alice")   // Anonymous -> Authenticated
	sess.Logout()         // -> Anonymous

# Guards

	actor, err := sess.RequireAuthenticated()  // ErrUnauthenticated
	err := sess.RequireOwner(feedback.Username) // ErrUnauthenticated or ErrUnauthorized

RequireOwner checks for an anonymous actor first, so every caller sees
ErrUnauthenticated before any ownership comparison.

# Cookie

Manager stores the session in the "session" cookie as an HS256 token
(github.com/golang-jwt/jwt) signed with the configured secret:

	mgr := session.NewManager(cfg.SessionSecret, cfg.SecureCookies)
	sess := mgr.Load(r)
	sess.AddFlash("Goodbye!")
	err := mgr.Save(w, sess)

Tampered, unparseable or expired cookies load as an anonymous session.
Tokens expire MaxAge after the last Save. Nothing is stored server-side,
so a token stays valid until then even if its account is deleted and the
username is registered again; MaxAge bounds that window.

# Flashes

Flash messages ride along in the session until the next rendered page pops
them with PopFlashes.
*/
package session
