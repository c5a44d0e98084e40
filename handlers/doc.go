// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTML request handlers for the feedback app.

# Handler Types

Each handler is a struct built from *sql.DB and Config:

  - UserHandler: registration, login, logout, user page, account deletion
  - FeedbackHandler: adding, editing and deleting feedback

	userHandler := handlers.NewUserHandler(db, cfg)

# Sessions

Every handler loads the signed session cookie first and passes the
*session.Session through explicitly. Mutations that need an owner ask the
session for it:

	switch err := sess.RequireOwner(username); {
	case errors.Is(err, session.ErrUnauthenticated):
		// flash + redirect to login
	case errors.Is(err, session.ErrUnauthorized):
		// flash "You do not have permission to do that." + redirect
	}

Anonymous actors are always turned away before any record is looked up,
so the response to an anonymous request never depends on whether the
target exists.

# Responses

Successful POSTs answer 303 See Other. Invalid forms are re-rendered with
the submitted values and per-field messages (422), bad logins with 401.
Flashes queued before a redirect are shown once on the next rendered page.
Unknown records render the 404 page; anything unexpected is logged with
its request id and renders the 500 page.
*/
package handlers
