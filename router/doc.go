// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the feedback app.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	GET  /                        - Redirect to /register
	GET  /register                - Registration form
	POST /register                - Create account and log in
	GET  /login                   - Login form
	POST /login                   - Log in
	POST /logout                  - Log out
	GET  /users/{username}        - User page with their feedback (login required)
	POST /users/{username}/delete - Delete own account and its feedback

Feedback:

	GET  /users/{username}/feedback/add - New feedback form (owner only)
	POST /users/{username}/feedback/add - Add feedback
	GET  /feedback/{id}/update          - Edit form (owner only)
	POST /feedback/{id}/update          - Save edit
	POST /feedback/{id}/delete          - Delete feedback

Unknown paths get the mux's plain 404 and known paths with the wrong
method get 405. Pages that show private data are wrapped in
middleware.NoCache.
*/
package router
