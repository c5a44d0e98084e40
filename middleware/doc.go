// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request helpers.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Every request gets a UUID, echoed in the X-Request-ID header and attached
to both log lines. Completion logs include the status and duration_ms.

# Headers

SecurityHeaders wraps the whole mux. NoCache wraps individual pages that
show private data, such as the user page and the edit forms.

# Forms

	var form models.FeedbackForm
	if err := middleware.ParseForm(r, &form); err != nil {
		...
	}

Fields are matched by their schema tags; unknown keys are ignored.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP before falling back to RemoteAddr.
*/
package middleware
