// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-notes/middleware"
	"github.com/danielhkuo/feedback-notes/session"
	"github.com/danielhkuo/feedback-notes/views"
)

// Flash messages shown after a redirect
const (
	msgLoginRequired   = "Please login to view that page!"
	msgNoPermission    = "You do not have permission to do that."
	msgGoodbye         = "Goodbye!"
	msgUserDeleted     = "User deleted."
	msgFeedbackAdded   = "Feedback added!"
	msgFeedbackUpdated = "Feedback updated!"
	msgFeedbackDeleted = "Feedback deleted!"
)

// pages holds what every HTML handler needs to answer a request
type pages struct {
	sessions *session.Manager
}

// render fills in the actor and pending flashes, then writes page.
// Popped flashes are persisted before the body goes out.
func (p pages) render(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, page string, data *views.PageData) {
	if data == nil {
		data = &views.PageData{}
	}
	data.Actor, _ = sess.Actor()
	data.Flashes = sess.PopFlashes()

	if len(data.Flashes) > 0 {
		if err := p.sessions.Save(w, sess); err != nil {
			p.serverError(w, r, err)
			return
		}
	}

	if err := views.Render(w, status, page, data); err != nil {
		p.serverError(w, r, err)
	}
}

// redirect saves the session, queueing flash when non-empty, and answers 303
func (p pages) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, flash, location string) {
	if flash != "" {
		sess.AddFlash(flash)
	}
	if err := p.sessions.Save(w, sess); err != nil {
		p.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (p pages) notFound(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	p.errorPage(w, r, sess, http.StatusNotFound)
}

func (p pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	ServerError(w, r, err)
}

func (p pages) errorPage(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	data := &views.PageData{Status: status, Message: http.StatusText(status)}
	data.Actor, _ = sess.Actor()
	if err := views.Render(w, status, views.PageError, data); err != nil {
		ServerError(w, r, err)
	}
}

// ServerError logs err and answers 500 without leaking details
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"request_id", middleware.RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	status := http.StatusInternalServerError
	data := &views.PageData{Status: status, Message: http.StatusText(status)}
	if renderErr := views.Render(w, status, views.PageError, data); renderErr != nil {
		http.Error(w, http.StatusText(status), status)
	}
}
