// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-notes/cliparse"
	"github.com/danielhkuo/feedback-notes/middleware"
	"github.com/danielhkuo/feedback-notes/models"
	"github.com/danielhkuo/feedback-notes/session"
	"github.com/danielhkuo/feedback-notes/store"
	"github.com/danielhkuo/feedback-notes/views"
)

const (
	msgUsernameTaken  = "Username taken. Please pick another."
	msgEmailTaken     = "Email already registered. Please use another."
	msgBadCredentials = "Invalid username or password"
	msgMalformedForm  = "The form could not be read. Please try again."
)

type UserHandler struct {
	pages
	users    *store.UserStore
	feedback *store.FeedbackStore
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{
		pages:    pages{sessions: session.NewManager(cfg.SessionSecret, cfg.SecureCookies)},
		users:    store.NewUserStore(db),
		feedback: store.NewFeedbackStore(db),
	}
}

func userPath(username string) string {
	return "/users/" + username
}

// RedirectRoot handles GET /
func (h *UserHandler) RedirectRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

// ShowRegister handles GET /register
func (h *UserHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if actor, ok := sess.Actor(); ok {
		h.redirect(w, r, sess, "", userPath(actor))
		return
	}
	h.render(w, r, sess, http.StatusOK, views.PageRegister, &views.PageData{Title: "Register"})
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if actor, ok := sess.Actor(); ok {
		h.redirect(w, r, sess, "", userPath(actor))
		return
	}

	var form models.RegisterForm
	if err := middleware.ParseForm(r, &form); err != nil {
		h.render(w, r, sess, http.StatusBadRequest, views.PageRegister, &views.PageData{
			Title:  "Register",
			Errors: map[string]string{"form": msgMalformedForm},
		})
		return
	}
	form.Normalize()

	if err := form.Validate(); err != nil {
		h.render(w, r, sess, http.StatusUnprocessableEntity, views.PageRegister, &views.PageData{
			Title:  "Register",
			Form:   form,
			Errors: models.FieldErrors(err),
		})
		return
	}

	user, err := store.NewUser(form.Username, form.Password, form.Email, form.FirstName, form.LastName)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		var dup *store.DuplicateKeyError
		if !errors.As(err, &dup) {
			h.serverError(w, r, err)
			return
		}

		fieldErrs := map[string]string{"username": msgUsernameTaken}
		if dup.Column == "email" {
			fieldErrs = map[string]string{"email": msgEmailTaken}
		}
		h.render(w, r, sess, http.StatusUnprocessableEntity, views.PageRegister, &views.PageData{
			Title:  "Register",
			Form:   form,
			Errors: fieldErrs,
		})
		return
	}

	slog.Info("user registered", "username", user.Username)

	sess.Login(user.Username)
	h.redirect(w, r, sess, "", userPath(user.Username))
}

// ShowLogin handles GET /login
func (h *UserHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if actor, ok := sess.Actor(); ok {
		h.redirect(w, r, sess, "", userPath(actor))
		return
	}
	h.render(w, r, sess, http.StatusOK, views.PageLogin, &views.PageData{Title: "Log in"})
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if actor, ok := sess.Actor(); ok {
		h.redirect(w, r, sess, "", userPath(actor))
		return
	}

	var form models.LoginForm
	if err := middleware.ParseForm(r, &form); err != nil {
		h.render(w, r, sess, http.StatusBadRequest, views.PageLogin, &views.PageData{
			Title:  "Log in",
			Errors: map[string]string{"form": msgMalformedForm},
		})
		return
	}
	form.Normalize()

	if err := form.Validate(); err != nil {
		h.render(w, r, sess, http.StatusUnprocessableEntity, views.PageLogin, &views.PageData{
			Title:  "Log in",
			Form:   models.LoginForm{Username: form.Username},
			Errors: models.FieldErrors(err),
		})
		return
	}

	user, err := h.users.Authenticate(r.Context(), form.Username, form.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		slog.Info("login rejected", "username", form.Username, "remote", middleware.GetClientIP(r))
		h.render(w, r, sess, http.StatusUnauthorized, views.PageLogin, &views.PageData{
			Title:  "Log in",
			Form:   models.LoginForm{Username: form.Username},
			Errors: map[string]string{"form": msgBadCredentials},
		})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	sess.Login(user.Username)
	h.redirect(w, r, sess, "", userPath(user.Username))
}

// Logout handles POST /logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	sess.Logout()
	h.redirect(w, r, sess, msgGoodbye, "/login")
}

// ShowUser handles GET /users/{username}
func (h *UserHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	sess := h.sessions.Load(r)
	if _, err := sess.RequireAuthenticated(); err != nil {
		h.redirect(w, r, sess, msgLoginRequired, "/login")
		return
	}

	user, err := h.users.Get(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	items, err := h.feedback.ListByUser(r.Context(), username)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, sess, http.StatusOK, views.PageUser, &views.PageData{
		Title:    user.Username,
		User:     user,
		Feedback: items,
	})
}

// DeleteUser handles POST /users/{username}/delete
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	sess := h.sessions.Load(r)
	switch err := sess.RequireOwner(username); {
	case errors.Is(err, session.ErrUnauthenticated):
		h.redirect(w, r, sess, msgLoginRequired, "/login")
		return
	case errors.Is(err, session.ErrUnauthorized):
		h.redirect(w, r, sess, msgNoPermission, userPath(username))
		return
	}

	err := h.users.Delete(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	slog.Info("user deleted", "username", username)

	sess.Logout()
	h.redirect(w, r, sess, msgUserDeleted, "/")
}
