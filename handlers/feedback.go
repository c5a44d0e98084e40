// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/feedback-notes/cliparse"
	"github.com/danielhkuo/feedback-notes/middleware"
	"github.com/danielhkuo/feedback-notes/models"
	"github.com/danielhkuo/feedback-notes/session"
	"github.com/danielhkuo/feedback-notes/store"
	"github.com/danielhkuo/feedback-notes/views"
)

type FeedbackHandler struct {
	pages
	feedback *store.FeedbackStore
}

func NewFeedbackHandler(db *sql.DB, cfg cliparse.Config) *FeedbackHandler {
	return &FeedbackHandler{
		pages:    pages{sessions: session.NewManager(cfg.SessionSecret, cfg.SecureCookies)},
		feedback: store.NewFeedbackStore(db),
	}
}

// guardAuthor lets only username write feedback under /users/{username}.
// It answers the request and returns false when the actor may not.
func (h *FeedbackHandler) guardAuthor(w http.ResponseWriter, r *http.Request, sess *session.Session, username string) bool {
	switch err := sess.RequireOwner(username); {
	case errors.Is(err, session.ErrUnauthenticated):
		h.redirect(w, r, sess, msgLoginRequired, userPath(username))
		return false
	case errors.Is(err, session.ErrUnauthorized):
		h.redirect(w, r, sess, msgNoPermission, userPath(username))
		return false
	}
	return true
}

// ShowAdd handles GET /users/{username}/feedback/add
func (h *FeedbackHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	sess := h.sessions.Load(r)
	if !h.guardAuthor(w, r, sess, username) {
		return
	}
	h.render(w, r, sess, http.StatusOK, views.PageFeedbackAdd, &views.PageData{Title: "Add feedback"})
}

// Add handles POST /users/{username}/feedback/add
func (h *FeedbackHandler) Add(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	sess := h.sessions.Load(r)
	if !h.guardAuthor(w, r, sess, username) {
		return
	}

	form, ok := h.readForm(w, r, sess, views.PageFeedbackAdd, &views.PageData{Title: "Add feedback"})
	if !ok {
		return
	}

	fb, err := h.feedback.Create(r.Context(), form.Title, form.Content, username)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	slog.Info("feedback created", "id", fb.ID, "username", username)
	h.redirect(w, r, sess, msgFeedbackAdded, userPath(username))
}

// loadOwned resolves {id} to feedback the actor owns.
// Anonymous actors are sent to login before the id is looked up.
func (h *FeedbackHandler) loadOwned(w http.ResponseWriter, r *http.Request, sess *session.Session, mismatchTo func(actor string) string) (*models.Feedback, bool) {
	actor, err := sess.RequireAuthenticated()
	if err != nil {
		h.redirect(w, r, sess, msgLoginRequired, "/login")
		return nil, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.notFound(w, r, sess)
		return nil, false
	}

	fb, err := h.feedback.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r, sess)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}

	if err := sess.RequireOwner(fb.Username); err != nil {
		slog.Info("feedback access denied", "id", fb.ID, "actor", actor, "owner", fb.Username)
		h.redirect(w, r, sess, msgNoPermission, mismatchTo(actor))
		return nil, false
	}
	return fb, true
}

func toActorPage(actor string) string { return userPath(actor) }

func toLogin(string) string { return "/login" }

// ShowEdit handles GET /feedback/{id}/update
func (h *FeedbackHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	fb, ok := h.loadOwned(w, r, sess, toActorPage)
	if !ok {
		return
	}

	h.render(w, r, sess, http.StatusOK, views.PageFeedbackEdit, &views.PageData{
		Title: "Edit feedback",
		Item:  fb,
		Form:  models.FeedbackForm{Title: fb.Title, Content: fb.Content},
	})
}

// Edit handles POST /feedback/{id}/update
func (h *FeedbackHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	fb, ok := h.loadOwned(w, r, sess, toActorPage)
	if !ok {
		return
	}

	form, ok := h.readForm(w, r, sess, views.PageFeedbackEdit, &views.PageData{Title: "Edit feedback", Item: fb})
	if !ok {
		return
	}

	err := h.feedback.Update(r.Context(), fb.ID, form.Title, form.Content)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	slog.Info("feedback updated", "id", fb.ID, "username", fb.Username)
	h.redirect(w, r, sess, msgFeedbackUpdated, userPath(fb.Username))
}

// Delete handles POST /feedback/{id}/delete
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	fb, ok := h.loadOwned(w, r, sess, toLogin)
	if !ok {
		return
	}

	err := h.feedback.Delete(r.Context(), fb.ID)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	slog.Info("feedback deleted", "id", fb.ID, "username", fb.Username)
	h.redirect(w, r, sess, msgFeedbackDeleted, userPath(fb.Username))
}

// readForm decodes and validates a feedback form, re-rendering page on failure
func (h *FeedbackHandler) readForm(w http.ResponseWriter, r *http.Request, sess *session.Session, page string, data *views.PageData) (models.FeedbackForm, bool) {
	var form models.FeedbackForm
	if err := middleware.ParseForm(r, &form); err != nil {
		data.Errors = map[string]string{"form": msgMalformedForm}
		h.render(w, r, sess, http.StatusBadRequest, page, data)
		return form, false
	}
	form.Normalize()

	if err := form.Validate(); err != nil {
		data.Form = form
		data.Errors = models.FieldErrors(err)
		h.render(w, r, sess, http.StatusUnprocessableEntity, page, data)
		return form, false
	}
	return form, true
}
