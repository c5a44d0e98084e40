// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/danielhkuo/feedback-notes/models"
)

// Page names accepted by Render
const (
	PageRegister     = "register.html"
	PageLogin        = "login.html"
	PageUser         = "user.html"
	PageFeedbackAdd  = "feedback_add.html"
	PageFeedbackEdit = "feedback_edit.html"
	PageError        = "error.html"
)

//go:embed templates/*.html
var files embed.FS

var pages = parsePages(PageRegister, PageLogin, PageUser, PageFeedbackAdd, PageFeedbackEdit, PageError)

// PageData is everything a page template can read
type PageData struct {
	Title   string
	Actor   string
	Flashes []string

	// Form holds the submitted values when a form is re-rendered
	Form   interface{}
	Errors map[string]string

	User     *models.User
	Feedback []models.Feedback
	Item     *models.Feedback

	Status  int
	Message string
}

// IsOwner reports whether the logged-in actor is username
func (d *PageData) IsOwner(username string) bool {
	return d.Actor != "" && d.Actor == username
}

func parsePages(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.ParseFS(files, "templates/base.html", "templates/"+name))
	}
	return out
}

// Render executes page inside the base layout and writes it with status.
// Nothing is written when execution fails.
func Render(w http.ResponseWriter, status int, page string, data *PageData) error {
	ts, ok := pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data == nil {
		data = &PageData{}
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
