// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/feedback-notes/auth"
	"github.com/danielhkuo/feedback-notes/cliparse"
	"github.com/danielhkuo/feedback-notes/db"
	"github.com/danielhkuo/feedback-notes/session"
)

// TestDBURL is an in-memory SQLite database; every SetupTestDB call gets its own
const TestDBURL = "file::memory:"

// TestPassword is the plaintext password of every user made by CreateTestUser
const TestPassword = "password123"

func init() {
	auth.Cost = bcrypt.MinCost
}

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  cliparse.DatabaseSQLite,
		SessionSecret: "test-session-secret",
	}
}

// CreateTestUser inserts a user whose password is TestPassword.
// The email is derived from the username.
func CreateTestUser(t *testing.T, db *sql.DB, username string) {
	t.Helper()

	hashed, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, password, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`, username, hashed, username+"@example.com", "Test", "User")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestFeedback inserts feedback owned by username and returns its id
func CreateTestFeedback(t *testing.T, db *sql.DB, username, title, content string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO feedback (title, content, username)
		VALUES ($1, $2, $3)
		RETURNING id
	`, title, content, username).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}

	return id
}

// CountFeedback returns how many feedback rows username owns
func CountFeedback(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM feedback WHERE username = $1`, username).Scan(&n); err != nil {
		t.Fatalf("Failed to count feedback: %v", err)
	}
	return n
}

// LoginCookie returns a session cookie authenticating username
func LoginCookie(t *testing.T, cfg cliparse.Config, username string) *http.Cookie {
	t.Helper()

	sess := &session.Session{}
	sess.Login(username)
	return SessionCookie(t, cfg, sess)
}

// SessionCookie encodes sess into a cookie the handlers will accept
func SessionCookie(t *testing.T, cfg cliparse.Config, sess *session.Session) *http.Cookie {
	t.Helper()

	mgr := session.NewManager(cfg.SessionSecret, cfg.SecureCookies)
	w := httptest.NewRecorder()
	if err := mgr.Save(w, sess); err != nil {
		t.Fatalf("Failed to encode session: %v", err)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("session cookie was not set")
	return nil
}

// ReadSession decodes the session cookie set on a response.
// It returns an anonymous session when the response set none.
func ReadSession(t *testing.T, cfg cliparse.Config, w *httptest.ResponseRecorder) *session.Session {
	t.Helper()

	mgr := session.NewManager(cfg.SessionSecret, cfg.SecureCookies)
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return mgr.Load(req)
}

// PostForm creates a form-encoded POST request
func PostForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	return req
}

// Get creates a GET request carrying the given cookies
func Get(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 See Other to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status 303, got %d. Body: %s", w.Code, w.Body.String())
		return
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertBodyContains checks that the rendered body includes substr
func AssertBodyContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), substr) {
		t.Errorf("Expected body to contain %q. Body: %s", substr, w.Body.String())
	}
}
