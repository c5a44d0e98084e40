// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
)

const CookieName = "session"

// MaxAge bounds how long a saved session stays valid. Every Save starts a
// new window, so only idle sessions expire.
const MaxAge = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Manager reads and writes sessions as HS256-signed cookie values
type Manager struct {
	secret []byte
	secure bool
}

func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Load returns the request's session. A missing, tampered or unreadable
// cookie yields an empty (anonymous) session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}

	sess, err := m.Decode(cookie.Value)
	if err != nil {
		slog.Debug("discarding session cookie", "error", err)
		return &Session{}
	}
	return sess
}

// Save writes sess to the response cookie
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	value, err := m.Encode(sess)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(MaxAge / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Encode signs sess, stamping it with the issue time and an expiry MaxAge ahead
func (m *Manager) Encode(sess *Session) (string, error) {
	now := time.Now()
	sess.IssuedAt = now.Unix()
	sess.ExpiresAt = now.Add(MaxAge).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sess)
	value, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return value, nil
}

// Decode verifies value and returns its session. Expired tokens fail.
func (m *Manager) Decode(value string) (*Session, error) {
	sess := &Session{}
	token, err := jwt.ParseWithClaims(value, sess, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session: %v: %w", err, ErrInvalidToken)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return sess, nil
}
