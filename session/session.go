// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

var (
	ErrUnauthenticated = errors.New("no authenticated actor")
	ErrUnauthorized    = errors.New("actor does not own this resource")
)

// Session is the client-scoped state carried in the signed cookie.
// An empty UserID means the actor is anonymous.
type Session struct {
	UserID  string   `json:"user_id,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
	jwt.StandardClaims
}

// Actor returns the authenticated username, if any
func (s *Session) Actor() (string, bool) {
	if s == nil || s.UserID == "" {
		return "", false
	}
	return s.UserID, true
}

// RequireAuthenticated returns the actor or ErrUnauthenticated
func (s *Session) RequireAuthenticated() (string, error) {
	actor, ok := s.Actor()
	if !ok {
		return "", ErrUnauthenticated
	}
	return actor, nil
}

// RequireOwner passes only when the actor is owner.
// Anonymous sessions fail with ErrUnauthenticated before ownership is compared.
func (s *Session) RequireOwner(owner string) error {
	actor, err := s.RequireAuthenticated()
	if err != nil {
		return err
	}
	if actor != owner {
		return ErrUnauthorized
	}
	return nil
}

// Login moves the session to Authenticated(username)
func (s *Session) Login(username string) {
	s.UserID = username
}

// Logout moves the session to Anonymous. Pending flashes survive.
func (s *Session) Logout() {
	s.UserID = ""
}

// AddFlash queues msg for the next rendered page. A message already
// pending is not queued twice.
func (s *Session) AddFlash(msg string) {
	for _, f := range s.Flashes {
		if f == msg {
			return
		}
	}
	s.Flashes = append(s.Flashes, msg)
}

// PopFlashes returns pending flashes and clears them
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}
