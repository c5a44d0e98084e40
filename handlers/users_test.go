// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/feedback-notes/session"
	"github.com/danielhkuo/feedback-notes/store"
	"github.com/danielhkuo/feedback-notes/testutil"
)

func registerValues(username, email string) url.Values {
	return url.Values{
		"username":   {username},
		"password":   {"s3cret-pass"},
		"email":      {email},
		"first_name": {"Alice"},
		"last_name":  {"Liddell"},
	}
}

func assertFlashes(t *testing.T, sess *session.Session, want ...string) {
	t.Helper()
	if len(sess.Flashes) != len(want) {
		t.Fatalf("flashes = %v, want %v", sess.Flashes, want)
	}
	for i := range want {
		if sess.Flashes[i] != want[i] {
			t.Errorf("flash[%d] = %q, want %q", i, sess.Flashes[i], want[i])
		}
	}
}

func TestRedirectRoot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewUserHandler(db, testutil.GetTestConfig())
	w := httptest.NewRecorder()
	h.RedirectRoot(w, testutil.Get("/"))

	testutil.AssertRedirect(t, w, "/register")
}

func TestRegister_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewUserHandler(db, cfg)

	w := httptest.NewRecorder()
	h.Register(w, testutil.PostForm("/register", registerValues("alice", "alice@example.com")))

	testutil.AssertRedirect(t, w, "/users/alice")

	sess := testutil.ReadSession(t, cfg, w)
	if actor, ok := sess.Actor(); !ok || actor != "alice" {
		t.Errorf("session actor = %q, %v; want alice", actor, ok)
	}

	user, err := store.NewUserStore(db).Authenticate(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("registered user cannot authenticate: %v", err)
	}
	if user.FirstName != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("stored user = %+v", user)
	}
}

func TestRegister_Rejected(t *testing.T) {
	testCases := []struct {
		name       string
		values     url.Values
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "duplicate username",
			values:     registerValues("taken", "fresh@example.com"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{msgUsernameTaken, `value="fresh@example.com"`},
		},
		{
			name:       "duplicate email",
			values:     registerValues("fresh", "taken@example.com"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{msgEmailTaken, `value="fresh"`},
		},
		{
			name:       "missing email",
			values:     registerValues("fresh", ""),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Email is required."},
		},
		{
			name:       "bad email",
			values:     registerValues("fresh", "not-an-email"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Enter a valid email address."},
		},
		{
			name:       "username too long",
			values:     registerValues("abcdefghijklmnopqrstuvwxyz", "long@example.com"),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   []string{"Username must be at most 20 characters."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer db.Close()

			cfg := testutil.GetTestConfig()
			testutil.CreateTestUser(t, db, "taken")
			h := NewUserHandler(db, cfg)

			w := httptest.NewRecorder()
			h.Register(w, testutil.PostForm("/register", tc.values))

			testutil.AssertStatus(t, w, tc.wantStatus)
			for _, s := range tc.wantBody {
				testutil.AssertBodyContains(t, w, s)
			}
			if _, ok := testutil.ReadSession(t, cfg, w).Actor(); ok {
				t.Error("rejected registration must not log in")
			}
		})
	}
}

func TestRegister_UsernameMustBeOnePathSegment(t *testing.T) {
	for _, username := range []string{"a/b", "bob?x=1", "bob#top", "..", "bob%2Fx"} {
		t.Run(username, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer db.Close()

			cfg := testutil.GetTestConfig()
			h := NewUserHandler(db, cfg)

			w := httptest.NewRecorder()
			h.Register(w, testutil.PostForm("/register", registerValues(username, "odd@example.com")))

			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
			testutil.AssertBodyContains(t, w, "Username may only contain")
			if loc := w.Header().Get("Location"); loc != "" {
				t.Errorf("rejected registration redirected to %q", loc)
			}
			if _, ok := testutil.ReadSession(t, cfg, w).Actor(); ok {
				t.Error("rejected registration must not log in")
			}
			if _, err := store.NewUserStore(db).Get(context.Background(), username); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("user %q was stored: %v", username, err)
			}
		})
	}
}

func TestRegister_AlreadyLoggedIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewUserHandler(db, cfg)
	cookie := testutil.LoginCookie(t, cfg, "alice")

	w := httptest.NewRecorder()
	h.ShowRegister(w, testutil.Get("/register", cookie))
	testutil.AssertRedirect(t, w, "/users/alice")

	w = httptest.NewRecorder()
	h.Register(w, testutil.PostForm("/register", registerValues("other", "other@example.com"), cookie))
	testutil.AssertRedirect(t, w, "/users/alice")

	if _, err := store.NewUserStore(db).Get(context.Background(), "other"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("no user should be created while logged in, got %v", err)
	}
}

func TestShowForms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	h := NewUserHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.ShowRegister(w, testutil.Get("/register"))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w, `action="/register"`)

	w = httptest.NewRecorder()
	h.ShowLogin(w, testutil.Get("/login"))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertBodyContains(t, w, `action="/login"`)
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name       string
		username   string
		password   string
		wantStatus int
		wantActor  string
	}{
		{"valid credentials", "alice", testutil.TestPassword, http.StatusSeeOther, "alice"},
		{"wrong password", "alice", "wrong", http.StatusUnauthorized, ""},
		{"unknown user", "nobody", testutil.TestPassword, http.StatusUnauthorized, ""},
		{"missing password", "alice", "", http.StatusUnprocessableEntity, ""},
		{"padded username", "  alice ", testutil.TestPassword, http.StatusSeeOther, "alice"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer db.Close()

			cfg := testutil.GetTestConfig()
			testutil.CreateTestUser(t, db, "alice")
			h := NewUserHandler(db, cfg)

			w := httptest.NewRecorder()
			h.Login(w, testutil.PostForm("/login", url.Values{
				"username": {tc.username},
				"password": {tc.password},
			}))

			testutil.AssertStatus(t, w, tc.wantStatus)
			if tc.wantStatus == http.StatusSeeOther {
				testutil.AssertRedirect(t, w, "/users/"+tc.wantActor)
			}
			if tc.wantStatus == http.StatusUnauthorized {
				testutil.AssertBodyContains(t, w, msgBadCredentials)
			}

			actor, _ := testutil.ReadSession(t, cfg, w).Actor()
			if actor != tc.wantActor {
				t.Errorf("session actor = %q, want %q", actor, tc.wantActor)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewUserHandler(db, cfg)

	w := httptest.NewRecorder()
	h.Logout(w, testutil.PostForm("/logout", nil, testutil.LoginCookie(t, cfg, "alice")))

	testutil.AssertRedirect(t, w, "/login")

	sess := testutil.ReadSession(t, cfg, w)
	if _, ok := sess.Actor(); ok {
		t.Error("logout must leave the session anonymous")
	}
	assertFlashes(t, sess, msgGoodbye)
}

func TestShowUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	testutil.CreateTestUser(t, db, "alice")
	testutil.CreateTestUser(t, db, "bob")
	testutil.CreateTestFeedback(t, db, "alice", "Alice's idea", "details")
	testutil.CreateTestFeedback(t, db, "bob", "Bob's idea", "details")
	h := NewUserHandler(db, cfg)

	t.Run("owner sees controls", func(t *testing.T) {
		req := testutil.Get("/users/alice", testutil.LoginCookie(t, cfg, "alice"))
		req.SetPathValue("username", "alice")
		w := httptest.NewRecorder()
		h.ShowUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "Alice&#39;s idea")
		testutil.AssertBodyContains(t, w, "/users/alice/delete")
		if body := w.Body.String(); strings.Contains(body, "Bob&#39;s idea") {
			t.Error("page should list only alice's feedback")
		}
	})

	t.Run("other user sees no controls", func(t *testing.T) {
		req := testutil.Get("/users/alice", testutil.LoginCookie(t, cfg, "bob"))
		req.SetPathValue("username", "alice")
		w := httptest.NewRecorder()
		h.ShowUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if strings.Contains(w.Body.String(), "/users/alice/delete") {
			t.Error("bob should not see alice's delete control")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		req := testutil.Get("/users/ghost", testutil.LoginCookie(t, cfg, "alice"))
		req.SetPathValue("username", "ghost")
		w := httptest.NewRecorder()
		h.ShowUser(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("flashes shown once", func(t *testing.T) {
		sess := &session.Session{}
		sess.Login("alice")
		sess.AddFlash("Feedback added!")

		req := testutil.Get("/users/alice", testutil.SessionCookie(t, cfg, sess))
		req.SetPathValue("username", "alice")
		w := httptest.NewRecorder()
		h.ShowUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertBodyContains(t, w, "Feedback added!")

		after := testutil.ReadSession(t, cfg, w)
		if len(after.Flashes) != 0 {
			t.Errorf("flashes should be consumed, got %v", after.Flashes)
		}
		if actor, _ := after.Actor(); actor != "alice" {
			t.Errorf("popping flashes must keep the login, got %q", actor)
		}
	})
}

func TestShowUser_AnonymousIsIndistinguishable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	testutil.CreateTestUser(t, db, "alice")
	h := NewUserHandler(db, cfg)

	responses := map[string]*httptest.ResponseRecorder{}
	for _, username := range []string{"alice", "ghost"} {
		req := testutil.Get("/users/" + username)
		req.SetPathValue("username", username)
		w := httptest.NewRecorder()
		h.ShowUser(w, req)

		testutil.AssertRedirect(t, w, "/login")
		assertFlashes(t, testutil.ReadSession(t, cfg, w), msgLoginRequired)
		responses[username] = w
	}

	if responses["alice"].Body.String() != responses["ghost"].Body.String() {
		t.Error("anonymous responses differ between existing and missing users")
	}
}

func TestDeleteUser(t *testing.T) {
	testCases := []struct {
		name         string
		actor        string
		wantLocation string
		wantFlash    string
		wantDeleted  bool
	}{
		{"owner", "alice", "/", msgUserDeleted, true},
		{"anonymous", "", "/login", msgLoginRequired, false},
		{"someone else", "bob", "/users/alice", msgNoPermission, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer db.Close()

			cfg := testutil.GetTestConfig()
			testutil.CreateTestUser(t, db, "alice")
			testutil.CreateTestUser(t, db, "bob")
			testutil.CreateTestFeedback(t, db, "alice", "one", "x")
			testutil.CreateTestFeedback(t, db, "alice", "two", "y")
			h := NewUserHandler(db, cfg)

			var cookie *http.Cookie
			if tc.actor != "" {
				cookie = testutil.LoginCookie(t, cfg, tc.actor)
			}
			req := testutil.PostForm("/users/alice/delete", nil, cookie)
			req.SetPathValue("username", "alice")
			w := httptest.NewRecorder()
			h.DeleteUser(w, req)

			testutil.AssertRedirect(t, w, tc.wantLocation)
			sess := testutil.ReadSession(t, cfg, w)
			assertFlashes(t, sess, tc.wantFlash)

			_, err := store.NewUserStore(db).Get(context.Background(), "alice")
			if deleted := errors.Is(err, store.ErrNotFound); deleted != tc.wantDeleted {
				t.Errorf("alice deleted = %v, want %v", deleted, tc.wantDeleted)
			}

			wantCount := 2
			if tc.wantDeleted {
				wantCount = 0
				if _, ok := sess.Actor(); ok {
					t.Error("deleting your account must log you out")
				}
			}
			if n := testutil.CountFeedback(t, db, "alice"); n != wantCount {
				t.Errorf("alice's feedback = %d, want %d", n, wantCount)
			}
		})
	}
}
