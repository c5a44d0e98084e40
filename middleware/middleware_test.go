// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	var seenID string
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		seenID = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	WithLogging(testHandler)(w, req)

	if !handlerCalled {
		t.Fatal("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}

	header := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("Expected a UUID in %s, got %q", RequestIDHeader, header)
	}
	if seenID != header {
		t.Errorf("Handler saw request id %q, header has %q", seenID, header)
	}
}

func TestWithLogging_UniqueIDs(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/", nil))
		id := w.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("request id %q reused", id)
		}
		seen[id] = true
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"SeeOther", http.StatusSeeOther, ""},
		{"Unprocessable", http.StatusUnprocessableEntity, "<form></form>"},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest("POST", "/login", nil))

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := RequestID(req.Context()); id != "" {
		t.Errorf("Expected empty id outside WithLogging, got %q", id)
	}
}

func TestSecurityHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handled"))
	})

	w := httptest.NewRecorder()
	SecurityHeaders(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Body.String() != "handled" {
		t.Error("Expected next handler to be called")
	}

	expected := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "same-origin",
		"Content-Security-Policy": "default-src 'self'",
	}
	for header, value := range expected {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestNoCache(t *testing.T) {
	w := httptest.NewRecorder()
	NoCache(func(w http.ResponseWriter, r *http.Request) {})(w, httptest.NewRequest("GET", "/users/alice", nil))

	if !strings.Contains(w.Header().Get("Cache-Control"), "no-store") {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
	if w.Header().Get("Pragma") != "no-cache" {
		t.Error("Expected Pragma: no-cache")
	}
}

type sampleForm struct {
	Title   string `schema:"title"`
	Content string `schema:"content"`
}

func TestParseForm(t *testing.T) {
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("known fields", func(t *testing.T) {
		values := url.Values{"title": {"Hello"}, "content": {"World"}}
		var form sampleForm
		if err := ParseForm(newRequest(values.Encode()), &form); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if form.Title != "Hello" || form.Content != "World" {
			t.Errorf("Got %+v", form)
		}
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		values := url.Values{"title": {"Hello"}, "csrf": {"x"}}
		var form sampleForm
		if err := ParseForm(newRequest(values.Encode()), &form); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if form.Title != "Hello" || form.Content != "" {
			t.Errorf("Got %+v", form)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		var form sampleForm
		if err := ParseForm(newRequest(""), &form); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if form != (sampleForm{}) {
			t.Errorf("Expected zero form, got %+v", form)
		}
	})

	t.Run("query string is not form input", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/?title=fromquery", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var form sampleForm
		if err := ParseForm(req, &form); err != nil {
			t.Fatal(err)
		}
		if form.Title != "" {
			t.Errorf("Expected title from body only, got %q", form.Title)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		var form sampleForm
		if err := ParseForm(newRequest("title=%zz"), &form); err == nil {
			t.Error("Expected error for malformed encoding")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For single IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Forwarded-For chained IPs",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18, 150.172.238.178"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "203.0.113.195",
		},
		{
			name:       "X-Real-IP takes precedence over RemoteAddr",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "X-Forwarded-For takes precedence over X-Real-IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "RemoteAddr with port",
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "IPv6 RemoteAddr with port",
			remoteAddr: "[::1]:12345",
			expectedIP: "::1",
		},
		{
			name:       "empty X-Forwarded-For falls through to RemoteAddr",
			headers:    map[string]string{"X-Forwarded-For": ""},
			remoteAddr: "10.0.0.5:8080",
			expectedIP: "10.0.0.5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if result := GetClientIP(req); result != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, result)
			}
		})
	}
}
