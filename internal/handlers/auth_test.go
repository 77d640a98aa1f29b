package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"miniblog/internal/models"
	"miniblog/internal/service"
)

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		auth       *mockAuth
		form       string
		wantPage   string
		wantMarker string
	}{
		{
			name:       "success renders login with message",
			auth:       &mockAuth{signUpID: 1},
			form:       "name=alice&email=alice%40example.com&password=secret",
			wantPage:   "login",
			wantMarker: msgRegistered,
		},
		{
			name:       "duplicate email renders signup with message",
			auth:       &mockAuth{signUpErr: service.ErrEmailTaken},
			form:       "name=alice&email=alice%40example.com&password=secret",
			wantPage:   "signup",
			wantMarker: msgUserExists,
		},
		{
			name:       "missing fields renders signup with message",
			auth:       &mockAuth{signUpErr: service.ErrMissingFields},
			form:       "name=alice",
			wantPage:   "signup",
			wantMarker: msgFieldsNeeded,
		},
		{
			name:       "store error renders generic message",
			auth:       &mockAuth{signUpErr: errors.New("db down")},
			form:       "name=alice&email=alice%40example.com&password=secret",
			wantPage:   "signup",
			wantMarker: msgGenericError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := &service.Service{Authorization: tt.auth, Sessions: &mockSessions{}}
			r := newTestRouter(s)

			w := doRequest(r, http.MethodPost, "/register", tt.form, "")

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", w.Code)
			}
			body := w.Body.String()
			if !strings.HasPrefix(body, tt.wantPage) {
				t.Fatalf("expected %s page, got %q", tt.wantPage, body)
			}
			if !strings.Contains(body, tt.wantMarker) {
				t.Fatalf("expected message %q in %q", tt.wantMarker, body)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		s := &service.Service{
			Authorization: &mockAuth{authErr: service.ErrUserNotFound},
			Sessions:      &mockSessions{},
		}
		r := newTestRouter(s)

		w := doRequest(r, http.MethodPost, "/login", "email=ghost%40example.com&password=x", "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), msgUserNotFound) {
			t.Fatalf("expected %q, got %d %q", msgUserNotFound, w.Code, w.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		s := &service.Service{
			Authorization: &mockAuth{authErr: service.ErrInvalidPassword},
			Sessions:      &mockSessions{},
		}
		r := newTestRouter(s)

		w := doRequest(r, http.MethodPost, "/login", "email=alice%40example.com&password=bad", "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), msgWrongPassword) {
			t.Fatalf("expected %q, got %d %q", msgWrongPassword, w.Code, w.Body.String())
		}
	})

	t.Run("success sets cookie and redirects home", func(t *testing.T) {
		sessions := &mockSessions{createToken: "tok123"}
		s := &service.Service{
			Authorization: &mockAuth{authUser: &models.User{ID: 9, Email: "alice@example.com"}},
			Sessions:      sessions,
		}
		r := newTestRouter(s)

		w := doRequest(r, http.MethodPost, "/login", "email=alice%40example.com&password=secret", "")

		if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
			t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
		}
		if sessions.createCalls != 1 {
			t.Fatalf("expected one session, got %d", sessions.createCalls)
		}
		cookie := w.Header().Get("Set-Cookie")
		if !strings.Contains(cookie, sessionCookie+"=tok123") {
			t.Fatalf("session cookie not set: %q", cookie)
		}
	})

	t.Run("session creation failure renders generic message", func(t *testing.T) {
		s := &service.Service{
			Authorization: &mockAuth{authUser: &models.User{ID: 9}},
			Sessions:      &mockSessions{createErr: errors.New("boom")},
		}
		r := newTestRouter(s)

		w := doRequest(r, http.MethodPost, "/login", "email=a%40b.c&password=p", "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), msgGenericError) {
			t.Fatalf("expected generic error page, got %d %q", w.Code, w.Body.String())
		}
	})
}

func TestLogoutHandler(t *testing.T) {
	sessions := &mockSessions{resolveID: 9, resolveOK: true}
	s := &service.Service{Sessions: sessions}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/logout", "", "tok123")

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if sessions.destroyCalls != 1 || sessions.lastDestroyed != "tok123" {
		t.Fatalf("session not destroyed: calls=%d token=%q", sessions.destroyCalls, sessions.lastDestroyed)
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("cookie not cleared: %q", cookie)
	}
}

func TestAllUsersHandler(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{users: []models.User{
			{ID: 1, Name: "alice", Email: "alice@example.com", PasswordHash: "h1"},
			{ID: 2, Name: "bob", Email: "bob@example.com", PasswordHash: "h2"},
		}},
		Sessions: &mockSessions{resolveID: 1, resolveOK: true},
	}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/allUsers", "", "tok")

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// hashes must never serialize
	if strings.Contains(w.Body.String(), "h1") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password material leaked: %s", w.Body.String())
	}
}
