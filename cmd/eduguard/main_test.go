// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/eduguard/eduguard-go/internal/authclient"
)

// fakeAuth is an in-process stand-in for the authentication service.
type fakeAuth struct {
	srv *httptest.Server

	mu sync.Mutex
	// user is returned by login, signup (with the requested role), and me.
	user authclient.User
	// healthFailures makes that many health calls fail before recovering.
	healthFailures int
	// hits counts requests per method+path.
	hits map[string]int
}

func newFakeAuth(t *testing.T) *fakeAuth {
	t.Helper()
	f := &fakeAuth{
		user: authclient.User{
			ID:        1,
			Email:     "parent@example.com",
			Role:      authclient.RoleParent,
			CreatedAt: "2026-08-01T10:00:00Z",
			UpdatedAt: "2026-08-01T10:00:00Z",
		},
		hits: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		var req authclient.SignupRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		user := f.user
		f.mu.Unlock()
		user.Email = req.Email
		user.Role = req.Role
		writeJSON(w, authclient.TokenResponse{
			AccessToken: "tok-signup", TokenType: "bearer", ExpiresIn: 3600, User: user,
		})
	})
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		f.mu.Lock()
		user := f.user
		f.mu.Unlock()
		writeJSON(w, authclient.TokenResponse{
			AccessToken: "tok-login", TokenType: "bearer", ExpiresIn: 3600, User: user,
		})
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"missing credentials"}`))
			return
		}
		f.mu.Lock()
		user := f.user
		f.mu.Unlock()
		writeJSON(w, user)
	})
	mux.HandleFunc("GET /api/v1/auth/children", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		writeJSON(w, authclient.ChildList{
			Children: []authclient.User{
				{ID: 2, Email: "kid@example.com", Role: authclient.RoleChild, CreatedAt: "2026-08-02T09:00:00Z"},
			},
			Total:      1,
			MaxAllowed: 5,
		})
	})
	mux.HandleFunc("POST /api/v1/auth/link-child", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		var req authclient.LinkChildRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, authclient.Link{ID: 7, ParentID: 1, ChildID: req.ChildID, LinkedAt: "2026-08-02T09:00:00Z"})
	})
	mux.HandleFunc("DELETE /api/v1/auth/link-child/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		writeJSON(w, authclient.Message{Message: "child unlinked"})
	})
	mux.HandleFunc("GET /api/v1/auth/health", func(w http.ResponseWriter, r *http.Request) {
		f.count(r)
		f.mu.Lock()
		failing := f.healthFailures > 0
		if failing {
			f.healthFailures--
		}
		f.mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"detail":"warming up"}`))
			return
		}
		writeJSON(w, authclient.HealthStatus{Status: "ok", Service: "auth"})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAuth) count(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[r.Method+" "+r.URL.Path]++
}

func (f *fakeAuth) hitCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeAuth) setUser(user authclient.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = user
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// cli runs the root command against the fake service. State and config
// dirs are redirected to per-test temp dirs, so sessions persist across
// invocations within one test and never leak between tests.
type cli struct {
	apiURL string
}

func newCLI(t *testing.T, f *fakeAuth) *cli {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &cli{apiURL: f.srv.URL}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--api-url", c.apiURL))
	err := cmd.Execute()
	return buf.String(), err
}

func (c *cli) login(t *testing.T) {
	t.Helper()
	out, err := c.run(t, "login", "--email", "parent@example.com", "--password", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v (output: %s)", err, out)
	}
	if !strings.Contains(out, "Logged in as") {
		t.Fatalf("unexpected login output: %s", out)
	}
}
