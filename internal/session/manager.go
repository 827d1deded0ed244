// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package session derives application-wide authentication state from
// stored credentials and coordinates the operations that change it.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/credstore"
	"github.com/eduguard/eduguard-go/pkg/errutil"
)

// Gateway is the slice of the auth API the manager needs. The manager
// owns credential attachment on its gateway instance exclusively.
type Gateway interface {
	Signup(ctx context.Context, req authclient.SignupRequest) (*authclient.TokenResponse, error)
	Login(ctx context.Context, req authclient.LoginRequest) (*authclient.TokenResponse, error)
	GetMe(ctx context.Context) (*authclient.User, error)
	SetAuthToken(token string)
}

// Manager orchestrates restore, signup, login, logout, and user
// refresh, keeping the in-memory state, the durable credential record,
// and the gateway credential consistent with each other.
type Manager struct {
	store  *credstore.Store
	api    Gateway
	logger *slog.Logger
	now    func() time.Time

	broadcaster *Broadcaster

	mu       sync.Mutex
	state    State
	inflight bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger overrides the logger used for suppressed errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the clock used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a Manager. The initial state is unauthenticated
// and loading until Restore settles.
func NewManager(store *credstore.Store, api Gateway, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		api:         api,
		logger:      slog.Default(),
		now:         time.Now,
		broadcaster: NewBroadcaster(),
		state:       State{Loading: true},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentState returns a snapshot of the authentication state.
func (m *Manager) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe returns a channel receiving state snapshots after every
// completed transition. See Broadcaster.Subscribe for the ordering
// guarantee.
func (m *Manager) Subscribe() chan State {
	return m.broadcaster.Subscribe()
}

// Unsubscribe removes and closes a subscription channel.
func (m *Manager) Unsubscribe(ch chan State) {
	m.broadcaster.Unsubscribe(ch)
}

// Restore reconstructs the session from durable storage. A present,
// unexpired record attaches its token to the gateway and authenticates;
// anything else, including storage failures, settles unauthenticated.
// Restore never fails: startup must always reach a usable state.
func (m *Manager) Restore() {
	rec := m.store.ReadSession()
	if rec != nil && !Expired(rec.ExpiresAt, m.now()) {
		m.api.SetAuthToken(rec.AccessToken)
		user := rec.User
		m.setState(State{
			Authenticated: true,
			User:          &user,
			Token:         rec.AccessToken,
		})
		return
	}

	// Absent, expired, or unreadable: scrub whatever is left behind.
	if err := m.store.Clear(); err != nil {
		errutil.LogError(m.logger, "failed to clear stale credentials during restore", err)
	}
	m.setState(State{})
}

// Signup registers a new account and establishes its session.
func (m *Manager) Signup(ctx context.Context, req authclient.SignupRequest) error {
	if err := m.begin(); err != nil {
		return err
	}
	resp, err := m.api.Signup(ctx, req)
	if err != nil {
		m.settleFailure()
		return err
	}
	return m.completeAuth(resp)
}

// Login authenticates an existing account and establishes its session.
func (m *Manager) Login(ctx context.Context, req authclient.LoginRequest) error {
	if err := m.begin(); err != nil {
		return err
	}
	resp, err := m.api.Login(ctx, req)
	if err != nil {
		m.settleFailure()
		return err
	}
	return m.completeAuth(resp)
}

// completeAuth persists a successful token response and moves the
// state to authenticated. A persistence failure fails the whole
// operation: an authentication event that is not durable must not
// appear to succeed.
func (m *Manager) completeAuth(resp *authclient.TokenResponse) error {
	expiresIn := time.Duration(resp.ExpiresIn) * time.Second
	if err := m.store.WriteSession(resp.AccessToken, expiresIn, resp.User); err != nil {
		m.settleFailure()
		return err
	}

	m.api.SetAuthToken(resp.AccessToken)
	user := resp.User
	m.mu.Lock()
	m.inflight = false
	m.state = State{
		Authenticated: true,
		User:          &user,
		Token:         resp.AccessToken,
	}
	snapshot := m.state
	m.mu.Unlock()
	m.broadcaster.Publish(snapshot)
	return nil
}

// Logout clears the session unconditionally. Storage failures are
// logged and swallowed: a storage error must never leave the user stuck
// in an authenticated-looking state.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		errutil.LogError(m.logger, "failed to clear stored credentials during logout", err)
	}
	m.api.SetAuthToken("")
	m.setState(State{})
}

// RefreshUser re-fetches the current user and merges it into the state,
// leaving the token untouched. A no-op without a token in memory. A 401
// means the credential is dead: the session is logged out before the
// error is returned. Other failures are returned with no side effects.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	token := m.state.Token
	m.mu.Unlock()
	if token == "" {
		return nil
	}

	if err := m.beginQuiet(); err != nil {
		return err
	}

	user, err := m.api.GetMe(ctx)
	if err != nil {
		m.endQuiet()
		if apiErr, ok := authclient.AsAPIError(err); ok && apiErr.IsUnauthorized() {
			m.Logout()
		}
		return err
	}

	if err := m.store.WriteUser(*user); err != nil {
		m.endQuiet()
		return err
	}

	m.mu.Lock()
	m.inflight = false
	m.state.User = user
	snapshot := m.state
	m.mu.Unlock()
	m.broadcaster.Publish(snapshot)
	return nil
}

// begin claims the single in-flight slot and raises Loading.
// Overlapping operations are rejected deterministically instead of
// racing last-write-wins on shared state.
func (m *Manager) begin() error {
	m.mu.Lock()
	if m.inflight {
		m.mu.Unlock()
		return oops.Code("SESSION_BUSY").
			Errorf("another session operation is already in flight")
	}
	m.inflight = true
	m.state.Loading = true
	snapshot := m.state
	m.mu.Unlock()
	m.broadcaster.Publish(snapshot)
	return nil
}

// beginQuiet claims the in-flight slot without toggling Loading; user
// refresh is a background concern, not a blocking UI phase.
func (m *Manager) beginQuiet() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflight {
		return oops.Code("SESSION_BUSY").
			Errorf("another session operation is already in flight")
	}
	m.inflight = true
	return nil
}

// endQuiet releases the in-flight slot without a state transition.
func (m *Manager) endQuiet() {
	m.mu.Lock()
	m.inflight = false
	m.mu.Unlock()
}

// settleFailure drops Loading and releases the in-flight slot, leaving
// the authentication state exactly as it was before the operation.
func (m *Manager) settleFailure() {
	m.mu.Lock()
	m.inflight = false
	m.state.Loading = false
	snapshot := m.state
	m.mu.Unlock()
	m.broadcaster.Publish(snapshot)
}

// setState replaces the state and publishes the snapshot.
func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	m.broadcaster.Publish(state)
}
