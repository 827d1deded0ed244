// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package credstore persists the bearer credential, its expiry, and the
// cached user record. A session is restorable only when all three keys
// are present; anything partial or malformed reads as "no session".
package credstore

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/samber/oops"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/internal/kv"
)

// Durable key names. The expiry is stored as stringified epoch
// milliseconds so the record stays readable by other tooling.
const (
	keyAccessToken = "access_token"
	keyTokenExpiry = "token_expiry"
	keyUserData    = "user_data"
)

// Record is a restorable session read back from durable storage.
type Record struct {
	AccessToken string
	ExpiresAt   time.Time
	User        authclient.User
}

// Store reads and writes credential records on a kv.Store.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to compute expiry instants.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over the given durable medium.
func New(kvs kv.Store, opts ...Option) *Store {
	s := &Store{kv: kvs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteSession persists token, expiry, and user as one atomic batch.
// The expiry instant is computed as now + expiresIn at write time. A
// failed write must surface to the caller: an authentication event that
// cannot be persisted must not look successful.
func (s *Store) WriteSession(token string, expiresIn time.Duration, user authclient.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return oops.Code("CRED_WRITE_FAILED").
			With("operation", "serialize user").
			Wrap(err)
	}

	expiresAt := s.now().Add(expiresIn)
	pairs := map[string]string{
		keyAccessToken: token,
		keyTokenExpiry: strconv.FormatInt(expiresAt.UnixMilli(), 10),
		keyUserData:    string(userJSON),
	}
	if err := s.kv.SetMany(pairs); err != nil {
		return oops.Code("CRED_WRITE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}
	return nil
}

// ReadSession returns the stored record, or nil when any of the three
// keys is absent or the stored data does not parse. Malformed data is
// absence, not an error: the caller must always be able to fall back to
// a clean logged-out state.
func (s *Store) ReadSession() *Record {
	token, ok := s.kv.Get(keyAccessToken)
	if !ok || token == "" {
		return nil
	}
	expiryRaw, ok := s.kv.Get(keyTokenExpiry)
	if !ok {
		return nil
	}
	userRaw, ok := s.kv.Get(keyUserData)
	if !ok {
		return nil
	}

	expiryMs, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		return nil
	}
	var user authclient.User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil
	}

	return &Record{
		AccessToken: token,
		ExpiresAt:   time.UnixMilli(expiryMs),
		User:        user,
	}
}

// ReadToken returns just the stored token, if present.
func (s *Store) ReadToken() (string, bool) {
	token, ok := s.kv.Get(keyAccessToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// WriteUser replaces only the cached user record, leaving the token and
// expiry untouched. Used by the refresh-user path.
func (s *Store) WriteUser(user authclient.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return oops.Code("CRED_WRITE_FAILED").
			With("operation", "serialize user").
			Wrap(err)
	}
	if err := s.kv.Set(keyUserData, string(userJSON)); err != nil {
		return oops.Code("CRED_WRITE_FAILED").
			With("operation", "persist user").
			Wrap(err)
	}
	return nil
}

// Clear removes all three keys. Absent keys are fine; Clear after Clear
// is a no-op.
func (s *Store) Clear() error {
	if err := s.kv.Delete(keyAccessToken, keyTokenExpiry, keyUserData); err != nil {
		return oops.Code("CRED_CLEAR_FAILED").
			With("operation", "remove session keys").
			Wrap(err)
	}
	return nil
}
