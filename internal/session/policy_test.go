// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/eduguard/eduguard-go/internal/session"
)

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestExpired(t *testing.T) {
	expiresAt := baseTime.Add(time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "fresh token is not expired",
			now:  baseTime,
			want: false,
		},
		{
			name: "just before the buffer boundary",
			now:  expiresAt.Add(-session.ExpiryBuffer - time.Millisecond),
			want: false,
		},
		{
			name: "exactly at the buffer boundary",
			now:  expiresAt.Add(-session.ExpiryBuffer),
			want: true,
		},
		{
			name: "inside the buffer",
			now:  expiresAt.Add(-time.Minute),
			want: true,
		},
		{
			name: "past the raw expiry",
			now:  expiresAt.Add(time.Second),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.Expired(expiresAt, tt.now))
		})
	}
}

func TestExpired_WriteScenario(t *testing.T) {
	// A token written with a one-hour lifetime is usable immediately
	// but counts as expired one minute before its raw expiry.
	expiresAt := baseTime.Add(3600 * time.Second)

	assert.False(t, session.Expired(expiresAt, baseTime))
	assert.True(t, session.Expired(expiresAt, baseTime.Add(3600*time.Second-60*time.Second)))
}

func TestRemaining(t *testing.T) {
	expiresAt := baseTime.Add(time.Hour)

	t.Run("positive before expiry", func(t *testing.T) {
		assert.Equal(t, 30*time.Minute, session.Remaining(expiresAt, baseTime.Add(30*time.Minute)))
	})

	t.Run("zero at expiry", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), session.Remaining(expiresAt, expiresAt))
	})

	t.Run("never negative", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), session.Remaining(expiresAt, expiresAt.Add(time.Hour)))
	})
}
