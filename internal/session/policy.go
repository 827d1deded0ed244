// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package session

import "time"

// ExpiryBuffer is the safety margin subtracted from a token's expiry
// before comparison. A token inside the buffer is treated as already
// expired so a request never races server-side expiry mid-flight.
const ExpiryBuffer = 5 * time.Minute

// Expired reports whether a token expiring at expiresAt should be
// considered expired at now, applying ExpiryBuffer.
func Expired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt.Add(-ExpiryBuffer))
}

// Remaining returns the time left until expiresAt, never negative.
// The buffer is not applied here; this is the raw wall-clock remainder.
func Remaining(expiresAt, now time.Time) time.Duration {
	if remaining := expiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
