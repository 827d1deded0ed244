// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package kv provides durable string key-value storage for credentials.
package kv

// Store is a durable, order-independent string key-value store.
// Implementations must make SetMany atomic: either every pair in the
// batch becomes durable or none does.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set durably stores a single key-value pair.
	Set(key, value string) error

	// SetMany durably stores all pairs as a single atomic batch.
	SetMany(pairs map[string]string) error

	// Delete removes the given keys. Absent keys are not an error.
	Delete(keys ...string) error
}
