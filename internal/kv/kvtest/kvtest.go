// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package kvtest provides an in-memory kv.Store for tests.
package kvtest

import "sync"

// Memory is an in-memory kv.Store. Writes and deletes can be forced to
// fail to exercise storage error paths.
type Memory struct {
	mu sync.Mutex

	// SetErr, if non-nil, is returned by Set and SetMany.
	SetErr error
	// DeleteErr, if non-nil, is returned by Delete.
	DeleteErr error

	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Seed replaces the store contents with the given pairs.
func (m *Memory) Seed(pairs map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string, len(pairs))
	for k, v := range pairs {
		m.data[k] = v
	}
}

// Snapshot returns a copy of the current contents.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// Get returns the value for key and whether it was present.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores a single key-value pair.
func (m *Memory) Set(key, value string) error {
	return m.SetMany(map[string]string{key: value})
}

// SetMany stores all pairs as one batch.
func (m *Memory) SetMany(pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	for k, v := range pairs {
		m.data[k] = v
	}
	return nil
}

// Delete removes the given keys.
func (m *Memory) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
