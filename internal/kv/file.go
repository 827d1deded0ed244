// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package kv

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"
)

// File is a Store backed by a single JSON file. Every mutation rewrites
// the file through a temp file and rename, so batches are atomic and a
// crash mid-write never leaves a torn record on disk. The file is
// created with 0600 permissions since it holds bearer credentials.
type File struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFile opens (or initializes) a file-backed store at path.
// A missing file is an empty store. A file that exists but does not
// parse as a JSON object fails with code KV_CORRUPT; callers decide
// whether corruption means "absent" for their domain.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, oops.Code("KV_READ_FAILED").
			With("path", path).
			Wrap(err)
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, oops.Code("KV_CORRUPT").
			With("path", path).
			Wrap(err)
	}
	return f, nil
}

// Get returns the value for key and whether it was present.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Set durably stores a single key-value pair.
func (f *File) Set(key, value string) error {
	return f.SetMany(map[string]string{key: value})
}

// SetMany durably stores all pairs as a single atomic batch.
func (f *File) SetMany(pairs map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for k, v := range pairs {
		f.data[k] = v
	}
	return f.flush()
}

// Delete removes the given keys. Absent keys are not an error.
func (f *File) Delete(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := false
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.flush()
}

// flush rewrites the backing file. Caller must hold f.mu.
func (f *File) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "marshal").
			Wrap(err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".kv-*")
	if err != nil {
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "create temp file").
			Wrap(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "write temp file").
			Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "close temp file").
			Wrap(err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "chmod temp file").
			Wrap(err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return oops.Code("KV_WRITE_FAILED").
			With("path", f.path).
			With("operation", "rename temp file").
			Wrap(err)
	}
	return nil
}
