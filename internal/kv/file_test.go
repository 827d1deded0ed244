// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package kv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduguard/eduguard-go/internal/kv"
	"github.com/eduguard/eduguard-go/pkg/errutil"
)

func openTemp(t *testing.T) (*kv.File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	f, err := kv.OpenFile(path)
	require.NoError(t, err)
	return f, path
}

func TestOpenFile(t *testing.T) {
	t.Run("missing file is an empty store", func(t *testing.T) {
		f, _ := openTemp(t)
		_, ok := f.Get("anything")
		assert.False(t, ok)
	})

	t.Run("reopens persisted contents", func(t *testing.T) {
		f, path := openTemp(t)
		require.NoError(t, f.SetMany(map[string]string{"a": "1", "b": "2"}))

		reopened, err := kv.OpenFile(path)
		require.NoError(t, err)
		v, ok := reopened.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
		v, ok = reopened.Get("b")
		assert.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("corrupt file fails with KV_CORRUPT", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		require.NoError(t, os.WriteFile(path, []byte("not json{"), 0o600))

		_, err := kv.OpenFile(path)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "KV_CORRUPT")
	})
}

func TestFile_SetMany(t *testing.T) {
	t.Run("batch is visible after write", func(t *testing.T) {
		f, _ := openTemp(t)
		require.NoError(t, f.SetMany(map[string]string{"x": "1", "y": "2", "z": "3"}))

		for k, want := range map[string]string{"x": "1", "y": "2", "z": "3"} {
			v, ok := f.Get(k)
			assert.True(t, ok, "key %q missing", k)
			assert.Equal(t, want, v)
		}
	})

	t.Run("write failure reports KV_WRITE_FAILED", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", "store.json")
		// Parent directory intentionally absent so the temp file
		// cannot be created.
		f, err := kv.OpenFile(path)
		require.NoError(t, err)

		err = f.Set("k", "v")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "KV_WRITE_FAILED")
	})

	t.Run("backing file has 0600 permissions", func(t *testing.T) {
		f, path := openTemp(t)
		require.NoError(t, f.Set("k", "v"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestFile_Delete(t *testing.T) {
	t.Run("removes keys durably", func(t *testing.T) {
		f, path := openTemp(t)
		require.NoError(t, f.SetMany(map[string]string{"a": "1", "b": "2"}))
		require.NoError(t, f.Delete("a"))

		reopened, err := kv.OpenFile(path)
		require.NoError(t, err)
		_, ok := reopened.Get("a")
		assert.False(t, ok)
		_, ok = reopened.Get("b")
		assert.True(t, ok)
	})

	t.Run("absent keys are not an error", func(t *testing.T) {
		f, _ := openTemp(t)
		assert.NoError(t, f.Delete("never-written", "also-missing"))
	})
}
