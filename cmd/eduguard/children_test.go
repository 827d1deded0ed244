// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduguard/eduguard-go/internal/authclient"
	"github.com/eduguard/eduguard-go/pkg/errutil"
)

func TestChildrenCmd(t *testing.T) {
	t.Run("list shows linked children", func(t *testing.T) {
		f := newFakeAuth(t)
		c := newCLI(t, f)
		c.login(t)

		out, err := c.run(t, "children", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "kid@example.com")
		assert.Contains(t, out, "1 of 5 linked")
	})

	t.Run("link reports the new linkage", func(t *testing.T) {
		f := newFakeAuth(t)
		c := newCLI(t, f)
		c.login(t)

		out, err := c.run(t, "children", "link", "42")
		require.NoError(t, err)
		assert.Contains(t, out, "Linked child 42")
	})

	t.Run("unlink prints the service message", func(t *testing.T) {
		f := newFakeAuth(t)
		c := newCLI(t, f)
		c.login(t)

		out, err := c.run(t, "children", "unlink", "42")
		require.NoError(t, err)
		assert.Contains(t, out, "child unlinked")
	})

	t.Run("non-numeric child id is rejected locally", func(t *testing.T) {
		f := newFakeAuth(t)
		c := newCLI(t, f)
		c.login(t)

		_, err := c.run(t, "children", "link", "bobby")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "INVALID_CHILD_ID")
		assert.Zero(t, f.hitCount("POST /api/v1/auth/link-child"))
	})

	t.Run("child accounts cannot manage children", func(t *testing.T) {
		f := newFakeAuth(t)
		f.setUser(authclient.User{ID: 2, Email: "kid@example.com", Role: authclient.RoleChild})
		c := newCLI(t, f)
		c.login(t)

		_, err := c.run(t, "children", "list")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "PARENT_ROLE_REQUIRED")
		assert.Zero(t, f.hitCount("GET /api/v1/auth/children"))
	})

	t.Run("requires a session", func(t *testing.T) {
		f := newFakeAuth(t)
		c := newCLI(t, f)

		_, err := c.run(t, "children", "list")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "NOT_LOGGED_IN")
	})
}
