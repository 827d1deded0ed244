// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package session

import "github.com/eduguard/eduguard-go/internal/authclient"

// State is the application-wide authentication state. Authenticated
// implies both User and Token are set; the inverse holds when it is
// false. Loading is true only before startup restoration settles or
// while a signup or login call is in flight.
type State struct {
	Authenticated bool
	Loading       bool
	User          *authclient.User
	Token         string
}

// IsParent reports whether the current user holds the parent role.
func (s State) IsParent() bool {
	return s.User != nil && s.User.IsParent()
}

// IsChild reports whether the current user holds the child role.
func (s State) IsChild() bool {
	return s.User != nil && s.User.IsChild()
}
