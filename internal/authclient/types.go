// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package authclient

// Role identifies the kind of account a user holds.
type Role string

// Account roles.
const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleParent || r == RoleChild
}

// User is the service's user record as returned over the wire.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// IsParent reports whether the user holds the parent role.
func (u User) IsParent() bool { return u.Role == RoleParent }

// IsChild reports whether the user holds the child role.
func (u User) IsChild() bool { return u.Role == RoleChild }

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the success body for signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
	User        User   `json:"user"`
}

// LinkChildRequest is the body for POST /auth/link-child.
type LinkChildRequest struct {
	ChildID int64 `json:"child_id"`
}

// Link is a parent-child account linkage record.
type Link struct {
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id"`
	ChildID  int64  `json:"child_id"`
	LinkedAt string `json:"linked_at"`
}

// ChildList is the success body for GET /auth/children.
type ChildList struct {
	Children   []User `json:"children"`
	Total      int    `json:"total"`
	MaxAllowed int    `json:"max_allowed"`
}

// Message is the success body for operations that only confirm.
type Message struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// HealthStatus is the success body for GET /auth/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
