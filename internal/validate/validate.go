// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

// Package validate holds the stateless form predicates run before any
// request leaves the client.
package validate

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email checks that s looks like an email address.
func Email(s string) error {
	if strings.TrimSpace(s) == "" {
		return oops.Code("VALIDATE_EMAIL_EMPTY").Errorf("email is required")
	}
	if !emailPattern.MatchString(s) {
		return oops.Code("VALIDATE_EMAIL_FORMAT").Errorf("not a valid email address")
	}
	return nil
}

// Password checks the minimum password policy: at least eight
// characters containing both a letter and a digit.
func Password(s string) error {
	if s == "" {
		return oops.Code("VALIDATE_PASSWORD_EMPTY").Errorf("password is required")
	}
	if len(s) < 8 {
		return oops.Code("VALIDATE_PASSWORD_SHORT").Errorf("password must be at least 8 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return oops.Code("VALIDATE_PASSWORD_CLASSES").Errorf("password must contain both letters and digits")
	}
	return nil
}

// PasswordConfirm checks that the confirmation matches the password.
func PasswordConfirm(password, confirm string) error {
	if confirm == "" {
		return oops.Code("VALIDATE_CONFIRM_EMPTY").Errorf("password confirmation is required")
	}
	if password != confirm {
		return oops.Code("VALIDATE_CONFIRM_MISMATCH").Errorf("passwords do not match")
	}
	return nil
}
