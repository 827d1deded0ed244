// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 EduGuard Contributors

package authclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages used when the server supplies none.
const (
	genericFailureMessage = "request failed"
	unreachableMessage    = "cannot reach the server, check your network connection"
)

// APIError is the normalized failure for every gateway operation.
// StatusCode is the HTTP status of a server rejection, or 0 when no
// response reached us (transport failure or a request that was never
// sent). ErrorCode carries the server's machine-readable error_code
// when one was supplied.
type APIError struct {
	Message    string
	StatusCode int
	ErrorCode  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s (status %d, code %s)", e.Message, e.StatusCode, e.ErrorCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether the server rejected the credential.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
