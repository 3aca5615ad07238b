// Package login provides HTTP handlers for admin authentication.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be
	// parsed.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when the provided username and/or
	// password are not valid. Unknown usernames and wrong passwords share
	// this error so the two cases stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
