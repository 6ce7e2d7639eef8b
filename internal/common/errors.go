// Package common defines shared constants and sentinel errors used across
// the cirrus client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Credential store errors.
	ErrNotFound = errors.New("not found")

	// Session lifecycle errors.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRefreshFailed        = errors.New("session refresh failed")
	ErrNoRefreshToken       = errors.New("no refresh token available")
	ErrUnauthenticated      = errors.New("unauthenticated")

	// Transport and payload errors.
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("malformed response")
)
