package domain

import "errors"

var (
	// ErrLoginFailed is the default login error when the upstream rejects
	// the attempt without a usable message body.
	ErrLoginFailed = errors.New("Login failed")

	// ErrRegistrationFailed is the register counterpart.
	ErrRegistrationFailed = errors.New("Registration failed")

	// ErrNotAuthenticated is returned by operations that need a live
	// session when the manager is anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUpstreamUnavailable marks transport-level failures talking to the
	// NestHome API.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
