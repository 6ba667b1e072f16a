package router

import "fmt"

// TransportError reports a failed HTTP exchange with the router: a
// network-layer failure or a non-200 status. It is not retried internally;
// retry policy belongs to the caller.
type TransportError struct {
	// StatusCode is the HTTP status received, or 0 when the request never
	// completed.
	StatusCode int

	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("router: request failed: %v", e.Err)
	}
	return fmt.Sprintf("router: got %d response", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthError reports a failed or missing authentication: the login page did
// not yield a session identifier, the device returned the unauthenticated
// sentinel, or an operation was attempted without authenticating first.
// The caller may re-authenticate by constructing a new client.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "router: " + e.Reason }

// ParseError reports a response body the decoders could not interpret:
// an expected embedded array is absent, too short, or holds a malformed
// numeric field. It usually means a firmware version mismatch or a
// transiently truncated page.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "router: " + e.Reason }
