package rahkaran

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConfigError reports an invalid client setup, e.g. missing credentials.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rahkaran: invalid configuration: %s: %v", e.Reason, e.Err)
	}
	return "rahkaran: invalid configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AuthError reports a failed login handshake.
type AuthError struct {
	Username string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("rahkaran: authentication failed for %q: %v", e.Username, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ServerError reports a response with a status outside 2xx. Body holds the raw
// response body; Summary is a readable extract of it.
type ServerError struct {
	Method  string
	URL     string
	Status  int
	Body    string
	Summary string
}

func (e *ServerError) Error() string {
	msg := e.Summary
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("rahkaran: %s %s returned status %d: %s", e.Method, e.URL, e.Status, msg)
}

// Unauthorized reports whether the session was rejected (401 or 403).
func (e *ServerError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// ClientSide reports a 4xx status.
func (e *ServerError) ClientSide() bool { return e.Status >= 400 && e.Status < 500 }

// ServerSide reports a 5xx status.
func (e *ServerError) ServerSide() bool { return e.Status >= 500 }

// TransportError reports a network-level failure; no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rahkaran: %s %s: transport error: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request timed out.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ParseError reports a successful response whose body is not the expected JSON.
type ParseError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rahkaran: decode response of %s (status %d): %v", e.URL, e.Status, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
