package domain

import "fmt"

// AuthError signals a rejected or expired API token. It is a configuration
// problem and is never retried.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("gitlab authentication failed: %s", e.Reason)
}

// RateLimitError signals that GitLab throttled the request. The caller may
// back off and retry manually; the client never retries on its own.
type RateLimitError struct {
	Reason string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("gitlab rate limit hit: %s", e.Reason)
}

// NetworkError signals a transient connectivity failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gitlab unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError signals that the configured group path or root epic IID
// does not resolve.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Resource)
}
