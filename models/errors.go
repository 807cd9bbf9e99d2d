// munui/models/errors.go
package models

import "fmt"

// The store reports failures through this taxonomy so the HTTP layer can map
// each class to a status code with errors.As. Messages are client-facing.

// ValidationError marks malformed or missing required input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError marks an admin credential mismatch.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// NotFoundError marks a reference to an unknown board or post.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ReferentialError marks a reply targeting a post that does not exist.
type ReferentialError struct {
	Msg string
}

func (e *ReferentialError) Error() string { return e.Msg }

// StoreError wraps an underlying persistence failure. It is never swallowed;
// callers surface it as a server-side error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
