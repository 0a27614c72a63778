package state

import "errors"

// Common state store errors
var (
	// ErrNotFound indicates that nothing was stored under the requested name
	ErrNotFound = errors.New("collection not found")

	// ErrClosed is returned by Get and Put after the store was closed
	ErrClosed = errors.New("state store is closed")
)
