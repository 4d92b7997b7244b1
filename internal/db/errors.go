package db

import (
	"errors"
	"strconv"
)

// ErrKeyNotFound is returned when a lookup matches nothing.
var ErrKeyNotFound = errors.New("db: key not found")

// Op names for error context.
const (
	OpSearch       = "search"
	OpPing         = "ping"
	OpCollections  = "select collections"
	OpArticles     = "select articles"
	OpResolve      = "resolve id"
	OpIncr         = "INCR"
	OpExpire       = "EXPIRE"
	OpDecodeResult = "decode"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// StatusError is a non-2xx answer from an HTTP backend.
type StatusError struct {
	Status int
	// Reason is the backend's error type, never its full payload.
	Reason string
}

func (e *StatusError) Error() string {
	if e.Reason == "" {
		return "status " + strconv.Itoa(e.Status)
	}
	return "status " + strconv.Itoa(e.Status) + ": " + e.Reason
}
