package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse signals malformed query syntax.
	ErrParse = errors.New("parse error")
	// ErrUnknownOption signals a search key outside the supported vocabulary.
	ErrUnknownOption = errors.New("unknown search option")
	// ErrInvalidValue signals an enumerated option value with no match.
	ErrInvalidValue = errors.New("invalid option value")
	// ErrPagination signals a page or limit below 1.
	ErrPagination = errors.New("invalid pagination")
	// ErrEngine signals a failed or malformed search engine round-trip.
	ErrEngine = errors.New("search engine error")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// ParseError describes why a raw query could not be tokenized.
type ParseError struct {
	Query  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s: %s in %q", ErrParse, e.Reason, e.Query)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError creates a parse error.
func NewParseError(query, reason string) error {
	return &ParseError{Query: query, Reason: reason}
}

// UnknownOptionError names the offending key and the supported keys.
type UnknownOptionError struct {
	Key   string
	Valid []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s %q, valid options are %s", ErrUnknownOption, e.Key, strings.Join(e.Valid, ", "))
}

func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// InvalidValueError names the offending value and the accepted choices.
// Options with an open value space leave Valid empty and set Want instead.
type InvalidValueError struct {
	Option string
	Value  string
	Valid  []string
	Want   string
}

func (e *InvalidValueError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("%q is not a valid %s, expected %s", e.Value, e.Option, e.Want)
	}
	return fmt.Sprintf("%q is not a valid %s, possible choices are %s",
		e.Value, e.Option, strings.Join(e.Valid, ", "))
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// PaginationError names the offending pagination parameter.
type PaginationError struct {
	Param string
	Value int
	// Reason overrides the default "must be at least 1".
	Reason string
}

func (e *PaginationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %s, got %d", ErrPagination, e.Param, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s must be at least 1, got %d", ErrPagination, e.Param, e.Value)
}

func (e *PaginationError) Unwrap() error { return ErrPagination }

// EngineError wraps a failed engine call. Status is the engine HTTP status when known.
type EngineError struct {
	Op     string
	Status int
	Err    error
}

func (e *EngineError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s returned status %d: %v", ErrEngine, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrEngine, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *EngineError) Unwrap() []error { return []error{ErrEngine, e.Err} }

// NewEngineError creates an engine error for the given operation.
func NewEngineError(op string, status int, err error) error {
	return &EngineError{Op: op, Status: status, Err: err}
}

// NotFoundError names what was looked up.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " " + ErrNotFound.Error() }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
