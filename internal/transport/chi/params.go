package chi

import (
	"errors"
	"fmt"
)

// errBadParam signals a query parameter that could not be bound to its type.
var errBadParam = errors.New("invalid query parameter")

// paramError names the parameter that failed to bind.
type paramError struct {
	Name string
	Err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s %q: %v", errBadParam, e.Name, e.Err)
}

func (e *paramError) Unwrap() error { return errBadParam }

func badParam(name string, err error) error {
	return &paramError{Name: name, Err: err}
}
