package engine

import (
	"errors"

	"github.com/san-kum/limbshift/internal/trial"
)

var (
	// ErrNoLayout indicates the engine was initialized without a target layout.
	ErrNoLayout = errors.New("limbshift: engine needs a target layout")

	// ErrInvalidConfig indicates an engine configuration value out of range.
	ErrInvalidConfig = errors.New("limbshift: invalid engine configuration")
)

// SelectionError wraps a failed trial selection with its inputs.
type SelectionError struct {
	Selection trial.Selection
	Trial     trial.Trial
	Wrapped   error
}

func (e *SelectionError) Error() string {
	return "select " + e.Selection.String() + " (" + e.Trial.String() + "): " + e.Wrapped.Error()
}

func (e *SelectionError) Unwrap() error {
	return e.Wrapped
}
