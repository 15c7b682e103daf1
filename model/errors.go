package model

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrConfiguration is matched by every ConfigurationError using errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ErrInvalidState is matched by every InvalidStateError using errors.Is.
var ErrInvalidState = errors.New("invalid state")

// ConfigurationError reports input or configuration which prevents any
// scheduling work from starting.
type ConfigurationError struct {
	Err error
}

// Configf returns a ConfigurationError with a formatted reason.
func Configf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Err: fmt.Errorf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return ErrConfiguration.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidStateError reports an operation on a policy in the wrong state,
// such as calling Assign twice without re-initializing.
type InvalidStateError struct {
	Policy string
	Op     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrInvalidState, e.Policy, e.Op, e.Reason)
}

// Is reports whether target is ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// asConfigError wraps a collection of validation errors, or returns nil
// when there are none.
func asConfigError(errs *multierror.Error) error {
	if errs.ErrorOrNil() == nil {
		return nil
	}
	errs.ErrorFormat = listFormat
	return &ConfigurationError{Err: errs}
}

func listFormat(es []error) string {
	if len(es) == 1 {
		return es[0].Error()
	}
	s := fmt.Sprintf("%d problems:", len(es))
	for _, e := range es {
		s += " [" + e.Error() + "]"
	}
	return s
}
