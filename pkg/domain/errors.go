package domain

import (
	"errors"
	"fmt"
)

// ErrMissingSeverity is returned when an instrumentation call site omits its severity.
var ErrMissingSeverity = errors.New("missing severity")

// ErrInvalidSeverity is returned when a severity is out of range, or NONE is used as an event severity.
var ErrInvalidSeverity = errors.New("invalid severity")

// ErrMissingMessage is returned when an instrumentation call site omits its message.
var ErrMissingMessage = errors.New("missing message")

// ConfigError reports a malformed instrumentation configuration.
// It is raised where the instrumentation is constructed, never at emission time.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid instrumentation config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
