package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is the ordinal logging level of an instrumentation call site.
// Ordering matters: NONE < INFO < DEBUG < ERROR.
type Severity int

const (
	// SeverityNone is only meaningful as a threshold ("log everything").
	// It is never a valid event severity.
	SeverityNone Severity = iota
	SeverityInfo
	SeverityDebug
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Valid reports whether s can be used as a threshold.
func (s Severity) Valid() bool {
	return s >= SeverityNone && s <= SeverityError
}

// ValidEvent reports whether s can be attached to an event.
func (s Severity) ValidEvent() bool {
	return s > SeverityNone && s <= SeverityError
}

// ParseSeverity accepts a severity name (case-insensitive) or its ordinal.
func ParseSeverity(text string) (Severity, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	switch text {
	case "none":
		return SeverityNone, nil
	case "info":
		return SeverityInfo, nil
	case "debug":
		return SeverityDebug, nil
	case "error":
		return SeverityError, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return SeverityNone, fmt.Errorf("%w: %q", ErrInvalidSeverity, text)
	}
	sev := Severity(n)
	if !sev.Valid() {
		return SeverityNone, fmt.Errorf("%w: %d", ErrInvalidSeverity, n)
	}
	return sev, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so YAML, TOML, JSON and
// mapstructure inputs can all spell severities by name.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
