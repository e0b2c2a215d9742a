package core

import (
	"errors"
	"fmt"
	"strings"
)

// Severity represents the classification of a log message
type Severity int8

const (
	// Warning is written to the console sink
	Warning Severity = iota
	// Error is appended to the file sink
	Error
	// FatalError terminates dispatch with a fatal condition
	FatalError
	// Unknown terminates dispatch as an unrecognized classification
	Unknown
)

// ErrInvalidSeverity is returned for values outside the closed Severity set
var ErrInvalidSeverity = errors.New("invalid severity")

// pre-computed names, indexed by Severity
var severityNames = [...]string{
	Warning:    "Warning",
	Error:      "Error",
	FatalError: "FatalError",
	Unknown:    "Unknown",
}

// Severities returns every member of the closed set in declaration order
func Severities() []Severity {
	return []Severity{Warning, Error, FatalError, Unknown}
}

// Valid reports whether s is one of the four known severities
func (s Severity) Valid() bool {
	return s >= Warning && s <= Unknown
}

// String returns the string representation of the severity
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int8(s))
	}
	return severityNames[s]
}

// ParseSeverity converts a string to a Severity.
// Matching is case-insensitive and accepts a few short forms.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return Warning, nil
	case "error", "err":
		return Error, nil
	case "fatalerror", "fatal_error", "fatal":
		return FatalError, nil
	case "unknown":
		return Unknown, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}
