package handler

import (
	"errors"
	"fmt"
)

var (
	// ErrSinkUnavailable matches every *SinkUnavailableError
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrFatalCondition matches every *FatalConditionError
	ErrFatalCondition = errors.New("fatal condition")
	// ErrUnrecognizedClassification matches every *UnrecognizedClassificationError
	ErrUnrecognizedClassification = errors.New("unrecognized classification")
	// ErrUnhandled is returned when no handler in a chain claimed a message
	ErrUnhandled = errors.New("unhandled log message")
	// ErrClosed is the cause of a SinkUnavailableError from a closed handler
	ErrClosed = errors.New("handler closed")
)

// SinkUnavailableError reports that a handler claimed a message but could
// not reach its sink. The failure is scoped to that one message.
type SinkUnavailableError struct {
	// Sink names the target: "stdout", "stderr", a file path, or
	// "writer" for any other io.Writer
	Sink string
	Err  error
}

func (e *SinkUnavailableError) Error() string {
	return fmt.Sprintf("unable to write log to %s: %v", e.Sink, e.Err)
}

// Unwrap exposes both ErrSinkUnavailable and the underlying cause
func (e *SinkUnavailableError) Unwrap() []error {
	return []error{ErrSinkUnavailable, e.Err}
}

// FatalConditionError is raised by FatalErrorHandler
type FatalConditionError struct {
	Text string
}

func (e *FatalConditionError) Error() string {
	return "Fatal error: " + e.Text
}

func (e *FatalConditionError) Unwrap() error {
	return ErrFatalCondition
}

// UnrecognizedClassificationError is raised by UnknownHandler
type UnrecognizedClassificationError struct {
	Text string
}

func (e *UnrecognizedClassificationError) Error() string {
	return "Unknown log message: " + e.Text
}

func (e *UnrecognizedClassificationError) Unwrap() error {
	return ErrUnrecognizedClassification
}

// IsTerminal reports whether err is one of the error-terminating
// classifications (fatal or unrecognized)
func IsTerminal(err error) bool {
	return errors.Is(err, ErrFatalCondition) || errors.Is(err, ErrUnrecognizedClassification)
}
