package handler

import (
	"github.com/philipp01105/logchain/core"
)

// FatalErrorHandler terminates dispatch for FatalError messages.
// It has no sink; the message text travels in the returned error.
type FatalErrorHandler struct {
	_ byte // distinct allocations need distinct addresses
}

// NewFatalErrorHandler creates a new fatal error handler
func NewFatalErrorHandler() *FatalErrorHandler {
	return &FatalErrorHandler{}
}

// Severity returns core.FatalError
func (h *FatalErrorHandler) Severity() core.Severity {
	return core.FatalError
}

// Handle returns core.Fatal with a *FatalConditionError for FatalError
// messages and forwards everything else.
func (h *FatalErrorHandler) Handle(msg core.Message) (core.Outcome, error) {
	if !claims(h, msg) {
		return core.Forwarded, nil
	}
	return core.Fatal, &FatalConditionError{Text: msg.Text()}
}

// UnknownHandler is the chain terminator for the Unknown classification
type UnknownHandler struct {
	_ byte // distinct allocations need distinct addresses
}

// NewUnknownHandler creates a new unknown handler
func NewUnknownHandler() *UnknownHandler {
	return &UnknownHandler{}
}

// Severity returns core.Unknown
func (h *UnknownHandler) Severity() core.Severity {
	return core.Unknown
}

// Handle returns core.Fatal with an *UnrecognizedClassificationError for
// Unknown messages and forwards everything else.
func (h *UnknownHandler) Handle(msg core.Message) (core.Outcome, error) {
	if !claims(h, msg) {
		return core.Forwarded, nil
	}
	return core.Fatal, &UnrecognizedClassificationError{Text: msg.Text()}
}
