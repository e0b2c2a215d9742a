package handler

import (
	"github.com/philipp01105/logchain/core"
)

// Handler defines the interface for chain handlers
type Handler interface {
	// Severity returns the severity this handler claims
	Severity() core.Severity

	// Handle offers a message to the handler. A handler that does not claim
	// the message must return core.Forwarded and a nil error without side
	// effects; the chain then moves on to the next handler.
	Handle(msg core.Message) (core.Outcome, error)
}

// claims reports whether h is responsible for msg
func claims(h Handler, msg core.Message) bool {
	return h.Severity() == msg.Severity()
}
