package core

// Outcome is the result of offering a message to a handler or a chain
type Outcome uint8

const (
	// Consumed means a handler claimed the message and ran its side effect
	Consumed Outcome = iota
	// Forwarded means a handler declined the message. A chain never
	// returns it to its caller.
	Forwarded
	// Unhandled means the end of the chain was reached without a match
	Unhandled
	// Fatal means a handler terminated dispatch with an error-terminating
	// classification
	Fatal
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Consumed:
		return "Consumed"
	case Forwarded:
		return "Forwarded"
	case Unhandled:
		return "Unhandled"
	case Fatal:
		return "Fatal"
	default:
		return "Outcome(?)"
	}
}
