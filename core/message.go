package core

import "fmt"

// Message is an immutable log record: a severity and its text.
// The zero value is a Warning with empty text.
type Message struct {
	severity Severity
	text     string
}

// NewMessage creates a Message. It fails only when severity is outside
// the closed set.
func NewMessage(severity Severity, text string) (Message, error) {
	if !severity.Valid() {
		return Message{}, fmt.Errorf("%w: %d", ErrInvalidSeverity, int8(severity))
	}
	return Message{severity: severity, text: text}, nil
}

// MustMessage is like NewMessage but panics on an invalid severity.
// Intended for fixed literals.
func MustMessage(severity Severity, text string) Message {
	m, err := NewMessage(severity, text)
	if err != nil {
		panic(err)
	}
	return m
}

// Severity returns the message classification
func (m Message) Severity() Severity {
	return m.severity
}

// Text returns the message payload
func (m Message) Text() string {
	return m.text
}

// String implements fmt.Stringer
func (m Message) String() string {
	return m.severity.String() + ": " + m.text
}
