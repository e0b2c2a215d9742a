// Package core defines the shared types used across logchain.
//
// It provides the Severity type that classifies a log message, the
// immutable Message value that travels through a handler chain, and the
// Outcome type a chain resolves to.
//
// Severity is a closed set: Warning, Error, FatalError and Unknown.
// Values outside the set are rejected when a Message is constructed, so
// a chain never has to deal with them while dispatching.
//
// Message has no exported fields. Once built with NewMessage it can be
// copied and shared between goroutines freely.
package core
