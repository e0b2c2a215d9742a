// Package handler provides the Handler interface and the four built-in
// handlers a log chain is made of.
//
// Each handler claims exactly one severity. Offered a message of any
// other severity it returns core.Forwarded without side effects, and the
// owning chain moves on to the next handler.
//
// Built-in handlers:
//
//   - WarningHandler writes "Warning: {text}" to an io.Writer (default: stdout).
//   - ErrorHandler appends "Error: {text}" to a file, opening and closing
//     it on every call. Appends to the same path are serialized across all
//     handlers in the process, and optionally across processes through an
//     advisory lock file.
//   - FatalErrorHandler terminates dispatch with a *FatalConditionError.
//   - UnknownHandler terminates dispatch with an
//     *UnrecognizedClassificationError.
//
// Sink failures are returned as *SinkUnavailableError and only affect the
// message being handled. All error types match their sentinel with
// errors.Is.
package handler
