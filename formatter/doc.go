// Package formatter renders log messages into the line format written by
// the sinks.
//
// TextFormatter produces "{Kind}: {text}\n", where Kind is the severity
// name. It implements both Formatter, which returns a fresh byte slice,
// and WriterFormatter, which writes straight into an io.Writer using a
// pooled buffer so the whole line reaches the writer in one Write call.
package formatter
