package handler

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/logchain/core"
	"github.com/philipp01105/logchain/formatter"
)

// WarningHandler writes Warning messages to the console
type WarningHandler struct {
	writer          io.Writer
	sink            string
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	closed          chan struct{}
	closeOnce       sync.Once
	mu              sync.Mutex
}

// ConsoleConfig holds configuration for the warning handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
}

// NewWarningHandler creates a new console warning handler
func NewWarningHandler(cfg ConsoleConfig) *WarningHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	h := &WarningHandler{
		writer:    cfg.Writer,
		sink:      sinkName(cfg.Writer),
		formatter: cfg.Formatter,
		closed:    make(chan struct{}),
	}

	// Cache WriterFormatter for zero-alloc path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	return h
}

// sinkName labels w for SinkUnavailableError
func sinkName(w io.Writer) string {
	switch w {
	case os.Stdout:
		return "stdout"
	case os.Stderr:
		return "stderr"
	}
	if f, ok := w.(*os.File); ok {
		return f.Name()
	}
	return "writer"
}

// Severity returns core.Warning
func (h *WarningHandler) Severity() core.Severity {
	return core.Warning
}

// Handle writes "Warning: {text}" for Warning messages and forwards
// everything else.
func (h *WarningHandler) Handle(msg core.Message) (core.Outcome, error) {
	if !claims(h, msg) {
		return core.Forwarded, nil
	}
	if err := h.write(msg); err != nil {
		return core.Consumed, &SinkUnavailableError{Sink: h.sink, Err: err}
	}
	return core.Consumed, nil
}

// write formats and writes a message
func (h *WarningHandler) write(msg core.Message) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	if h.writerFormatter != nil {
		h.mu.Lock()
		err := h.writerFormatter.FormatTo(msg, h.writer)
		h.mu.Unlock()
		return err
	}

	data, err := h.formatter.Format(msg)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	h.mu.Lock()
	_, err = h.writer.Write(data)
	h.mu.Unlock()
	return err
}

// Close stops the handler. The writer itself is left open.
func (h *WarningHandler) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
