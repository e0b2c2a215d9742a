package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/philipp01105/logchain/core"
	"github.com/philipp01105/logchain/formatter"
)

// pathLocks holds one mutex per resolved file path so that every
// ErrorHandler in the process appending to the same file serializes.
var pathLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// resolvePath follows symlinks in path so that different spellings of one
// file share a lock. When the file does not exist yet only its directory
// is resolved. Links created after the handler are not seen.
func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}

// ErrorHandler appends Error messages to a file. The file is opened in
// append mode and closed again on every call; no handle is kept between
// messages.
type ErrorHandler struct {
	filename     string
	lockKey      string
	formatter    formatter.Formatter
	mu           *sync.Mutex
	crossProcess bool
	lockTimeout  time.Duration
	closed       chan struct{}
	closeOnce    sync.Once
}

// FileConfig holds configuration for the error handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// CrossProcessLock also takes an advisory lock on "<resolved Filename>.lock"
	// around each append, serializing writers in other processes
	CrossProcessLock bool
	// LockTimeout bounds the wait for the cross-process lock (default: 5s)
	LockTimeout time.Duration
}

// NewErrorHandler creates a new file error handler
func NewErrorHandler(cfg FileConfig) (*ErrorHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 5 * time.Second
	}

	path, err := filepath.Abs(cfg.Filename)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Filename, err)
	}
	key := resolvePath(path)

	return &ErrorHandler{
		filename:     path,
		lockKey:      key,
		formatter:    cfg.Formatter,
		mu:           lockFor(key),
		crossProcess: cfg.CrossProcessLock,
		lockTimeout:  cfg.LockTimeout,
		closed:       make(chan struct{}),
	}, nil
}

// Filename returns the absolute path the handler appends to
func (h *ErrorHandler) Filename() string {
	return h.filename
}

// Severity returns core.Error
func (h *ErrorHandler) Severity() core.Severity {
	return core.Error
}

// Handle appends "Error: {text}" for Error messages and forwards
// everything else. Open, lock and write failures are reported as
// *SinkUnavailableError.
func (h *ErrorHandler) Handle(msg core.Message) (core.Outcome, error) {
	if !claims(h, msg) {
		return core.Forwarded, nil
	}
	if err := h.write(msg); err != nil {
		return core.Consumed, &SinkUnavailableError{Sink: h.filename, Err: err}
	}
	return core.Consumed, nil
}

// write formats the message and appends it under the path lock
func (h *ErrorHandler) write(msg core.Message) error {
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	data, err := h.formatter.Format(msg)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.crossProcess {
		unlock, err := h.lockFile()
		if err != nil {
			return err
		}
		defer unlock()
	}

	return appendFile(h.filename, data)
}

// lockFile acquires the advisory lock next to the log file
func (h *ErrorHandler) lockFile() (func(), error) {
	fl := flock.New(h.lockKey + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), h.lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire file lock for %s: %w", h.filename, err)
	}
	if !locked {
		return nil, fmt.Errorf("timed out acquiring file lock for %s", h.filename)
	}
	return func() { _ = fl.Unlock() }, nil
}

// appendFile opens path for append, writes data in a single call and
// closes the file again
func appendFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Close stops the handler. Subsequent Error messages fail with ErrClosed.
func (h *ErrorHandler) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
