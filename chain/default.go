package chain

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/logchain/handler"
)

// DefaultErrorLog is the file the default chain appends Error messages to
const DefaultErrorLog = "log.txt"

// DefaultConfig configures the standard chain built by Default
type DefaultConfig struct {
	// Console receives Warning lines (default: os.Stdout)
	Console io.Writer
	// ErrorLog is the file Error lines are appended to (default: DefaultErrorLog)
	ErrorLog string
	// CrossProcessLock serializes appends to ErrorLog across processes
	CrossProcessLock bool
	// LockTimeout bounds the wait for the cross-process lock
	LockTimeout time.Duration
	// Logger receives chain diagnostics (default: no-op)
	Logger *zap.Logger
}

// Default builds the chain Warning -> Error -> FatalError -> Unknown
func Default(cfg DefaultConfig) (*Chain, error) {
	if cfg.ErrorLog == "" {
		cfg.ErrorLog = DefaultErrorLog
	}

	errorHandler, err := handler.NewErrorHandler(handler.FileConfig{
		Filename:         cfg.ErrorLog,
		CrossProcessLock: cfg.CrossProcessLock,
		LockTimeout:      cfg.LockTimeout,
	})
	if err != nil {
		return nil, err
	}

	return NewBuilder().
		WithLogger(cfg.Logger).
		Then(handler.NewWarningHandler(handler.ConsoleConfig{Writer: cfg.Console})).
		Then(errorHandler).
		Then(handler.NewFatalErrorHandler()).
		Then(handler.NewUnknownHandler()).
		Build()
}
