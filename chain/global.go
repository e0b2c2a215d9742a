package chain

import (
	"sync"

	"github.com/philipp01105/logchain/core"
)

var (
	globalChain *Chain
	globalOnce  sync.Once
	globalMu    sync.RWMutex
	globalErr   error
)

// Global returns the process-wide chain used by the package-level
// functions. Unless replaced with SetGlobal it is Default with the zero
// DefaultConfig, built on first use.
func Global() (*Chain, error) {
	globalOnce.Do(func() {
		c, err := Default(DefaultConfig{})
		globalMu.Lock()
		if globalChain == nil {
			globalChain, globalErr = c, err
		}
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalChain, globalErr
}

// SetGlobal replaces the process-wide chain
func SetGlobal(c *Chain) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	defer globalMu.Unlock()
	globalChain, globalErr = c, nil
}

// Package-level convenience functions using the global chain

// Warning submits a Warning message to the global chain
func Warning(text string) error {
	return submitGlobal(core.Warning, text)
}

// Error submits an Error message to the global chain
func Error(text string) error {
	return submitGlobal(core.Error, text)
}

// FatalError submits a FatalError message to the global chain
func FatalError(text string) error {
	return submitGlobal(core.FatalError, text)
}

// Unknown submits an Unknown message to the global chain
func Unknown(text string) error {
	return submitGlobal(core.Unknown, text)
}

func submitGlobal(sev core.Severity, text string) error {
	c, err := Global()
	if err != nil {
		return err
	}
	_, err = c.Submit(core.MustMessage(sev, text))
	return err
}
