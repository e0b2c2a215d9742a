package chain

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/logchain/core"
	"github.com/philipp01105/logchain/handler"
)

// spyHandler claims one severity and counts every call it receives
type spyHandler struct {
	severity core.Severity
	calls    atomic.Int32
	claimed  atomic.Int32
}

func (s *spyHandler) Severity() core.Severity { return s.severity }

func (s *spyHandler) Handle(msg core.Message) (core.Outcome, error) {
	s.calls.Add(1)
	if msg.Severity() != s.severity {
		return core.Forwarded, nil
	}
	s.claimed.Add(1)
	return core.Consumed, nil
}

type fixture struct {
	chain   *Chain
	console *bytes.Buffer
	logPath string
}

func newDefaultFixture(t *testing.T) fixture {
	t.Helper()
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "log.txt")

	c, err := Default(DefaultConfig{
		Console:  &console,
		ErrorLog: logPath,
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return fixture{chain: c, console: &console, logPath: logPath}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func TestDefault_Order(t *testing.T) {
	f := newDefaultFixture(t)
	assert.Equal(t, []core.Severity{core.Warning, core.Error, core.FatalError, core.Unknown}, f.chain.Order())
	assert.Equal(t, 4, f.chain.Len())
}

func TestSubmit_Warning(t *testing.T) {
	f := newDefaultFixture(t)

	outcome, err := f.chain.Submit(core.MustMessage(core.Warning, "Low disk space."))
	require.NoError(t, err)
	assert.Equal(t, core.Consumed, outcome)
	assert.Equal(t, "Warning: Low disk space.\n", f.console.String())
	assert.Empty(t, readFile(t, f.logPath))
}

func TestSubmit_Error(t *testing.T) {
	f := newDefaultFixture(t)

	outcome, err := f.chain.Submit(core.MustMessage(core.Error, "Failed to open file."))
	require.NoError(t, err)
	assert.Equal(t, core.Consumed, outcome)
	assert.Equal(t, "Error: Failed to open file.\n", readFile(t, f.logPath))
	assert.Empty(t, f.console.String())
}

func TestSubmit_FatalError(t *testing.T) {
	f := newDefaultFixture(t)

	outcome, err := f.chain.Submit(core.MustMessage(core.FatalError, "Memory corruption detected."))
	assert.Equal(t, core.Fatal, outcome)
	require.ErrorIs(t, err, handler.ErrFatalCondition)

	var fatal *handler.FatalConditionError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, "Memory corruption detected.", fatal.Text)

	assert.Empty(t, f.console.String())
	assert.Empty(t, readFile(t, f.logPath))
}

func TestSubmit_Unknown(t *testing.T) {
	f := newDefaultFixture(t)

	outcome, err := f.chain.Submit(core.MustMessage(core.Unknown, "Unrecognized format."))
	assert.Equal(t, core.Fatal, outcome)
	require.ErrorIs(t, err, handler.ErrUnrecognizedClassification)
	assert.NotErrorIs(t, err, handler.ErrFatalCondition)
	assert.EqualError(t, err, "Unknown log message: Unrecognized format.")
}

func TestSubmit_UnhandledWithoutTerminator(t *testing.T) {
	var console bytes.Buffer
	c, err := Build(handler.NewWarningHandler(handler.ConsoleConfig{Writer: &console}))
	require.NoError(t, err)

	outcome, err := c.Submit(core.MustMessage(core.Error, "x"))
	assert.Equal(t, core.Unhandled, outcome)
	require.ErrorIs(t, err, handler.ErrUnhandled)
	assert.EqualError(t, err, "unhandled log message: severity Error")
	assert.Empty(t, console.String())
}

func TestSubmit_SinkFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var console bytes.Buffer
	c, err := Default(DefaultConfig{
		Console:  &console,
		ErrorLog: filepath.Join(blocker, "log.txt"),
	})
	require.NoError(t, err)

	outcome, err := c.Submit(core.MustMessage(core.Error, "x"))
	assert.Equal(t, core.Consumed, outcome)
	require.ErrorIs(t, err, handler.ErrSinkUnavailable)
	assert.False(t, handler.IsTerminal(err))

	outcome, err = c.Submit(core.MustMessage(core.Warning, "y"))
	require.NoError(t, err)
	assert.Equal(t, core.Consumed, outcome)
	assert.Equal(t, "Warning: y\n", console.String())
}

func TestSubmit_OnlyMatchingHandlerFires(t *testing.T) {
	for _, target := range core.Severities() {
		t.Run(target.String(), func(t *testing.T) {
			spies := make([]*spyHandler, 0, 4)
			b := NewBuilder()
			for _, sev := range core.Severities() {
				s := &spyHandler{severity: sev}
				spies = append(spies, s)
				b.Then(s)
			}
			c, err := b.Build()
			require.NoError(t, err)

			outcome, err := c.Submit(core.MustMessage(target, "m"))
			require.NoError(t, err)
			assert.Equal(t, core.Consumed, outcome)

			for _, s := range spies {
				want := int32(0)
				if s.severity == target {
					want = 1
				}
				assert.Equal(t, want, s.claimed.Load(), "claims by %v handler", s.severity)
			}
		})
	}
}

func TestSubmit_FirstMatchWins(t *testing.T) {
	for n := 2; n <= 6; n++ {
		spies := make([]*spyHandler, n)
		b := NewBuilder()
		for i := range spies {
			spies[i] = &spyHandler{severity: core.Warning}
			b.Then(spies[i])
		}
		c, err := b.Build()
		require.NoError(t, err)

		_, err = c.Submit(core.MustMessage(core.Warning, "w"))
		require.NoError(t, err)

		assert.Equal(t, int32(1), spies[0].claimed.Load(), "length %d", n)
		for _, s := range spies[1:] {
			assert.Zero(t, s.calls.Load(), "length %d: later handler reached", n)
		}
	}
}

func TestSubmit_ChainExhaustion(t *testing.T) {
	for _, missing := range core.Severities() {
		t.Run(missing.String(), func(t *testing.T) {
			b := NewBuilder()
			for _, sev := range core.Severities() {
				if sev != missing {
					b.Then(&spyHandler{severity: sev})
				}
			}
			c, err := b.Build()
			require.NoError(t, err)

			outcome, err := c.Submit(core.MustMessage(missing, "nobody"))
			assert.Equal(t, core.Unhandled, outcome)
			assert.ErrorIs(t, err, handler.ErrUnhandled)
			assert.Equal(t, uint64(3), c.Stats().ForwardedTotal)
		})
	}
}

func TestSubmit_TerminalShortCircuits(t *testing.T) {
	tests := []struct {
		name     string
		severity core.Severity
		terminal handler.Handler
	}{
		{"fatal", core.FatalError, handler.NewFatalErrorHandler()},
		{"unknown", core.Unknown, handler.NewUnknownHandler()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := &spyHandler{severity: tt.severity}
			c, err := Build(tt.terminal, after)
			require.NoError(t, err)

			outcome, err := c.Submit(core.MustMessage(tt.severity, "stop"))
			assert.Equal(t, core.Fatal, outcome)
			assert.True(t, handler.IsTerminal(err))
			assert.Zero(t, after.calls.Load())
		})
	}
}

func TestSubmit_WarningNotMemoized(t *testing.T) {
	f := newDefaultFixture(t)
	msg := core.MustMessage(core.Warning, "Low disk space.")

	for i := 0; i < 2; i++ {
		_, err := f.chain.Submit(msg)
		require.NoError(t, err)
	}
	assert.Equal(t, "Warning: Low disk space.\nWarning: Low disk space.\n", f.console.String())
	assert.Equal(t, uint64(2), f.chain.Stats().Consumed[core.Warning])
}

func TestSubmitAll_ContinuesAfterFailures(t *testing.T) {
	f := newDefaultFixture(t)

	err := f.chain.SubmitAll(
		core.MustMessage(core.FatalError, "first"),
		core.MustMessage(core.Warning, "Low disk space."),
		core.MustMessage(core.Unknown, "second"),
		core.MustMessage(core.Error, "Failed to open file."),
	)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], handler.ErrFatalCondition)
	assert.ErrorIs(t, errs[1], handler.ErrUnrecognizedClassification)

	assert.Equal(t, "Warning: Low disk space.\n", f.console.String())
	assert.Equal(t, "Error: Failed to open file.\n", readFile(t, f.logPath))

	snap := f.chain.Stats()
	assert.Equal(t, uint64(1), snap.FatalTotal)
	assert.Equal(t, uint64(1), snap.UnrecognizedTotal)
}

func TestSubmitAll_NoErrors(t *testing.T) {
	f := newDefaultFixture(t)
	assert.NoError(t, f.chain.SubmitAll(core.MustMessage(core.Warning, "a"), core.MustMessage(core.Warning, "b")))
	assert.NoError(t, f.chain.SubmitAll())
}

func TestSubmit_LogsFailures(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)

	c, err := NewBuilder().
		WithLogger(zap.New(obsCore)).
		Then(&spyHandler{severity: core.Warning}).
		Build()
	require.NoError(t, err)

	_, _ = c.Submit(core.MustMessage(core.Error, "x"))

	assert.Equal(t, 1, logs.FilterMessage("chain built").Len())
	assert.Equal(t, 1, logs.FilterMessage("forwarded").Len())

	failures := logs.FilterMessage("log message not handled cleanly").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.WarnLevel, failures[0].Level)
	assert.Equal(t, "Unhandled", failures[0].ContextMap()["outcome"])
}

func TestSubmit_ForwardWithErrorStopsDispatch(t *testing.T) {
	after := &spyHandler{severity: core.Warning}
	c, err := Build(badHandler{}, after)
	require.NoError(t, err)

	outcome, err := c.Submit(core.MustMessage(core.Warning, "x"))
	assert.Equal(t, core.Fatal, outcome)
	assert.ErrorIs(t, err, errBad)
	assert.Zero(t, after.calls.Load())

	snap := c.Stats()
	assert.Zero(t, snap.SinkFailuresTotal)
	assert.Equal(t, uint64(1), snap.HandlerFailuresTotal)
}

func TestSubmit_ConcurrentSharedChain(t *testing.T) {
	f := newDefaultFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.chain.Submit(core.MustMessage(core.Error, "concurrent"))
			_, _ = f.chain.Submit(core.MustMessage(core.Warning, "concurrent"))
		}()
	}
	wg.Wait()

	snap := f.chain.Stats()
	assert.Equal(t, uint64(20), snap.Consumed[core.Error])
	assert.Equal(t, uint64(20), snap.Consumed[core.Warning])
	assert.Equal(t, 20, bytes.Count([]byte(readFile(t, f.logPath)), []byte("Error: concurrent\n")))
}

func TestClose_CombinesErrors(t *testing.T) {
	c, err := Build(closer{err: errors.New("a")}, &spyHandler{severity: core.Error}, closer{severity: core.Unknown, err: errors.New("b")})
	require.NoError(t, err)

	err = c.Close()
	assert.Len(t, multierr.Errors(err), 2)
}

var errBad = errors.New("bad handler")

type badHandler struct{}

func (badHandler) Severity() core.Severity { return core.Error }

func (badHandler) Handle(core.Message) (core.Outcome, error) { return core.Forwarded, errBad }

type closer struct {
	severity core.Severity
	err      error
}

func (c closer) Severity() core.Severity                   { return c.severity }
func (c closer) Handle(core.Message) (core.Outcome, error) { return core.Forwarded, nil }
func (c closer) Close() error                              { return c.err }
