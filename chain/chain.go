package chain

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/logchain/core"
	"github.com/philipp01105/logchain/handler"
)

// Chain routes messages through an ordered list of handlers (immutable)
type Chain struct {
	handlers []handler.Handler
	order    []core.Severity
	logger   *zap.Logger
	stats    *handler.Stats
}

// Submit offers msg to each handler in order until one claims it.
//
// The returned outcome is never core.Forwarded. A non-nil error is one of
// *handler.SinkUnavailableError (outcome Consumed: the handler claimed the
// message but its sink failed), *handler.FatalConditionError or
// *handler.UnrecognizedClassificationError (outcome Fatal), or an error
// wrapping handler.ErrUnhandled (outcome Unhandled).
func (c *Chain) Submit(msg core.Message) (core.Outcome, error) {
	outcome, err := c.dispatch(msg)
	c.stats.Record(msg.Severity(), outcome, err)

	if err != nil {
		c.logger.Warn("log message not handled cleanly",
			zap.Stringer("severity", msg.Severity()),
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
	}
	return outcome, err
}

// dispatch walks the handlers by index
func (c *Chain) dispatch(msg core.Message) (core.Outcome, error) {
	for i, h := range c.handlers {
		outcome, err := h.Handle(msg)
		if outcome != core.Forwarded {
			return outcome, err
		}
		if err != nil {
			return core.Fatal, fmt.Errorf("handler %d (%T) forwarded with error: %w", i, h, err)
		}

		c.stats.IncrementForwarded()
		if ce := c.logger.Check(zap.DebugLevel, "forwarded"); ce != nil {
			ce.Write(
				zap.Stringer("severity", msg.Severity()),
				zap.Int("position", i),
				zap.Stringer("claims", c.order[i]),
			)
		}
	}
	return core.Unhandled, fmt.Errorf("%w: severity %s", handler.ErrUnhandled, msg.Severity())
}

// SubmitAll submits every message in turn. A failing message does not
// stop the ones after it; all failures are combined into the returned
// error, in submission order.
func (c *Chain) SubmitAll(msgs ...core.Message) error {
	var errs error
	for _, msg := range msgs {
		_, err := c.Submit(msg)
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Order returns the severity each handler claims, in chain order
func (c *Chain) Order() []core.Severity {
	order := make([]core.Severity, len(c.order))
	copy(order, c.order)
	return order
}

// Len returns the number of handlers
func (c *Chain) Len() int {
	return len(c.handlers)
}

// Stats returns a snapshot of the current statistics
func (c *Chain) Stats() handler.Snapshot {
	return c.stats.GetSnapshot()
}

// Close closes every handler that implements io.Closer
func (c *Chain) Close() error {
	var errs error
	for _, h := range c.handlers {
		if cl, ok := h.(io.Closer); ok {
			errs = multierr.Append(errs, cl.Close())
		}
	}
	return errs
}
