package chain

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/philipp01105/logchain/core"
	"github.com/philipp01105/logchain/handler"
)

var (
	// ErrEmptyChain is returned by Build when no handler was added
	ErrEmptyChain = errors.New("chain has no handlers")
	// ErrNilHandler is returned by Build when a nil handler was added
	ErrNilHandler = errors.New("nil handler")
	// ErrDuplicateHandler is returned by Build when the same handler
	// pointer was added twice, which would make a handler reachable twice
	// in one dispatch
	ErrDuplicateHandler = errors.New("handler added more than once")
)

// Builder provides a fluent API for building Chain instances
type Builder struct {
	handlers []handler.Handler
	logger   *zap.Logger
}

// NewBuilder creates a new chain builder
func NewBuilder() *Builder {
	return &Builder{
		logger: zap.NewNop(),
	}
}

// Then appends h to the end of the chain
func (b *Builder) Then(h handler.Handler) *Builder {
	b.handlers = append(b.handlers, h)
	return b
}

// WithLogger sets the logger used for chain diagnostics (default: no-op)
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	if l == nil {
		l = zap.NewNop()
	}
	b.logger = l
	return b
}

// Build validates the wiring and creates the Chain instance
func (b *Builder) Build() (*Chain, error) {
	if len(b.handlers) == 0 {
		return nil, ErrEmptyChain
	}

	handlers := make([]handler.Handler, len(b.handlers))
	order := make([]core.Severity, len(b.handlers))
	seen := make(map[handler.Handler]int, len(b.handlers))
	claimedBy := make(map[core.Severity]int, len(b.handlers))

	for i, h := range b.handlers {
		if h == nil || isNilPointer(h) {
			return nil, fmt.Errorf("%w at position %d", ErrNilHandler, i)
		}
		if hasIdentity(h) {
			if j, ok := seen[h]; ok {
				return nil, fmt.Errorf("%w: %T at positions %d and %d", ErrDuplicateHandler, h, j, i)
			}
			seen[h] = i
		}

		sev := h.Severity()
		if !sev.Valid() {
			return nil, fmt.Errorf("%w: %T at position %d claims %s", core.ErrInvalidSeverity, h, i, sev)
		}
		if j, ok := claimedBy[sev]; ok {
			b.logger.Warn("handler shadowed by earlier handler",
				zap.Stringer("severity", sev),
				zap.Int("position", i),
				zap.Int("shadowedBy", j),
			)
		} else {
			claimedBy[sev] = i
		}

		handlers[i] = h
		order[i] = sev
	}

	b.logger.Debug("chain built", zap.Stringers("order", order))

	return &Chain{
		handlers: handlers,
		order:    order,
		logger:   b.logger,
		stats:    handler.NewStats(),
	}, nil
}

// Build is shorthand for NewBuilder().Then(h)... .Build()
func Build(handlers ...handler.Handler) (*Chain, error) {
	b := NewBuilder()
	for _, h := range handlers {
		b.Then(h)
	}
	return b.Build()
}

// hasIdentity reports whether h is a pointer whose address tells instances
// apart. Pointers to zero-size values may share one address, and value
// handlers are copies, so neither can be checked for reuse.
func hasIdentity(h handler.Handler) bool {
	t := reflect.TypeOf(h)
	return t.Kind() == reflect.Ptr && t.Elem().Size() > 0
}

// isNilPointer catches typed nil pointers stored in a non-nil interface
func isNilPointer(h handler.Handler) bool {
	v := reflect.ValueOf(h)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
