package formatter

import (
	"io"

	"go.uber.org/zap/buffer"

	"github.com/philipp01105/logchain/core"
)

// Formatter renders a message into the bytes a sink writes.
type Formatter interface {
	Format(msg core.Message) ([]byte, error)
}

// WriterFormatter is implemented by formatters that can render straight into
// a writer. Sinks prefer it so a line reaches the writer in one Write call.
type WriterFormatter interface {
	FormatTo(msg core.Message, w io.Writer) error
}

// Config holds common formatter configuration
type Config struct {
	// Separator goes between the kind and the text (default ": ")
	Separator string
	// Labels overrides the kind printed for a severity (default: Severity.String())
	Labels map[core.Severity]string
}

// lines recycles the scratch space each rendered line is built in.
var lines = buffer.NewPool()
