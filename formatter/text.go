package formatter

import (
	"io"

	"go.uber.org/zap/buffer"

	"github.com/philipp01105/logchain/core"
)

// TextFormatter renders a message as one "{Kind}{Separator}{text}\n" line.
type TextFormatter struct {
	Config
}

// NewTextFormatter returns a TextFormatter, filling in the ": " separator
// when cfg leaves it empty.
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.Separator == "" {
		cfg.Separator = ": "
	}
	return &TextFormatter{Config: cfg}
}

// Format returns the rendered line. The slice is owned by the caller.
func (f *TextFormatter) Format(msg core.Message) ([]byte, error) {
	line := f.render(msg)
	defer line.Free()
	return append([]byte(nil), line.Bytes()...), nil
}

// FormatTo writes the rendered line to w in a single Write.
func (f *TextFormatter) FormatTo(msg core.Message, w io.Writer) error {
	line := f.render(msg)
	defer line.Free()
	_, err := w.Write(line.Bytes())
	return err
}

// Label returns the kind written in front of a message of severity s
func (f *TextFormatter) Label(s core.Severity) string {
	if l, ok := f.Labels[s]; ok {
		return l
	}
	return s.String()
}

func (f *TextFormatter) render(msg core.Message) *buffer.Buffer {
	line := lines.Get()
	line.AppendString(f.Label(msg.Severity()))
	line.AppendString(f.Separator)
	line.AppendString(msg.Text())
	line.AppendByte('\n')
	return line
}
