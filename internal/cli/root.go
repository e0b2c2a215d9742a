// Package cli implements the logchain command line.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logchain/chain"
	"github.com/philipp01105/logchain/internal/config"
)

// Streams are the writers commands print to
type Streams struct {
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultStreams returns the process stdout and stderr
func DefaultStreams() Streams {
	return Streams{Out: os.Stdout, ErrOut: os.Stderr}
}

// options is shared by every subcommand
type options struct {
	streams    Streams
	configFile string
	cfg        config.Config
	logger     *zap.Logger
}

// NewCmdRoot creates the root "logchain" command
func NewCmdRoot(streams Streams) *cobra.Command {
	opts := &options{streams: streams}

	cmd := &cobra.Command{
		Use:           "logchain",
		Short:         "Route log messages through a chain of severity handlers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = newLogger(streams.ErrOut, cfg.Debug)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	flags.String("error-log", chain.DefaultErrorLog, "file Error messages are appended to")
	flags.Bool("lock", false, "take a cross-process lock around each append to the error log")
	flags.Duration("lock-timeout", 0, "how long to wait for the cross-process lock")
	flags.Bool("debug", false, "print chain diagnostics to stderr")

	cmd.AddCommand(newCmdDemo(opts))
	cmd.AddCommand(newCmdSubmit(opts))

	return cmd
}

// buildChain builds the default chain from the loaded configuration
func (o *options) buildChain() (*chain.Chain, error) {
	return chain.Default(chain.DefaultConfig{
		Console:          o.streams.Out,
		ErrorLog:         o.cfg.ErrorLog,
		CrossProcessLock: o.cfg.Lock,
		LockTimeout:      o.cfg.LockTimeout,
		Logger:           o.logger,
	})
}

// newLogger writes human-readable diagnostics to w. Without debug only
// errors are shown; failures are reported by the commands themselves.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.ErrorLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level))
}
