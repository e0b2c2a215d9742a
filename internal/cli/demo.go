package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/logchain/core"
)

// demoBatch is submitted first, as one batch
var demoBatch = []core.Message{
	core.MustMessage(core.Warning, "Low disk space."),
	core.MustMessage(core.Error, "Failed to open file."),
	core.MustMessage(core.FatalError, "Memory corruption detected."),
}

// demoUnknown is submitted on its own after the batch
var demoUnknown = core.MustMessage(core.Unknown, "Unrecognized format.")

func newCmdDemo(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Submit the demonstration messages to the default chain",
		Long: `Builds the chain Warning -> Error -> FatalError -> Unknown and submits
a batch of a warning, an error and a fatal error, followed by an unknown
message. Every failure is reported on stderr and does not stop the
messages after it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.buildChain()
			if err != nil {
				return err
			}
			defer c.Close()

			opts.report(c.SubmitAll(demoBatch...))
			opts.report(c.SubmitAll(demoUnknown))
			return nil
		},
	}
}

// report prints every error combined in err
func (o *options) report(err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(o.streams.ErrOut, "Exception caught: %v\n", e)
	}
}
