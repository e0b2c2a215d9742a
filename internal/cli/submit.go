package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipp01105/logchain/core"
)

func newCmdSubmit(opts *options) *cobra.Command {
	var severity string

	cmd := &cobra.Command{
		Use:   "submit --severity <severity> <text>...",
		Short: "Submit one message to the default chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sev, err := core.ParseSeverity(severity)
			if err != nil {
				return err
			}
			msg, err := core.NewMessage(sev, strings.Join(args, " "))
			if err != nil {
				return err
			}

			c, err := opts.buildChain()
			if err != nil {
				return err
			}
			defer c.Close()

			outcome, err := c.Submit(msg)
			opts.logger.Debug("submitted", zap.Stringer("severity", sev), zap.Stringer("outcome", outcome))
			if err != nil {
				return fmt.Errorf("%s: %w", outcome, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&severity, "severity", "s", "warning", "message severity: warning, error, fatal or unknown")
	return cmd
}
