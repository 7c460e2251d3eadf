package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/strreplace/cmd/strreplace/opts"
	"github.com/walteh/strreplace/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates the command that fails when any file would change
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	flags := &applyFlags{dryRun: true}

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Report files the rules would change",
		Long: `Check runs the same rules as apply without writing anything and exits
non-zero when at least one file would change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runApply(cmd, o, args, flags)
			if err != nil {
				return err
			}

			if err := renderSummary(cmd.OutOrStdout(), summary, true); err != nil {
				return err
			}

			logger := log.FromContext(cmd.Context())
			if summary.Modified > 0 {
				logger.Warningf("%d of %d file(s) need rewriting", summary.Modified, summary.Scanned)
				return errors.Errorf("%d file(s) would change", summary.Modified)
			}
			logger.Successf("%d file(s) up to date", summary.Scanned)
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}
