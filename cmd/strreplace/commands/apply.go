package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/strreplace/cmd/strreplace/opts"
	"github.com/walteh/strreplace/pkg/config"
	"github.com/walteh/strreplace/pkg/log"
	"github.com/walteh/strreplace/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// applyFlags are the per-invocation overrides shared by apply and check
type applyFlags struct {
	from    string
	to      string
	files   string
	workers int
	dryRun  bool
}

func (f *applyFlags) register(cmd *cobra.Command, withDryRun bool) {
	cmd.Flags().StringVar(&f.from, "from", "", "literal text to replace, added after the config rules")
	cmd.Flags().StringVar(&f.to, "to", "", "replacement text for --from")
	cmd.Flags().StringVar(&f.files, "files", "", "doublestar glob limiting the --from rule")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "number of files processed concurrently")
	if withDryRun {
		cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing files")
	}
}

// NewApplyCmd creates the command that rewrites files in place
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [root]",
		Short: "Apply replacement rules to files",
		Long: `Apply runs every rule from the config file, plus the optional --from/--to rule,
over the files below root (default: current directory) and rewrites the
files that change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runApply(cmd, o, args, flags)
			if err != nil {
				return err
			}
			return renderSummary(cmd.OutOrStdout(), summary, flags.dryRun)
		},
	}

	flags.register(cmd, true)
	return cmd
}

// runApply loads the config, merges the flags, and runs the apply operation
func runApply(cmd *cobra.Command, o *opts.RootOpts, args []string, flags *applyFlags) (*operation.Summary, error) {
	ctx := cmd.Context()
	ctx = zerolog.Ctx(ctx).With().Str("command", cmd.Name()).Logger().WithContext(ctx)

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := o.LoadConfig(ctx, root)
	if err != nil {
		return nil, err
	}

	if flags.from != "" {
		cfg.Rules = append(cfg.Rules, config.Rule{
			From:  flags.from,
			To:    flags.to,
			Files: flags.files,
		})
	} else if cmd.Flags().Changed("to") || cmd.Flags().Changed("files") {
		return nil, errors.Errorf("--to and --files require --from")
	}

	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	logger := log.FromContext(ctx)

	op, err := operation.NewApplyOperation(operation.Options{
		Config: cfg,
		Root:   root,
		DryRun: flags.dryRun,
		Logger: logger,
	})
	if err != nil {
		return nil, errors.Errorf("creating apply operation: %w", err)
	}

	runner := operation.NewRunner(zerolog.Ctx(ctx), cfg.Async)
	if err := runner.Run(ctx, op); err != nil {
		return nil, errors.Errorf("applying rules: %w", err)
	}

	summary := op.Summary()
	if summary.Scanned == 0 {
		logger.Infof("no files matched under %s", root)
	}
	return summary, nil
}
