package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/strreplace/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewStringCmd creates the command that replaces text in a single argument
func NewStringCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "string <text|->",
		Short: "Replace text in a single string",
		Long: `String replaces every non-overlapping occurrence of --from with --to in the
given text and prints the result. Pass - to read the text from stdin.

An empty --from leaves the text unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			fromStdin := input == "-"
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				input = string(data)
			}

			text.StringReplace(&input, from, to)

			zerolog.Ctx(cmd.Context()).Debug().
				Str("from", from).
				Str("to", to).
				Int("length", len(input)).
				Msg("string replaced")

			if fromStdin {
				_, err := fmt.Fprint(cmd.OutOrStdout(), input)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), input)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "literal text to replace")
	cmd.Flags().StringVar(&to, "to", "", "replacement text")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}
