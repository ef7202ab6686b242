package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command. Reset clears every content
// table and replaces the progress record; the next run re-seeds content
// from the embedded datasets.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Erase all progress and stored content",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(rootOpts, yes, cmd)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func runReset(opts *RootOptions, yes bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	if !yes {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument,
			"reset is destructive: re-run with --yes to confirm", nil)
	}

	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if res.Store != nil {
		if err := res.Store.ClearAll(cmd.Context()); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	}
	res.App.ResetProgress()

	if formatter.Format == "json" {
		return formatter.JSON(map[string]bool{"reset": true})
	}
	fmt.Fprintln(formatter.Writer, "✓ All progress and stored content erased")
	return nil
}
