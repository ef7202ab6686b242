package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCasesCommand creates the cases command group.
func NewCasesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Walk through case workflow scenarios",
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List case scenarios",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCasesList(rootOpts, cmd)
		},
	}

	show := &cobra.Command{
		Use:           "show <case-id>",
		Short:         "Show one case with its workflow steps",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCasesShow(rootOpts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func runCasesList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	cases := res.App.Cases()
	if formatter.Format == "json" {
		return formatter.JSON(cases)
	}
	for _, c := range cases {
		fmt.Fprintf(formatter.Writer, "%-20s %-20s %s\n", c.ID, c.Context.SpecimenType, c.Title)
	}
	return nil
}

func runCasesShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	for _, c := range res.App.Cases() {
		if c.ID != id {
			continue
		}
		if formatter.Format == "json" {
			return formatter.JSON(c)
		}

		fmt.Fprintf(formatter.Writer, "%s\n%s\n\n", c.Title, c.Description)
		fmt.Fprintf(formatter.Writer, "Specimen: %s\nClinical: %s\n\n",
			c.Context.SpecimenType, c.Context.ClinicalContext)
		for _, step := range c.Workflow {
			qc := ""
			if step.QCRequired {
				qc = " [QC]"
			}
			fmt.Fprintf(formatter.Writer, "%d. %-24s %-22s ~%ds%s\n",
				step.Order, step.Name, step.AssignedRole, step.EstimatedDuration, qc)
		}
		if c.CodingChallenge != nil {
			fmt.Fprintf(formatter.Writer, "\nCoding challenge: %v\n", c.CodingChallenge.Diagnoses)
		}
		for _, r := range c.Reflection {
			fmt.Fprintf(formatter.Writer, "? %s\n", r)
		}
		return nil
	}

	return formatter.Fail(ExitCommandError, ErrCodeNotFound,
		fmt.Sprintf("case %q not found", id), nil)
}
