package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/content"
	"github.com/pathlearn/pathinformatica/internal/dataset"
)

// ValidationResult holds dataset validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Counts map[string]int            `json:"counts"`
	Errors []content.ValidationError `json:"errors,omitempty"`
}

// NewContentCommand creates the content command group.
func NewContentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the bundled content datasets",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the bundled datasets",
		Long: `Validate the embedded content datasets.

Checks every record against the dataset schema, then runs cross-record
integrity checks: unique ids, resolvable module and prerequisite
references, an acyclic prerequisite graph, and answer keys that match
their options. Runs without touching the store.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentValidate(rootOpts, cmd)
		},
	}

	cmd.AddCommand(validate)
	return cmd
}

func runContentValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	bundle, errs, err := dataset.Validate()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	result := ValidationResult{
		Valid: len(errs) == 0,
		Counts: map[string]int{
			"modules":   len(bundle.Modules),
			"glossary":  len(bundle.Glossary),
			"loinc":     len(bundle.LOINC),
			"snomed":    len(bundle.SNOMED),
			"cases":     len(bundle.Cases),
			"questions": len(bundle.Questions),
		},
		Errors: errs,
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintln(formatter.Writer, "✓ All datasets valid")
		for _, name := range []string{"modules", "glossary", "loinc", "snomed", "cases", "questions"} {
			fmt.Fprintf(formatter.Writer, "  %-10s %d\n", name, result.Counts[name])
		}
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", e.Code, e.Field, e.Message)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}
	return nil
}
