package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// NewGlossaryCommand creates the glossary command group.
func NewGlossaryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Browse and search the informatics glossary",
	}

	var category string
	list := &cobra.Command{
		Use:           "list",
		Short:         "List glossary terms",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlossaryList(rootOpts, category, cmd)
		},
	}
	list.Flags().StringVar(&category, "category", "", "filter by category")

	search := &cobra.Command{
		Use:           "search <query>",
		Short:         "Search terms and definitions",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlossarySearch(rootOpts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, search)
	return cmd
}

func runGlossaryList(opts *RootOptions, category string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	terms := res.App.GlossaryTerms()
	if category != "" {
		cat := content.TermCategory(category)
		if !cat.Valid() {
			return formatter.Fail(ExitCommandError, ErrCodeBadArgument,
				fmt.Sprintf("unknown category %q", category), nil)
		}
		filtered := terms[:0]
		for _, t := range terms {
			if t.Category == cat {
				filtered = append(filtered, t)
			}
		}
		terms = filtered
	}

	if formatter.Format == "json" {
		return formatter.JSON(terms)
	}
	for _, t := range terms {
		fmt.Fprintf(formatter.Writer, "%-16s %-14s %s\n", t.ID, t.Category, t.Term)
	}
	return nil
}

func runGlossarySearch(opts *RootOptions, query string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	var hits []content.GlossaryTerm
	for _, t := range res.App.GlossaryTerms() {
		if content.MatchGlossary(t, query) {
			hits = append(hits, t)
		}
	}

	if formatter.Format == "json" {
		return formatter.JSON(hits)
	}
	if len(hits) == 0 {
		fmt.Fprintf(formatter.Writer, "no terms match %q\n", query)
		return nil
	}
	for _, t := range hits {
		fmt.Fprintf(formatter.Writer, "%s (%s)\n  %s\n", t.Term, t.Category, t.Definition)
	}
	return nil
}
