package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/bootstrap"
	"github.com/pathlearn/pathinformatica/internal/content"
)

// NewCodesCommand creates the codes command group for the LOINC and
// SNOMED CT reference tables.
func NewCodesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Browse the LOINC and SNOMED CT reference tables",
	}

	var loincCategory, loincSearch string
	loinc := &cobra.Command{
		Use:           "loinc",
		Short:         "List LOINC codes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodesLOINC(rootOpts, loincCategory, loincSearch, cmd)
		},
	}
	loinc.Flags().StringVar(&loincCategory, "category", "", "filter by category (LAB|CLINICAL|SURVEY|CLAIMS)")
	loinc.Flags().StringVar(&loincSearch, "search", "", "search display name, code, and component")

	var snomedSearch string
	snomed := &cobra.Command{
		Use:           "snomed",
		Short:         "List SNOMED CT concepts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCodesSNOMED(rootOpts, snomedSearch, cmd)
		},
	}
	snomed.Flags().StringVar(&snomedSearch, "search", "", "search term and concept id")

	cmd.AddCommand(loinc, snomed)
	return cmd
}

func runCodesLOINC(opts *RootOptions, category, search string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if category != "" && !content.LOINCCategory(category).Valid() {
		return formatter.Fail(ExitCommandError, ErrCodeBadArgument,
			fmt.Sprintf("unknown category %q", category), nil)
	}
	codes, err := loincCodes(res, category, search, cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.JSON(codes)
	}
	for _, c := range codes {
		fmt.Fprintf(formatter.Writer, "%-10s %-10s %s\n", c.Code, c.Category, c.DisplayName)
	}
	return nil
}

// loincCodes reads from the store's indexed queries when it is available and
// falls back to the in-memory collection in the degraded phase.
func loincCodes(res bootstrap.Result, category, search string, cmd *cobra.Command) ([]content.LOINCCode, error) {
	ctx := cmd.Context()
	if res.Store != nil {
		switch {
		case search != "":
			return res.Store.SearchLOINC(ctx, search)
		case category != "":
			return res.Store.LOINCCodesByCategory(ctx, content.LOINCCategory(category))
		default:
			return res.Store.GetAllLOINCCodes(ctx)
		}
	}

	// Degraded: no store, filter what bootstrap loaded from the bundle.
	var out []content.LOINCCode
	for _, m := range res.App.LOINCCodes() {
		if search != "" && !content.MatchLOINC(m, search) {
			continue
		}
		if category != "" && m.Category != content.LOINCCategory(category) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func runCodesSNOMED(opts *RootOptions, search string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	var codes []content.SNOMEDCode
	if res.Store != nil {
		if search != "" {
			codes, err = res.Store.SearchSNOMED(cmd.Context(), search)
		} else {
			codes, err = res.Store.GetAllSNOMEDCodes(cmd.Context())
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
	} else {
		for _, c := range res.App.SNOMEDCodes() {
			if search == "" || content.MatchSNOMED(c, search) {
				codes = append(codes, c)
			}
		}
	}

	if formatter.Format == "json" {
		return formatter.JSON(codes)
	}
	for _, c := range codes {
		fmt.Fprintf(formatter.Writer, "%-12s %-24s %s\n", c.ConceptID, c.SemanticTag, c.Term)
	}
	return nil
}
