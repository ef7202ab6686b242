// Package dataset bundles the authored learning content. The YAML files are
// embedded at build time so the application needs no network or external
// files; Load parses them into the content types and Validate additionally
// checks every record against the embedded CUE schema.
package dataset

import (
	"embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/pathlearn/pathinformatica/internal/content"
)

//go:embed *.yaml
var dataFS embed.FS

//go:embed schema.cue
var schemaSrc string

type modulesFile struct {
	Modules []content.Module `yaml:"modules"`
}

type glossaryFile struct {
	Terms []content.GlossaryTerm `yaml:"terms"`
}

type codesFile struct {
	LOINC  []content.LOINCCode  `yaml:"loinc"`
	SNOMED []content.SNOMEDCode `yaml:"snomed"`
}

type casesFile struct {
	Cases []content.CaseScenario `yaml:"cases"`
}

type questionsFile struct {
	Questions []content.AssessmentQuestion `yaml:"questions"`
}

// Load parses the embedded datasets into a content bundle. It fails only on
// malformed YAML; integrity of the parsed records is the job of Validate.
func Load() (content.Bundle, error) {
	var b content.Bundle

	var mods modulesFile
	if err := unmarshalFile("modules.yaml", &mods); err != nil {
		return b, err
	}
	b.Modules = mods.Modules

	var gloss glossaryFile
	if err := unmarshalFile("glossary.yaml", &gloss); err != nil {
		return b, err
	}
	b.Glossary = gloss.Terms

	var codes codesFile
	if err := unmarshalFile("codes.yaml", &codes); err != nil {
		return b, err
	}
	b.LOINC = codes.LOINC
	b.SNOMED = codes.SNOMED

	var cs casesFile
	if err := unmarshalFile("cases.yaml", &cs); err != nil {
		return b, err
	}
	b.Cases = cs.Cases

	var qs questionsFile
	if err := unmarshalFile("questions.yaml", &qs); err != nil {
		return b, err
	}
	b.Questions = qs.Questions

	return b, nil
}

// Validate loads the bundle, checks each raw dataset against the CUE schema,
// and runs the cross-record integrity checks. The returned error reports
// infrastructure failures (unreadable or malformed embedded files), not
// content violations; those come back in the validation list.
func Validate() (content.Bundle, []content.ValidationError, error) {
	b, err := Load()
	if err != nil {
		return b, nil, err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return b, nil, fmt.Errorf("compiling dataset schema: %w", err)
	}

	var errs []content.ValidationError
	for _, f := range []struct {
		name string
		def  string
	}{
		{"modules.yaml", "#ModulesFile"},
		{"glossary.yaml", "#GlossaryFile"},
		{"codes.yaml", "#CodesFile"},
		{"cases.yaml", "#CasesFile"},
		{"questions.yaml", "#QuestionsFile"},
	} {
		fileErrs, err := checkSchema(ctx, schema, f.name, f.def)
		if err != nil {
			return b, nil, err
		}
		errs = append(errs, fileErrs...)
	}

	errs = append(errs, content.Verify(b)...)
	return b, errs, nil
}

func unmarshalFile(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading embedded dataset %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// checkSchema unifies one parsed dataset with its schema definition and
// converts any CUE failures into validation errors.
func checkSchema(ctx *cue.Context, schema cue.Value, name, def string) ([]content.ValidationError, error) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded dataset %s: %w", name, err)
	}

	// Decode to a plain document rather than the typed structs so the
	// schema sees exactly what the author wrote.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	defVal := schema.LookupPath(cue.ParsePath(def))
	if err := defVal.Err(); err != nil {
		return nil, fmt.Errorf("schema definition %s: %w", def, err)
	}

	unified := defVal.Unify(ctx.Encode(doc))
	vErr := unified.Validate(cue.Concrete(true))
	if vErr == nil {
		return nil, nil
	}

	var errs []content.ValidationError
	for _, e := range cueerrors.Errors(vErr) {
		field := name
		if p := e.Path(); len(p) > 0 {
			field = name + ":" + strings.Join(p, ".")
		}
		format, args := e.Msg()
		errs = append(errs, content.ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    content.ErrCodeSchema,
		})
	}
	return errs, nil
}
