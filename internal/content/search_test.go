package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsCaseAndComposition(t *testing.T) {
	assert.Equal(t, Normalize("snomed ct"), Normalize("SNOMED CT"))

	// Decomposed e + combining acute vs precomposed é.
	assert.Equal(t, Normalize("é"), Normalize("é"))

	// Micro sign folds to the Greek mu.
	assert.Equal(t, Normalize("µm"), Normalize("μm"))
}

func TestMatchGlossary(t *testing.T) {
	term := GlossaryTerm{
		Term:       "Whole-Slide Imaging (WSI)",
		Definition: "The comprehensive digitization of glass microscope slides.",
	}

	assert.True(t, MatchGlossary(term, "whole-slide"))
	assert.True(t, MatchGlossary(term, "DIGITIZATION"))
	assert.False(t, MatchGlossary(term, "flow cytometry"))
	assert.False(t, MatchGlossary(term, ""), "empty query matches nothing")
}

func TestMatchLOINC(t *testing.T) {
	code := LOINCCode{
		Code:        "85337-4",
		Component:   "Estrogen receptor",
		DisplayName: "Estrogen receptor [Interpretation] in Tissue by Immune stain",
	}

	assert.True(t, MatchLOINC(code, "85337"))
	assert.True(t, MatchLOINC(code, "estrogen"))
	assert.True(t, MatchLOINC(code, "immune STAIN"))
	assert.False(t, MatchLOINC(code, "progesterone"))
}

func TestMatchSNOMED(t *testing.T) {
	code := SNOMEDCode{ConceptID: "396152003", Term: "Adenocarcinoma"}

	assert.True(t, MatchSNOMED(code, "396152003"))
	assert.True(t, MatchSNOMED(code, "adenocarcinoma"))
	assert.False(t, MatchSNOMED(code, "squamous"))
}
