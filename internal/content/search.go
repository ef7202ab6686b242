package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// Normalize prepares text for matching: Unicode NFC normalization followed
// by case folding. Dataset text includes characters like µ, so byte-wise
// lowercasing is not enough.
func Normalize(s string) string {
	return foldCaser.String(norm.NFC.String(s))
}

// matchAny reports whether the normalized query appears in any of the
// candidate fields.
func matchAny(query string, fields ...string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), q) {
			return true
		}
	}
	return false
}

// MatchLOINC reports whether a LOINC code matches the query against its
// display name, code, or component.
func MatchLOINC(c LOINCCode, query string) bool {
	return matchAny(query, c.DisplayName, c.Code, c.Component)
}

// MatchSNOMED reports whether a SNOMED concept matches the query against its
// term or concept id.
func MatchSNOMED(c SNOMEDCode, query string) bool {
	return matchAny(query, c.Term, c.ConceptID)
}

// MatchGlossary reports whether a glossary term matches the query against
// its term text or definition.
func MatchGlossary(t GlossaryTerm, query string) bool {
	return matchAny(query, t.Term, t.Definition)
}
