package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// scanPayloads collects and decodes the payload column of every row.
func scanPayloads[T any](rows *sql.Rows) ([]T, error) {
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		var record T
		if err := unmarshalPayload(payload, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// getPayload decodes a single-row lookup, mapping a miss to ErrNotFound.
func getPayload[T any](row *sql.Row) (T, error) {
	var record T
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, ErrNotFound
		}
		return record, fmt.Errorf("scan payload: %w", err)
	}
	if err := unmarshalPayload(payload, &record); err != nil {
		return record, err
	}
	return record, nil
}

// GetAllModules returns every module ordered by the ordering-key index,
// ascending, with id as the tiebreaker for deterministic results.
func (s *Store) GetAllModules(ctx context.Context) ([]content.Module, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM modules
		ORDER BY ord ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	return scanPayloads[content.Module](rows)
}

// GetModule returns the module with the given id, or ErrNotFound.
func (s *Store) GetModule(ctx context.Context, id string) (content.Module, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM modules WHERE id = ?`, id)
	return getPayload[content.Module](row)
}

// GetAllGlossaryTerms returns every glossary term ordered by id.
func (s *Store) GetAllGlossaryTerms(ctx context.Context) ([]content.GlossaryTerm, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM glossary ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query glossary: %w", err)
	}
	return scanPayloads[content.GlossaryTerm](rows)
}

// GlossaryTermsByCategory returns every term whose indexed category equals
// the given value, ordered by id.
func (s *Store) GlossaryTermsByCategory(ctx context.Context, category content.TermCategory) ([]content.GlossaryTerm, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM glossary WHERE category = ? ORDER BY id ASC
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query glossary by category: %w", err)
	}
	return scanPayloads[content.GlossaryTerm](rows)
}

// GetAllCases returns every case scenario ordered by id.
func (s *Store) GetAllCases(ctx context.Context) ([]content.CaseScenario, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM cases ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	return scanPayloads[content.CaseScenario](rows)
}

// GetCase returns the case scenario with the given id, or ErrNotFound.
func (s *Store) GetCase(ctx context.Context, id string) (content.CaseScenario, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM cases WHERE id = ?`, id)
	return getPayload[content.CaseScenario](row)
}

// GetAllLOINCCodes returns every LOINC code ordered by code.
func (s *Store) GetAllLOINCCodes(ctx context.Context) ([]content.LOINCCode, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM loinc ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("query loinc: %w", err)
	}
	return scanPayloads[content.LOINCCode](rows)
}

// LOINCCodesByCategory returns every LOINC code whose indexed category
// equals the given value, ordered by code.
func (s *Store) LOINCCodesByCategory(ctx context.Context, category content.LOINCCategory) ([]content.LOINCCode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM loinc WHERE category = ? ORDER BY code ASC
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query loinc by category: %w", err)
	}
	return scanPayloads[content.LOINCCode](rows)
}

// SearchLOINC returns LOINC codes matching the query against display name,
// code, or component. Matching is Unicode-normalized and case-folded.
func (s *Store) SearchLOINC(ctx context.Context, query string) ([]content.LOINCCode, error) {
	all, err := s.GetAllLOINCCodes(ctx)
	if err != nil {
		return nil, err
	}
	matches := []content.LOINCCode{}
	for _, c := range all {
		if content.MatchLOINC(c, query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// GetAllSNOMEDCodes returns every SNOMED concept ordered by concept id.
func (s *Store) GetAllSNOMEDCodes(ctx context.Context) ([]content.SNOMEDCode, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM snomed ORDER BY concept_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query snomed: %w", err)
	}
	return scanPayloads[content.SNOMEDCode](rows)
}

// SearchSNOMED returns SNOMED concepts matching the query against term or
// concept id.
func (s *Store) SearchSNOMED(ctx context.Context, query string) ([]content.SNOMEDCode, error) {
	all, err := s.GetAllSNOMEDCodes(ctx)
	if err != nil {
		return nil, err
	}
	matches := []content.SNOMEDCode{}
	for _, c := range all {
		if content.MatchSNOMED(c, query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// GetProgress returns the progress record for the user id, or ErrNotFound
// on first run.
func (s *Store) GetProgress(ctx context.Context, userID string) (content.UserProgress, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM progress WHERE user_id = ?`, userID)
	return getPayload[content.UserProgress](row)
}

// Count returns the number of records in a collection table.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !validTable(table) {
		return 0, fmt.Errorf("count: unknown table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
