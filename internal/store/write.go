package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// putBatch runs fn inside one transaction. On any failure the transaction
// rolls back and the caller gets a *BatchError: either all records of a
// batch are written or none are.
func (s *Store) putBatch(ctx context.Context, table string, count int, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &BatchError{Table: table, Count: count, Err: fmt.Errorf("begin tx: %w", err)}
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return &BatchError{Table: table, Count: count, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &BatchError{Table: table, Count: count, Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// PutModules upserts a batch of modules transactionally.
func (s *Store) PutModules(ctx context.Context, modules []content.Module) error {
	return s.putBatch(ctx, "modules", len(modules), func(tx *sql.Tx) error {
		for _, m := range modules {
			if err := execPutModule(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// PutModule upserts a single module.
func (s *Store) PutModule(ctx context.Context, m content.Module) error {
	return s.putBatch(ctx, "modules", 1, func(tx *sql.Tx) error {
		return execPutModule(ctx, tx, m)
	})
}

func execPutModule(ctx context.Context, tx *sql.Tx, m content.Module) error {
	payload, err := marshalPayload(m)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO modules (id, ord, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET ord = excluded.ord, payload = excluded.payload
	`, m.ID, m.Order, payload)
	if err != nil {
		return fmt.Errorf("put module %q: %w", m.ID, err)
	}
	return nil
}

// PutGlossaryTerms upserts a batch of glossary terms transactionally.
func (s *Store) PutGlossaryTerms(ctx context.Context, terms []content.GlossaryTerm) error {
	return s.putBatch(ctx, "glossary", len(terms), func(tx *sql.Tx) error {
		for _, t := range terms {
			payload, err := marshalPayload(t)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO glossary (id, category, payload)
				VALUES (?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET category = excluded.category, payload = excluded.payload
			`, t.ID, string(t.Category), payload)
			if err != nil {
				return fmt.Errorf("put term %q: %w", t.ID, err)
			}
		}
		return nil
	})
}

// PutCases upserts a batch of case scenarios transactionally.
func (s *Store) PutCases(ctx context.Context, cases []content.CaseScenario) error {
	return s.putBatch(ctx, "cases", len(cases), func(tx *sql.Tx) error {
		for _, c := range cases {
			payload, err := marshalPayload(c)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO cases (id, payload)
				VALUES (?, ?)
				ON CONFLICT(id) DO UPDATE SET payload = excluded.payload
			`, c.ID, payload)
			if err != nil {
				return fmt.Errorf("put case %q: %w", c.ID, err)
			}
		}
		return nil
	})
}

// PutLOINCCodes upserts a batch of LOINC codes transactionally.
func (s *Store) PutLOINCCodes(ctx context.Context, codes []content.LOINCCode) error {
	return s.putBatch(ctx, "loinc", len(codes), func(tx *sql.Tx) error {
		for _, c := range codes {
			payload, err := marshalPayload(c)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO loinc (code, category, payload)
				VALUES (?, ?, ?)
				ON CONFLICT(code) DO UPDATE SET category = excluded.category, payload = excluded.payload
			`, c.Code, string(c.Category), payload)
			if err != nil {
				return fmt.Errorf("put loinc %q: %w", c.Code, err)
			}
		}
		return nil
	})
}

// PutSNOMEDCodes upserts a batch of SNOMED concepts transactionally.
func (s *Store) PutSNOMEDCodes(ctx context.Context, codes []content.SNOMEDCode) error {
	return s.putBatch(ctx, "snomed", len(codes), func(tx *sql.Tx) error {
		for _, c := range codes {
			payload, err := marshalPayload(c)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO snomed (concept_id, payload)
				VALUES (?, ?)
				ON CONFLICT(concept_id) DO UPDATE SET payload = excluded.payload
			`, c.ConceptID, payload)
			if err != nil {
				return fmt.Errorf("put snomed %q: %w", c.ConceptID, err)
			}
		}
		return nil
	})
}

// PutProgress upserts the progress record for its user id.
func (s *Store) PutProgress(ctx context.Context, p content.UserProgress) error {
	payload, err := marshalPayload(p)
	if err != nil {
		return &StorageError{Kind: KindWriteFailed, Op: "put progress", Err: err}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, payload)
		VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload
	`, p.UserID, payload)
	if err != nil {
		return &StorageError{Kind: KindWriteFailed, Op: "put progress", Err: err}
	}
	return nil
}

// Clear removes every record from one collection table.
func (s *Store) Clear(ctx context.Context, table string) error {
	if !validTable(table) {
		return fmt.Errorf("clear: unknown table %q", table)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return &StorageError{Kind: KindWriteFailed, Op: "clear " + table, Err: err}
	}
	return nil
}

// ClearAll removes every record from every collection table in a single
// transaction. Used only by the explicit reset action.
func (s *Store) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Kind: KindWriteFailed, Op: "clear all", Err: err}
	}
	defer tx.Rollback()

	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return &StorageError{Kind: KindWriteFailed, Op: "clear " + table, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Kind: KindWriteFailed, Op: "clear all", Err: err}
	}
	return nil
}
