package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlearn/pathinformatica/internal/content"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func testModule(id string, order int) content.Module {
	return content.Module{
		ID:              id,
		Title:           "Module " + id,
		Description:     "test module",
		Order:           order,
		PrerequisiteIDs: []string{},
		Lessons:         []content.Lesson{},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "open attempt %d", i)
		if i == 0 {
			require.NoError(t, s.PutModule(ctx, testModule("alpha", 1)))
		}
		n, err := s.Count(ctx, "modules")
		require.NoError(t, err)
		assert.Equal(t, 1, n, "reopening must not recreate tables")
		require.NoError(t, s.Close())
	}
}

func TestOpenUnavailable(t *testing.T) {
	// A path whose parent does not exist cannot be opened.
	_, err := Open(filepath.Join(t.TempDir(), "missing", "sub", "test.db"))
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestPutModuleUpsert(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	m := testModule("alpha", 1)
	require.NoError(t, s.PutModule(ctx, m))

	m.Title = "Renamed"
	m.Order = 7
	require.NoError(t, s.PutModule(ctx, m))

	got, err := s.GetModule(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 7, got.Order)

	n, err := s.Count(ctx, "modules")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetAllModulesOrdered(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutModules(ctx, []content.Module{
		testModule("gamma", 3),
		testModule("alpha", 1),
		testModule("beta", 2),
	}))

	modules, err := s.GetAllModules(ctx)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "alpha", modules[0].ID)
	assert.Equal(t, "beta", modules[1].ID)
	assert.Equal(t, "gamma", modules[2].ID)
}

func TestPutModulesBatchIsAtomic(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	// The empty id violates the table's CHECK constraint; the whole batch
	// must roll back.
	err := s.PutModules(ctx, []content.Module{
		testModule("alpha", 1),
		testModule("", 2),
		testModule("beta", 3),
	})
	require.Error(t, err)
	assert.True(t, IsBatchError(err))

	n, err := s.Count(ctx, "modules")
	require.NoError(t, err)
	assert.Equal(t, 0, n, "failed batch must commit nothing")
}

func TestGetModuleNotFound(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.GetModule(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGlossaryTermsByCategory(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGlossaryTerms(ctx, []content.GlossaryTerm{
		{ID: "wsi", Term: "WSI", Definition: "d", Category: content.CategoryPathology},
		{ID: "fhir", Term: "FHIR", Definition: "d", Category: content.CategoryDataStandards},
		{ID: "loinc", Term: "LOINC", Definition: "d", Category: content.CategoryDataStandards},
	}))

	terms, err := s.GlossaryTermsByCategory(ctx, content.CategoryDataStandards)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	for _, term := range terms {
		assert.Equal(t, content.CategoryDataStandards, term.Category)
	}
}

func TestSearchLOINCFoldsCase(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutLOINCCodes(ctx, []content.LOINCCode{
		{Code: "22637-3", Component: "Pathology report", DisplayName: "Pathology report final diagnosis Narrative", Category: content.LOINCLab},
		{Code: "85337-4", Component: "Estrogen receptor", DisplayName: "Estrogen receptor [Interpretation] in Tissue by Immune stain", Category: content.LOINCLab},
	}))

	hits, err := s.SearchLOINC(ctx, "ESTROGEN")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "85337-4", hits[0].Code)

	hits, err = s.SearchLOINC(ctx, "22637")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "22637-3", hits[0].Code)
}

func TestProgressRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	p := content.NewUserProgress("learner-1")
	p.CompletedLessons = append(p.CompletedLessons, "l1", "l2")
	p.TotalTimeSpent = 30
	require.NoError(t, s.PutProgress(ctx, p))

	got, err := s.GetProgress(ctx, "learner-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Same user id replaces, not duplicates.
	p.TotalTimeSpent = 45
	require.NoError(t, s.PutProgress(ctx, p))
	n, err := s.Count(ctx, "progress")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClearAll(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutModule(ctx, testModule("alpha", 1)))
	require.NoError(t, s.PutGlossaryTerms(ctx, []content.GlossaryTerm{
		{ID: "wsi", Term: "WSI", Definition: "d", Category: content.CategoryPathology},
	}))
	require.NoError(t, s.PutProgress(ctx, content.NewUserProgress("learner-1")))

	require.NoError(t, s.ClearAll(ctx))

	for _, table := range Tables {
		n, err := s.Count(ctx, table)
		require.NoError(t, err)
		assert.Zero(t, n, "table %s not cleared", table)
	}
}

func TestCountRejectsUnknownTable(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Count(context.Background(), "users; DROP TABLE modules")
	require.Error(t, err)

	err = s.Clear(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
