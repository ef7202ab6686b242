package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlearn/pathinformatica/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DataDir: t.TempDir(),
		DBFile:  "test.db",
		UserID:  "learner-0001",
	}
}

func TestRunSeedsOnFirstStart(t *testing.T) {
	ctx := context.Background()
	b := New(testConfig(t))
	assert.Equal(t, PhaseNotStarted, b.Phase())

	res, err := b.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, PhaseReady, res.Phase)
	require.NotNil(t, res.Store)
	defer res.Store.Close()

	n, err := res.Store.Count(ctx, "modules")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = res.Store.Count(ctx, "glossary")
	require.NoError(t, err)
	assert.NotZero(t, n)

	assert.Len(t, res.App.Modules(), 5)
	assert.NotEmpty(t, res.App.Questions())
	assert.NotEmpty(t, res.App.LOINCCodes())
	assert.Equal(t, "learner-0001", res.App.Progress().UserID)
}

func TestRunIsReentrant(t *testing.T) {
	ctx := context.Background()
	b := New(testConfig(t))

	first, err := b.Run(ctx)
	require.NoError(t, err)
	defer first.Store.Close()

	second, err := b.Run(ctx)
	require.NoError(t, err)
	assert.Same(t, first.App, second.App, "a finished bootstrap must not run again")
	assert.Same(t, first.Store, second.Store)
}

func TestRunSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	res, err := New(cfg).Run(ctx)
	require.NoError(t, err)
	res.App.MarkLessonComplete("wsi-basics")
	require.NoError(t, res.Store.Close())

	res2, err := New(cfg).Run(ctx)
	require.NoError(t, err)
	defer res2.Store.Close()

	assert.Equal(t, PhaseReady, res2.Phase)
	assert.True(t, res2.App.Progress().LessonCompleted("wsi-basics"),
		"snapshot must rehydrate across restarts")

	// Seeding must not duplicate rows on restart.
	n, err := res2.Store.Count(ctx, "modules")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestRunDegradedWhenStoreUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBFile = "missing/nested/test.db"

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err, "store failure degrades, it does not abort")
	assert.Equal(t, PhaseDegradedReady, res.Phase)
	assert.Nil(t, res.Store)

	// Embedded content still serves the session.
	assert.Len(t, res.App.Modules(), 5)
	assert.NotEmpty(t, res.App.SNOMEDCodes())
}

func TestClearAllThenRebootstrapReseeds(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	res, err := New(cfg).Run(ctx)
	require.NoError(t, err)
	require.NoError(t, res.Store.ClearAll(ctx))
	require.NoError(t, res.Store.Close())

	res2, err := New(cfg).Run(ctx)
	require.NoError(t, err)
	defer res2.Store.Close()

	n, err := res2.Store.Count(ctx, "modules")
	require.NoError(t, err)
	assert.Equal(t, 5, n, "empty tables are reseeded from the embedded datasets")
}
