package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlearn/pathinformatica/internal/content"
)

func TestExportProgressGolden(t *testing.T) {
	p := content.NewUserProgress("learner-0001")
	p.CompletedLessons = append(p.CompletedLessons, "wsi-fundamentals")
	p.TotalTimeSpent = 45

	doc, err := ExportProgress(p, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", doc)
}

func TestExportProgressDate(t *testing.T) {
	// Non-UTC export times are normalized.
	loc := time.FixedZone("UTC+2", 2*60*60)
	doc, err := ExportProgress(content.NewUserProgress("u1"), time.Date(2024, 5, 1, 14, 0, 0, 0, loc))
	require.NoError(t, err)

	var out ExportDocument
	require.NoError(t, json.Unmarshal(doc, &out))
	assert.Equal(t, "2024-05-01T12:00:00Z", out.ExportDate)
	assert.Equal(t, "u1", out.Progress.UserID)
}
