package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlearn/pathinformatica/internal/content"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	fs := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))
	return NewApp(fs, WithClock(func() time.Time { return fixedTime }))
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	app := newTestApp(t)

	app.MarkLessonComplete("l1")
	app.MarkLessonComplete("l1")
	app.MarkLessonComplete("l2")

	p := app.Progress()
	assert.Equal(t, []string{"l1", "l2"}, p.CompletedLessons)
	assert.Equal(t, "l2", p.LastAccessedLesson)
}

func TestMarkModuleCompleteIsIdempotent(t *testing.T) {
	app := newTestApp(t)

	app.MarkModuleComplete("m1")
	app.MarkModuleComplete("m1")

	assert.Equal(t, []string{"m1"}, app.Progress().CompletedModules)
}

func TestAssessmentResultsAreHistory(t *testing.T) {
	app := newTestApp(t)

	app.SubmitAssessmentResult(content.AssessmentResult{QuestionID: "q1", IsCorrect: false, Timestamp: fixedTime})
	app.SubmitAssessmentResult(content.AssessmentResult{QuestionID: "q1", IsCorrect: true, Timestamp: fixedTime})

	results := app.Progress().AssessmentResults
	require.Len(t, results, 2, "repeat attempts must be appended, not replaced")
	assert.False(t, results[0].IsCorrect)
	assert.True(t, results[1].IsCorrect)
}

func TestUpdateTimeSpentIgnoresNegative(t *testing.T) {
	app := newTestApp(t)

	app.UpdateTimeSpent(30)
	app.UpdateTimeSpent(-10)
	app.UpdateTimeSpent(15)

	assert.Equal(t, 45, app.Progress().TotalTimeSpent)
}

func TestProgressReadsAreCopies(t *testing.T) {
	app := newTestApp(t)
	app.MarkLessonComplete("l1")

	p := app.Progress()
	p.CompletedLessons[0] = "mutated"

	assert.Equal(t, []string{"l1"}, app.Progress().CompletedLessons)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	fs := NewFileStore(path)

	app := NewApp(fs, WithClock(func() time.Time { return fixedTime }))
	app.MarkLessonComplete("l1")
	app.SetCurrentModule("m1")
	app.SetCurrentLesson("l2")
	userID := app.Progress().UserID

	// A new container over the same file simulates a restart.
	restarted := NewApp(NewFileStore(path))
	require.NoError(t, restarted.Rehydrate())

	p := restarted.Progress()
	assert.Equal(t, userID, p.UserID, "minted id must be replaced by the persisted one")
	assert.Equal(t, []string{"l1"}, p.CompletedLessons)
	assert.Equal(t, "m1", restarted.CurrentModule())
	assert.Equal(t, "l2", restarted.CurrentLesson())
}

func TestRehydrateWithoutSnapshotKeepsDefaults(t *testing.T) {
	app := newTestApp(t)
	userID := app.Progress().UserID

	require.NoError(t, app.Rehydrate())
	assert.Equal(t, userID, app.Progress().UserID)
	assert.Empty(t, app.Progress().CompletedLessons)
}

func TestSnapshotExcludesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	app := NewApp(NewFileStore(path))
	app.SetModules([]content.Module{{ID: "m1", Title: "Module"}})
	app.MarkLessonComplete("l1")

	snap, found, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"l1"}, snap.Progress.CompletedLessons)

	restarted := NewApp(NewFileStore(path))
	require.NoError(t, restarted.Rehydrate())
	assert.Empty(t, restarted.Modules(), "content must not ride along in the snapshot")
}

func TestResetProgressKeepsUserID(t *testing.T) {
	app := newTestApp(t)
	app.MarkLessonComplete("l1")
	app.MarkModuleComplete("m1")
	app.SetCurrentModule("m1")
	userID := app.Progress().UserID

	app.ResetProgress()

	p := app.Progress()
	assert.Equal(t, userID, p.UserID)
	assert.Empty(t, p.CompletedLessons)
	assert.Empty(t, p.CompletedModules)
	assert.Empty(t, p.Achievements)
	assert.Empty(t, app.CurrentModule())
}

func TestWithUserIDPinsIdentity(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "progress.json"))
	app := NewApp(fs, WithUserID("learner-0001"))
	assert.Equal(t, "learner-0001", app.Progress().UserID)

	app = NewApp(fs, WithUserID(""))
	assert.NotEmpty(t, app.Progress().UserID)
}

func TestAchievements(t *testing.T) {
	app := newTestApp(t)

	app.MarkLessonComplete("l1")
	app.MarkLessonComplete("l2")
	p := app.Progress()
	require.Len(t, p.Achievements, 1, "first-lesson must unlock once")
	assert.Equal(t, AchFirstLesson, p.Achievements[0].ID)
	assert.Equal(t, fixedTime, p.Achievements[0].UnlockedAt)

	app.MarkModuleComplete("m1")
	p = app.Progress()
	require.Len(t, p.Achievements, 2)
	assert.Equal(t, AchFirstModule, p.Achievements[1].ID)

	for i := 0; i < 3; i++ {
		app.SubmitAssessmentResult(content.AssessmentResult{QuestionID: "q1", IsCorrect: true, Timestamp: fixedTime})
	}
	p = app.Progress()
	require.Len(t, p.Achievements, 3)
	assert.Equal(t, AchAssessmentAce, p.Achievements[2].ID)
}

func TestSubscribersRunAfterMutations(t *testing.T) {
	app := newTestApp(t)

	calls := 0
	app.Subscribe(func() { calls++ })

	app.MarkLessonComplete("l1")
	app.UpdateTimeSpent(5)
	app.UpdateTimeSpent(-5) // ignored, no notification

	assert.Equal(t, 2, calls)
}

func TestFileStoreSaveIsAtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(Snapshot{Progress: content.NewUserProgress("u1")}))
	require.NoError(t, fs.Save(Snapshot{Progress: content.NewUserProgress("u2")}))

	snap, found, err := fs.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "u2", snap.Progress.UserID)

	require.NoError(t, fs.Remove())
	_, found, err = fs.Load()
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, fs.Remove(), "removing a missing snapshot is not an error")
}
