package state

import "github.com/pathlearn/pathinformatica/internal/content"

// Achievement ids and the milestones that unlock them.
const (
	AchFirstLesson   = "first-lesson"
	AchFirstModule   = "first-module"
	AchAssessmentAce = "assessment-ace"
)

// assessmentAceThreshold is the number of correct attempts required for the
// assessment-ace achievement.
const assessmentAceThreshold = 3

// unlockLocked evaluates achievement milestones against the current
// progress and appends any newly earned achievements. Caller holds a.mu.
func (a *App) unlockLocked() {
	if len(a.progress.CompletedLessons) >= 1 {
		a.grantLocked(AchFirstLesson, "First Steps", "Completed your first lesson.")
	}
	if len(a.progress.CompletedModules) >= 1 {
		a.grantLocked(AchFirstModule, "Module Master", "Completed your first module.")
	}

	correct := 0
	for _, r := range a.progress.AssessmentResults {
		if r.IsCorrect {
			correct++
		}
	}
	if correct >= assessmentAceThreshold {
		a.grantLocked(AchAssessmentAce, "Assessment Ace", "Answered three assessment questions correctly.")
	}
}

// grantLocked appends an achievement unless it is already held.
func (a *App) grantLocked(id, title, description string) {
	for _, ach := range a.progress.Achievements {
		if ach.ID == id {
			return
		}
	}
	a.progress.Achievements = append(a.progress.Achievements, content.Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		UnlockedAt:  a.now(),
	})
}
