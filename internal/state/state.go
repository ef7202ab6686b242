package state

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// App is the in-memory state container. It is safe for concurrent use; all
// reads return copies so callers never observe a mutation in flight.
type App struct {
	mu        sync.RWMutex
	persister Persister
	now       func() time.Time

	// Content state, replaced wholesale at bootstrap.
	modules   []content.Module
	glossary  []content.GlossaryTerm
	cases     []content.CaseScenario
	questions []content.AssessmentQuestion
	loinc     []content.LOINCCode
	snomed    []content.SNOMEDCode

	// Navigation pointers, persisted with the snapshot.
	currentModule string
	currentLesson string

	progress    content.UserProgress
	subscribers []func()
}

// Option configures an App.
type Option func(*App)

// WithClock overrides the time source. Used by tests and golden fixtures.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithUserID pins the learner identity instead of minting a fresh one. An
// empty id is ignored.
func WithUserID(id string) Option {
	return func(a *App) {
		if id != "" {
			a.progress = content.NewUserProgress(id)
		}
	}
}

// NewApp constructs a state container for a fresh installation. The user id
// is minted as a UUIDv7 unless a snapshot later rehydrates an existing one.
func NewApp(persister Persister, opts ...Option) *App {
	a := &App{
		persister: persister,
		now:       time.Now,
		progress:  content.NewUserProgress(uuid.Must(uuid.NewV7()).String()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Subscribe registers fn to run after every state mutation. Subscribers are
// invoked synchronously, outside the state lock.
func (a *App) Subscribe(fn func()) {
	a.mu.Lock()
	a.subscribers = append(a.subscribers, fn)
	a.mu.Unlock()
}

// Rehydrate loads the persisted snapshot into the container. Must run
// before any content-dependent reads; a missing snapshot leaves the fresh
// defaults in place.
func (a *App) Rehydrate() error {
	snap, found, err := a.persister.Load()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	a.mu.Lock()
	a.progress = snap.Progress
	a.currentModule = snap.CurrentModule
	a.currentLesson = snap.CurrentLesson
	a.mu.Unlock()
	return nil
}

// SetModules replaces the loaded module collection.
func (a *App) SetModules(modules []content.Module) {
	a.mu.Lock()
	a.modules = modules
	a.mu.Unlock()
	a.notify()
}

// SetGlossaryTerms replaces the loaded glossary collection.
func (a *App) SetGlossaryTerms(terms []content.GlossaryTerm) {
	a.mu.Lock()
	a.glossary = terms
	a.mu.Unlock()
	a.notify()
}

// SetCases replaces the loaded case scenario collection.
func (a *App) SetCases(cases []content.CaseScenario) {
	a.mu.Lock()
	a.cases = cases
	a.mu.Unlock()
	a.notify()
}

// SetQuestions replaces the loaded assessment question bank.
func (a *App) SetQuestions(questions []content.AssessmentQuestion) {
	a.mu.Lock()
	a.questions = questions
	a.mu.Unlock()
	a.notify()
}

// SetLOINCCodes replaces the loaded LOINC reference table.
func (a *App) SetLOINCCodes(codes []content.LOINCCode) {
	a.mu.Lock()
	a.loinc = codes
	a.mu.Unlock()
	a.notify()
}

// SetSNOMEDCodes replaces the loaded SNOMED CT reference table.
func (a *App) SetSNOMEDCodes(codes []content.SNOMEDCode) {
	a.mu.Lock()
	a.snomed = codes
	a.mu.Unlock()
	a.notify()
}

// Modules returns the loaded modules.
func (a *App) Modules() []content.Module {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.Module(nil), a.modules...)
}

// GlossaryTerms returns the loaded glossary terms.
func (a *App) GlossaryTerms() []content.GlossaryTerm {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.GlossaryTerm(nil), a.glossary...)
}

// Cases returns the loaded case scenarios.
func (a *App) Cases() []content.CaseScenario {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.CaseScenario(nil), a.cases...)
}

// Questions returns the loaded assessment questions.
func (a *App) Questions() []content.AssessmentQuestion {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.AssessmentQuestion(nil), a.questions...)
}

// LOINCCodes returns the loaded LOINC reference table.
func (a *App) LOINCCodes() []content.LOINCCode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.LOINCCode(nil), a.loinc...)
}

// SNOMEDCodes returns the loaded SNOMED CT reference table.
func (a *App) SNOMEDCodes() []content.SNOMEDCode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]content.SNOMEDCode(nil), a.snomed...)
}

// Progress returns a copy of the live progress record.
func (a *App) Progress() content.UserProgress {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return copyProgress(a.progress)
}

// CurrentModule returns the current module pointer.
func (a *App) CurrentModule() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentModule
}

// CurrentLesson returns the current lesson pointer.
func (a *App) CurrentLesson() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentLesson
}

// SetCurrentModule records the module being viewed.
func (a *App) SetCurrentModule(moduleID string) {
	a.mu.Lock()
	a.currentModule = moduleID
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// SetCurrentLesson records the lesson being viewed.
func (a *App) SetCurrentLesson(lessonID string) {
	a.mu.Lock()
	a.currentLesson = lessonID
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// MarkLessonComplete adds the lesson to the completed set and records it as
// the last-accessed lesson. Idempotent: marking a lesson twice has no
// additional effect on the set.
func (a *App) MarkLessonComplete(lessonID string) {
	a.mu.Lock()
	if !a.progress.LessonCompleted(lessonID) {
		a.progress.CompletedLessons = append(a.progress.CompletedLessons, lessonID)
	}
	a.progress.LastAccessedLesson = lessonID
	a.unlockLocked()
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// MarkModuleComplete adds the module to the completed set. Idempotent.
func (a *App) MarkModuleComplete(moduleID string) {
	a.mu.Lock()
	if !a.progress.ModuleCompleted(moduleID) {
		a.progress.CompletedModules = append(a.progress.CompletedModules, moduleID)
	}
	a.unlockLocked()
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// SubmitAssessmentResult appends the result to the attempt history. Prior
// attempts at the same question are preserved, never overwritten.
func (a *App) SubmitAssessmentResult(result content.AssessmentResult) {
	a.mu.Lock()
	a.progress.AssessmentResults = append(a.progress.AssessmentResults, result)
	a.unlockLocked()
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// UpdateTimeSpent adds a non-negative delta, in minutes, to the cumulative
// time counter. Negative deltas are ignored.
func (a *App) UpdateTimeSpent(minutes int) {
	if minutes < 0 {
		slog.Warn("ignoring negative time-spent delta", "minutes", minutes)
		return
	}
	a.mu.Lock()
	a.progress.TotalTimeSpent += minutes
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// ResetProgress replaces the progress record with fresh defaults for the
// same user id and clears the navigation pointers. Used by the reset action.
func (a *App) ResetProgress() {
	a.mu.Lock()
	a.progress = content.NewUserProgress(a.progress.UserID)
	a.currentModule = ""
	a.currentLesson = ""
	a.mu.Unlock()
	a.persist()
	a.notify()
}

// persist writes the snapshot through the persistence middleware. Failures
// are logged, not returned: a failed write leaves the previous snapshot
// intact and the session continues in memory.
func (a *App) persist() {
	if a.persister == nil {
		return
	}
	a.mu.RLock()
	snap := Snapshot{
		Progress:      copyProgress(a.progress),
		CurrentModule: a.currentModule,
		CurrentLesson: a.currentLesson,
	}
	a.mu.RUnlock()

	if err := a.persister.Save(snap); err != nil {
		slog.Warn("snapshot write failed", "error", err)
	}
}

func (a *App) notify() {
	a.mu.RLock()
	subs := append([]func(){}, a.subscribers...)
	a.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func copyProgress(p content.UserProgress) content.UserProgress {
	out := p
	out.CompletedLessons = append([]string{}, p.CompletedLessons...)
	out.CompletedModules = append([]string{}, p.CompletedModules...)
	out.AssessmentResults = append([]content.AssessmentResult{}, p.AssessmentResults...)
	out.Achievements = append([]content.Achievement{}, p.Achievements...)
	return out
}
