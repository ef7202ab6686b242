// Package bootstrap brings the application from a cold start to a ready
// state: open the durable store, seed it with the bundled content on first
// run, load content into the state container, and rehydrate the persisted
// progress snapshot.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pathlearn/pathinformatica/internal/config"
	"github.com/pathlearn/pathinformatica/internal/content"
	"github.com/pathlearn/pathinformatica/internal/dataset"
	"github.com/pathlearn/pathinformatica/internal/state"
	"github.com/pathlearn/pathinformatica/internal/store"
)

// Phase tracks bootstrap progress. Transitions are strictly forward; a
// finished bootstrap reports Ready or DegradedReady and never runs again.
type Phase string

const (
	PhaseNotStarted     Phase = "not-started"
	PhaseInitializing   Phase = "initializing"
	PhaseSeedingContent Phase = "seeding-content"
	PhaseReady          Phase = "ready"
	// PhaseDegradedReady means the durable store is unavailable and the
	// session runs on the embedded content alone. Progress still persists
	// through the snapshot file.
	PhaseDegradedReady Phase = "degraded-ready"
)

// Result is what a finished bootstrap hands to the rest of the program. In
// the degraded phase Store is nil.
type Result struct {
	Phase Phase
	Store *store.Store
	App   *state.App
}

// Bootstrapper runs the startup sequence exactly once.
type Bootstrapper struct {
	mu     sync.Mutex
	cfg    config.Config
	phase  Phase
	result Result
}

func New(cfg config.Config) *Bootstrapper {
	return &Bootstrapper{cfg: cfg, phase: PhaseNotStarted}
}

// Phase returns the current bootstrap phase.
func (b *Bootstrapper) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Run executes the bootstrap sequence. Calling Run again after it has
// reached a ready phase returns the same result without re-running.
func (b *Bootstrapper) Run(ctx context.Context) (Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase == PhaseReady || b.phase == PhaseDegradedReady {
		return b.result, nil
	}

	b.phase = PhaseInitializing

	bundle, err := dataset.Load()
	if err != nil {
		return Result{}, fmt.Errorf("loading bundled content: %w", err)
	}
	for _, cycle := range content.PrerequisiteCycles(bundle.Modules) {
		slog.Warn("prerequisite cycle in bundled modules", "cycle", strings.Join(cycle, " -> "))
	}

	app := state.NewApp(state.NewFileStore(b.cfg.SnapshotPath()),
		state.WithUserID(b.cfg.UserID))
	if err := app.Rehydrate(); err != nil {
		slog.Warn("progress snapshot unreadable, starting fresh", "error", err)
	}

	st, err := store.Open(b.cfg.DBPath())
	if err != nil {
		slog.Error("durable store unavailable, continuing without it",
			"path", b.cfg.DBPath(), "error", err)
		b.loadContent(app, bundle)
		b.phase = PhaseDegradedReady
		b.result = Result{Phase: b.phase, App: app}
		return b.result, nil
	}

	if err := b.seedIfEmpty(ctx, st, bundle); err != nil {
		slog.Error("seeding failed, continuing on embedded content", "error", err)
		_ = st.Close()
		b.loadContent(app, bundle)
		b.phase = PhaseDegradedReady
		b.result = Result{Phase: b.phase, App: app}
		return b.result, nil
	}

	if err := b.loadFromStore(ctx, st, app, bundle); err != nil {
		slog.Error("reading seeded content failed, continuing on embedded content", "error", err)
		_ = st.Close()
		b.loadContent(app, bundle)
		b.phase = PhaseDegradedReady
		b.result = Result{Phase: b.phase, App: app}
		return b.result, nil
	}

	// Write-through: every progress mutation also lands in the progress
	// table so the store and the snapshot never drift far apart.
	app.Subscribe(func() {
		if err := st.PutProgress(context.Background(), app.Progress()); err != nil {
			slog.Warn("progress write-through failed", "error", err)
		}
	})

	b.phase = PhaseReady
	b.result = Result{Phase: b.phase, Store: st, App: app}
	slog.Info("bootstrap complete", "phase", b.phase, "modules", len(bundle.Modules))
	return b.result, nil
}

// seedIfEmpty populates the content tables on first run. A non-empty modules
// table means a previous run already seeded; content rows are then upserted
// so dataset updates still reach the store.
func (b *Bootstrapper) seedIfEmpty(ctx context.Context, st *store.Store, bundle content.Bundle) error {
	n, err := st.Count(ctx, "modules")
	if err != nil {
		return err
	}
	if n == 0 {
		b.phase = PhaseSeedingContent
		slog.Info("seeding content tables",
			"modules", len(bundle.Modules),
			"glossary", len(bundle.Glossary),
			"loinc", len(bundle.LOINC),
			"snomed", len(bundle.SNOMED),
			"cases", len(bundle.Cases))
	}

	if err := st.PutModules(ctx, bundle.Modules); err != nil {
		return err
	}
	if err := st.PutGlossaryTerms(ctx, bundle.Glossary); err != nil {
		return err
	}
	if err := st.PutLOINCCodes(ctx, bundle.LOINC); err != nil {
		return err
	}
	if err := st.PutSNOMEDCodes(ctx, bundle.SNOMED); err != nil {
		return err
	}
	return st.PutCases(ctx, bundle.Cases)
}

// loadFromStore reads the seeded collections back so the session sees what
// the store holds, not what the binary shipped with.
func (b *Bootstrapper) loadFromStore(ctx context.Context, st *store.Store, app *state.App, bundle content.Bundle) error {
	modules, err := st.GetAllModules(ctx)
	if err != nil {
		return err
	}
	glossary, err := st.GetAllGlossaryTerms(ctx)
	if err != nil {
		return err
	}
	cases, err := st.GetAllCases(ctx)
	if err != nil {
		return err
	}
	app.SetModules(modules)
	app.SetGlossaryTerms(glossary)
	app.SetCases(cases)

	loinc, err := st.GetAllLOINCCodes(ctx)
	if err != nil {
		return err
	}
	snomed, err := st.GetAllSNOMEDCodes(ctx)
	if err != nil {
		return err
	}
	app.SetLOINCCodes(loinc)
	app.SetSNOMEDCodes(snomed)

	// The question bank is not a store table; it ships with the binary.
	app.SetQuestions(bundle.Questions)
	return nil
}

func (b *Bootstrapper) loadContent(app *state.App, bundle content.Bundle) {
	app.SetModules(bundle.Modules)
	app.SetGlossaryTerms(bundle.Glossary)
	app.SetCases(bundle.Cases)
	app.SetQuestions(bundle.Questions)
	app.SetLOINCCodes(bundle.LOINC)
	app.SetSNOMEDCodes(bundle.SNOMED)
}
