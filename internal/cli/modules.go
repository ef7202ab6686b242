package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/content"
	"github.com/pathlearn/pathinformatica/internal/state"
)

// Module availability as shown to the learner.
const (
	StatusLocked    = "locked"    // prerequisites incomplete
	StatusAvailable = "available" // ready to start
	StatusCompleted = "completed"
)

// ModuleSummary is the list-view projection of a module.
type ModuleSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Order            int    `json:"order"`
	Status           string `json:"status"`
	Lessons          int    `json:"lessons"`
	LessonsCompleted int    `json:"lessonsCompleted"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

// ModuleDetail is the show-view projection of a module.
type ModuleDetail struct {
	content.Module
	Status string `json:"status"`
}

// NewModulesCommand creates the modules command group.
func NewModulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Browse the learning modules",
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List modules in curriculum order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModulesList(rootOpts, cmd)
		},
	}

	show := &cobra.Command{
		Use:           "show <module-id>",
		Short:         "Show one module with its lessons",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModulesShow(rootOpts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func runModulesList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	progress := res.App.Progress()
	summaries := make([]ModuleSummary, 0)
	for _, m := range res.App.Modules() {
		done := 0
		for _, l := range m.Lessons {
			if progress.LessonCompleted(l.ID) {
				done++
			}
		}
		summaries = append(summaries, ModuleSummary{
			ID:               m.ID,
			Title:            m.Title,
			Order:            m.Order,
			Status:           moduleStatus(m, progress),
			Lessons:          len(m.Lessons),
			LessonsCompleted: done,
			EstimatedMinutes: m.EstimatedMinutes,
		})
	}

	if formatter.Format == "json" {
		return formatter.JSON(summaries)
	}

	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "%d. %-32s %-10s %d/%d lessons, ~%d min\n",
			s.Order, s.ID, s.Status, s.LessonsCompleted, s.Lessons, s.EstimatedMinutes)
	}
	return nil
}

func runModulesShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	m, ok := findModule(res.App, id)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("module %q not found", id), nil)
	}

	progress := res.App.Progress()
	detail := ModuleDetail{Module: m, Status: moduleStatus(m, progress)}
	res.App.SetCurrentModule(m.ID)

	if formatter.Format == "json" {
		return formatter.JSON(detail)
	}

	fmt.Fprintf(formatter.Writer, "%s (%s)\n", m.Title, detail.Status)
	fmt.Fprintln(formatter.Writer, m.Description)
	if len(m.PrerequisiteIDs) > 0 {
		fmt.Fprintf(formatter.Writer, "Prerequisites: %v\n", m.PrerequisiteIDs)
	}
	fmt.Fprintln(formatter.Writer)
	for _, l := range m.Lessons {
		mark := " "
		if progress.LessonCompleted(l.ID) {
			mark = "✓"
		}
		fmt.Fprintf(formatter.Writer, "  %s %d. %s (%s)\n", mark, l.Order, l.Title, l.ID)
	}
	return nil
}

// moduleStatus derives the learner-facing availability of a module from the
// progress record. A module with every prerequisite completed is available;
// prerequisites never block once the module itself is completed.
func moduleStatus(m content.Module, p content.UserProgress) string {
	if p.ModuleCompleted(m.ID) {
		return StatusCompleted
	}
	for _, pre := range m.PrerequisiteIDs {
		if !p.ModuleCompleted(pre) {
			return StatusLocked
		}
	}
	return StatusAvailable
}

func findModule(app *state.App, id string) (content.Module, bool) {
	for _, m := range app.Modules() {
		if m.ID == id {
			return m, true
		}
	}
	return content.Module{}, false
}

func findLesson(app *state.App, id string) (content.Module, content.Lesson, bool) {
	for _, m := range app.Modules() {
		for _, l := range m.Lessons {
			if l.ID == id {
				return m, l, true
			}
		}
	}
	return content.Module{}, content.Lesson{}, false
}
