package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LessonResult reports the outcome of completing a lesson.
type LessonResult struct {
	LessonID        string `json:"lessonId"`
	ModuleID        string `json:"moduleId"`
	AlreadyComplete bool   `json:"alreadyComplete"`
	ModuleComplete  bool   `json:"moduleComplete"`
}

// NewLessonCommand creates the lesson command group.
func NewLessonCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Read and complete lessons",
	}

	show := &cobra.Command{
		Use:           "show <lesson-id>",
		Short:         "Show a lesson body",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessonShow(rootOpts, args[0], cmd)
		},
	}

	var minutes int
	complete := &cobra.Command{
		Use:           "complete <lesson-id>",
		Short:         "Mark a lesson as completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessonComplete(rootOpts, args[0], minutes, cmd)
		},
	}
	complete.Flags().IntVar(&minutes, "minutes", 0, "study time to add to the progress record")

	cmd.AddCommand(show, complete)
	return cmd
}

func runLessonShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	m, l, ok := findLesson(res.App, id)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("lesson %q not found", id), nil)
	}

	if moduleStatus(m, res.App.Progress()) == StatusLocked {
		return formatter.Fail(ExitFailure, ErrCodeLocked,
			fmt.Sprintf("module %q is locked: complete %v first", m.ID, m.PrerequisiteIDs), nil)
	}

	res.App.SetCurrentModule(m.ID)
	res.App.SetCurrentLesson(l.ID)

	if formatter.Format == "json" {
		return formatter.JSON(l)
	}

	fmt.Fprintf(formatter.Writer, "%s / %s\n\n", m.Title, l.Title)
	fmt.Fprintln(formatter.Writer, l.Body)
	return nil
}

func runLessonComplete(opts *RootOptions, id string, minutes int, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	m, l, ok := findLesson(res.App, id)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("lesson %q not found", id), nil)
	}

	if moduleStatus(m, res.App.Progress()) == StatusLocked {
		return formatter.Fail(ExitFailure, ErrCodeLocked,
			fmt.Sprintf("module %q is locked: complete %v first", m.ID, m.PrerequisiteIDs), nil)
	}

	already := res.App.Progress().LessonCompleted(l.ID)
	res.App.MarkLessonComplete(l.ID)
	if minutes > 0 {
		res.App.UpdateTimeSpent(minutes)
	}

	// A module is completed automatically once every one of its lessons is.
	progress := res.App.Progress()
	moduleDone := len(m.Lessons) > 0
	for _, ml := range m.Lessons {
		if !progress.LessonCompleted(ml.ID) {
			moduleDone = false
			break
		}
	}
	if moduleDone && !progress.ModuleCompleted(m.ID) {
		res.App.MarkModuleComplete(m.ID)
	}

	result := LessonResult{
		LessonID:        l.ID,
		ModuleID:        m.ID,
		AlreadyComplete: already,
		ModuleComplete:  res.App.Progress().ModuleCompleted(m.ID),
	}

	if formatter.Format == "json" {
		return formatter.JSON(result)
	}

	if already {
		fmt.Fprintf(formatter.Writer, "Lesson %s was already completed\n", l.ID)
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Lesson %s completed\n", l.ID)
	}
	if result.ModuleComplete {
		fmt.Fprintf(formatter.Writer, "✓ Module %s completed\n", m.ID)
	}
	return nil
}
