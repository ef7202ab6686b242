package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/state"
)

// ProgressSummary is the show-view projection of the progress record.
type ProgressSummary struct {
	UserID             string   `json:"userId"`
	ModulesCompleted   int      `json:"modulesCompleted"`
	ModulesTotal       int      `json:"modulesTotal"`
	LessonsCompleted   int      `json:"lessonsCompleted"`
	LessonsTotal       int      `json:"lessonsTotal"`
	AssessmentAttempts int      `json:"assessmentAttempts"`
	AssessmentCorrect  int      `json:"assessmentCorrect"`
	TotalTimeSpent     int      `json:"totalTimeSpent"`
	Achievements       []string `json:"achievements"`
	LastAccessedLesson string   `json:"lastAccessedLesson,omitempty"`
}

// NewProgressCommand creates the progress command group.
func NewProgressCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Inspect and export learning progress",
	}

	show := &cobra.Command{
		Use:           "show",
		Short:         "Summarize the progress record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgressShow(rootOpts, cmd)
		},
	}

	var outPath string
	export := &cobra.Command{
		Use:           "export",
		Short:         "Export the full progress record as JSON",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgressExport(rootOpts, outPath, cmd)
		},
	}
	export.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")

	cmd.AddCommand(show, export)
	return cmd
}

func runProgressShow(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	p := res.App.Progress()
	modules := res.App.Modules()
	lessonsTotal := 0
	for _, m := range modules {
		lessonsTotal += len(m.Lessons)
	}
	correct := 0
	for _, r := range p.AssessmentResults {
		if r.IsCorrect {
			correct++
		}
	}
	achievements := make([]string, 0, len(p.Achievements))
	for _, a := range p.Achievements {
		achievements = append(achievements, a.Title)
	}

	summary := ProgressSummary{
		UserID:             p.UserID,
		ModulesCompleted:   len(p.CompletedModules),
		ModulesTotal:       len(modules),
		LessonsCompleted:   len(p.CompletedLessons),
		LessonsTotal:       lessonsTotal,
		AssessmentAttempts: len(p.AssessmentResults),
		AssessmentCorrect:  correct,
		TotalTimeSpent:     p.TotalTimeSpent,
		Achievements:       achievements,
		LastAccessedLesson: p.LastAccessedLesson,
	}

	if formatter.Format == "json" {
		return formatter.JSON(summary)
	}

	fmt.Fprintf(formatter.Writer, "User:        %s\n", summary.UserID)
	fmt.Fprintf(formatter.Writer, "Modules:     %d/%d completed\n", summary.ModulesCompleted, summary.ModulesTotal)
	fmt.Fprintf(formatter.Writer, "Lessons:     %d/%d completed\n", summary.LessonsCompleted, summary.LessonsTotal)
	fmt.Fprintf(formatter.Writer, "Assessments: %d attempts, %d correct\n", summary.AssessmentAttempts, summary.AssessmentCorrect)
	fmt.Fprintf(formatter.Writer, "Time spent:  %d min\n", summary.TotalTimeSpent)
	if len(achievements) > 0 {
		fmt.Fprintf(formatter.Writer, "Achievements: %v\n", achievements)
	}
	if summary.LastAccessedLesson != "" {
		fmt.Fprintf(formatter.Writer, "Last lesson: %s\n", summary.LastAccessedLesson)
	}
	return nil
}

func runProgressExport(opts *RootOptions, outPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	doc, err := state.ExportProgress(res.App.Progress(), time.Now())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if outPath == "" {
		// The export document is the payload; no envelope in either format.
		_, err = formatter.Writer.Write(doc)
		return err
	}
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
	}
	formatter.VerboseLog("wrote %d bytes to %s", len(doc), outPath)
	if formatter.Format != "json" {
		fmt.Fprintf(formatter.Writer, "exported progress to %s\n", outPath)
	}
	return nil
}
