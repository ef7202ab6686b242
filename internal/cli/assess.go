package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pathlearn/pathinformatica/internal/content"
)

// QuestionSummary hides the answer key from the list view.
type QuestionSummary struct {
	ID         string                     `json:"id"`
	ModuleID   string                     `json:"moduleId"`
	Type       content.QuestionType       `json:"type"`
	Question   string                     `json:"question"`
	Options    []content.AssessmentOption `json:"options"`
	Difficulty content.Difficulty         `json:"difficulty"`
	Attempted  bool                       `json:"attempted"`
}

// AnswerResult reports one graded attempt.
type AnswerResult struct {
	QuestionID  string   `json:"questionId"`
	Correct     bool     `json:"correct"`
	UserAnswers []string `json:"userAnswers"`
	Explanation string   `json:"explanation"`
}

// NewAssessCommand creates the assess command group.
func NewAssessCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Answer self-assessment questions",
	}

	var moduleID string
	list := &cobra.Command{
		Use:           "list",
		Short:         "List assessment questions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessList(rootOpts, moduleID, cmd)
		},
	}
	list.Flags().StringVar(&moduleID, "module", "", "only questions for this module")

	answer := &cobra.Command{
		Use:           "answer <question-id> <option-id>...",
		Short:         "Submit an answer and see the grading",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessAnswer(rootOpts, args[0], args[1:], cmd)
		},
	}

	cmd.AddCommand(list, answer)
	return cmd
}

func runAssessList(opts *RootOptions, moduleID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	attempted := make(map[string]bool)
	for _, r := range res.App.Progress().AssessmentResults {
		attempted[r.QuestionID] = true
	}

	summaries := make([]QuestionSummary, 0)
	for _, q := range res.App.Questions() {
		if moduleID != "" && q.ModuleID != moduleID {
			continue
		}
		summaries = append(summaries, QuestionSummary{
			ID:         q.ID,
			ModuleID:   q.ModuleID,
			Type:       q.Type,
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Attempted:  attempted[q.ID],
		})
	}

	if formatter.Format == "json" {
		return formatter.JSON(summaries)
	}
	for _, s := range summaries {
		mark := " "
		if s.Attempted {
			mark = "•"
		}
		fmt.Fprintf(formatter.Writer, "%s %-6s %-28s %-8s %s\n",
			mark, s.ID, s.ModuleID, s.Difficulty, s.Question)
	}
	return nil
}

func runAssessAnswer(opts *RootOptions, questionID string, answers []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	res, err := opts.Boot(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	var question content.AssessmentQuestion
	found := false
	for _, q := range res.App.Questions() {
		if q.ID == questionID {
			question, found = q, true
			break
		}
	}
	if !found {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound,
			fmt.Sprintf("question %q not found", questionID), nil)
	}

	options := make(map[string]bool, len(question.Options))
	for _, o := range question.Options {
		options[o.ID] = true
	}
	for _, a := range answers {
		if !options[a] {
			return formatter.Fail(ExitCommandError, ErrCodeBadArgument,
				fmt.Sprintf("%q is not an option of %s", a, question.ID), nil)
		}
	}

	correct := sameAnswerSet(answers, question.CorrectAnswers)
	res.App.SubmitAssessmentResult(content.AssessmentResult{
		QuestionID:  question.ID,
		UserAnswers: answers,
		IsCorrect:   correct,
		Timestamp:   time.Now().UTC(),
	})

	result := AnswerResult{
		QuestionID:  question.ID,
		Correct:     correct,
		UserAnswers: answers,
		Explanation: question.Explanation,
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else if correct {
		fmt.Fprintf(formatter.Writer, "✓ Correct\n%s\n", question.Explanation)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Incorrect\n%s\n", question.Explanation)
	}

	if !correct {
		return NewExitError(ExitFailure, "incorrect answer")
	}
	return nil
}

// sameAnswerSet grades an attempt: order never matters, duplicates collapse,
// and partial overlap with the key is wrong.
func sameAnswerSet(got, want []string) bool {
	g := uniqueSorted(got)
	w := uniqueSorted(want)
	if len(g) != len(w) {
		return false
	}
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
