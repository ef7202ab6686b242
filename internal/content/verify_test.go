package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBundle() Bundle {
	return Bundle{
		Modules: []Module{
			{ID: "a", Title: "A", Description: "d", Order: 1, PrerequisiteIDs: []string{},
				Lessons: []Lesson{{ID: "a1", ModuleID: "a", Title: "L", Body: "b", BloomLevel: BloomRemember, Order: 1}}},
			{ID: "b", Title: "B", Description: "d", Order: 2, PrerequisiteIDs: []string{"a"}},
		},
		Glossary: []GlossaryTerm{{ID: "wsi", Term: "WSI", Definition: "d", Category: CategoryPathology}},
		LOINC:    []LOINCCode{{Code: "22637-3", Component: "c", DisplayName: "n", Category: LOINCLab}},
		SNOMED:   []SNOMEDCode{{ConceptID: "396152003", Term: "t", FullySpecifiedName: "f"}},
		Questions: []AssessmentQuestion{{
			ID: "q1", ModuleID: "a", Type: QuestionMultipleChoice, Question: "?",
			Options:        []AssessmentOption{{ID: "x", Text: "X"}, {ID: "y", Text: "Y"}},
			CorrectAnswers: []string{"x"}, Difficulty: DifficultyEasy, BloomLevel: BloomRemember,
		}},
	}
}

func TestVerifyCleanBundle(t *testing.T) {
	assert.Empty(t, Verify(validBundle()))
}

func TestVerifyDuplicateModuleID(t *testing.T) {
	b := validBundle()
	b.Modules = append(b.Modules, Module{ID: "a", Title: "dup", Description: "d", Order: 3})

	errs := Verify(b)
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeDuplicateID, errs[0].Code)
}

func TestVerifyUnknownPrerequisite(t *testing.T) {
	b := validBundle()
	b.Modules[1].PrerequisiteIDs = []string{"ghost"}

	errs := Verify(b)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeUnknownPrereq, errs[0].Code)
	assert.Contains(t, errs[0].Message, "ghost")
}

func TestVerifyLessonModuleMismatch(t *testing.T) {
	b := validBundle()
	b.Modules[0].Lessons[0].ModuleID = "b"

	errs := Verify(b)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeUnknownModule, errs[0].Code)
}

func TestVerifyBadAnswerKey(t *testing.T) {
	b := validBundle()
	b.Questions[0].CorrectAnswers = []string{"z"}

	errs := Verify(b)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeBadAnswerKey, errs[0].Code)
}

func TestVerifyInvalidEnum(t *testing.T) {
	b := validBundle()
	b.Glossary[0].Category = "Botany"

	errs := Verify(b)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodeInvalidEnum, errs[0].Code)
}

func TestVerifyPrereqCycle(t *testing.T) {
	b := validBundle()
	b.Modules[0].PrerequisiteIDs = []string{"b"}

	errs := Verify(b)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrCodePrereqCycle, errs[0].Code)
}

func TestPrerequisiteCycles(t *testing.T) {
	t.Run("acyclic chain", func(t *testing.T) {
		modules := []Module{
			{ID: "a"},
			{ID: "b", PrerequisiteIDs: []string{"a"}},
			{ID: "c", PrerequisiteIDs: []string{"a", "b"}},
		}
		assert.Empty(t, PrerequisiteCycles(modules))
	})

	t.Run("two-node cycle", func(t *testing.T) {
		modules := []Module{
			{ID: "a", PrerequisiteIDs: []string{"b"}},
			{ID: "b", PrerequisiteIDs: []string{"a"}},
		}
		cycles := PrerequisiteCycles(modules)
		require.Len(t, cycles, 1)
		cycle := cycles[0]
		assert.Equal(t, cycle[0], cycle[len(cycle)-1], "cycle path must close on itself")
		assert.GreaterOrEqual(t, len(cycle), 3)
	})

	t.Run("self loop", func(t *testing.T) {
		modules := []Module{{ID: "a", PrerequisiteIDs: []string{"a"}}}
		cycles := PrerequisiteCycles(modules)
		require.Len(t, cycles, 1)
		assert.Equal(t, []string{"a", "a"}, cycles[0])
	})

	t.Run("unknown prereqs are not edges", func(t *testing.T) {
		modules := []Module{{ID: "a", PrerequisiteIDs: []string{"ghost"}}}
		assert.Empty(t, PrerequisiteCycles(modules))
	})
}
