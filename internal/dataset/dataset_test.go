package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathlearn/pathinformatica/internal/content"
)

func TestLoadBundledContent(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	require.Len(t, b.Modules, 5)
	for i, m := range b.Modules {
		assert.Equal(t, i+1, m.Order, "modules are authored in curriculum order")
	}
	assert.Equal(t, "foundations-digital-pathology", b.Modules[0].ID)
	assert.NotEmpty(t, b.Modules[0].Lessons)

	assert.NotEmpty(t, b.Glossary)
	assert.NotEmpty(t, b.LOINC)
	assert.NotEmpty(t, b.SNOMED)
	assert.Len(t, b.Cases, 2)
	assert.NotEmpty(t, b.Questions)
}

func TestBundledContentIsValid(t *testing.T) {
	_, errs, err := Validate()
	require.NoError(t, err)
	assert.Empty(t, errs, "shipped datasets must pass schema and integrity checks")
}

func TestPrerequisitesResolveAndStayAcyclic(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, m := range b.Modules {
		ids[m.ID] = true
	}
	for _, m := range b.Modules {
		for _, pre := range m.PrerequisiteIDs {
			assert.True(t, ids[pre], "module %s references unknown prerequisite %s", m.ID, pre)
		}
	}
	assert.Empty(t, content.PrerequisiteCycles(b.Modules))
}

func TestQuestionAnswerKeysMatchOptions(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	for _, q := range b.Questions {
		options := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			options[o.ID] = true
		}
		require.NotEmpty(t, q.CorrectAnswers, "question %s has no answer key", q.ID)
		for _, a := range q.CorrectAnswers {
			assert.True(t, options[a], "question %s key %q is not an option", q.ID, a)
		}
	}
}

func TestCaseWorkflowStepValues(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	var c content.CaseScenario
	for _, cs := range b.Cases {
		if cs.ID == "case-breast-biopsy" {
			c = cs
		}
	}
	require.NotEmpty(t, c.ID)

	var scanning content.WorkflowStep
	for _, step := range c.Workflow {
		if step.ID == "scanning" {
			scanning = step
		}
	}
	require.NotEmpty(t, scanning.ID)

	assert.Equal(t, content.NumberValue(0.25), scanning.Outputs["resolution"])
	require.NotEmpty(t, scanning.ValidationRules)
	assert.Equal(t, content.NumberValue(0.8), scanning.ValidationRules[0].Parameters["min"])
}
