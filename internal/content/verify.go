package content

import (
	"fmt"
	"strings"
)

// Validation error codes.
const (
	ErrCodeDuplicateID   = "C001" // primary key repeated within a collection
	ErrCodeEmptyField    = "C002" // required field empty
	ErrCodeUnknownModule = "C003" // lesson or question references a missing module
	ErrCodeUnknownPrereq = "C004" // prerequisite references a missing module
	ErrCodeInvalidEnum   = "C005" // enum field outside its fixed set
	ErrCodePrereqCycle   = "C006" // prerequisite graph contains a cycle
	ErrCodeBadAnswerKey  = "C007" // correct answer not among the options
	ErrCodeSchema        = "C008" // record shape rejected by the dataset schema
)

// ValidationError describes one integrity violation found in authored
// content. Validation errors are data for display, not exceptions.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Bundle groups every content collection so cross-collection invariants can
// be checked in one place.
type Bundle struct {
	Modules   []Module
	Glossary  []GlossaryTerm
	LOINC     []LOINCCode
	SNOMED    []SNOMEDCode
	Cases     []CaseScenario
	Questions []AssessmentQuestion
}

// Verify checks every dataset invariant and returns the full list of
// violations. An empty list means the bundle is consistent.
func Verify(b Bundle) []ValidationError {
	var errs []ValidationError

	moduleIDs := make(map[string]bool, len(b.Modules))
	for _, m := range b.Modules {
		if m.ID == "" {
			errs = append(errs, ValidationError{Field: "module.id", Message: "module id is empty", Code: ErrCodeEmptyField})
			continue
		}
		if moduleIDs[m.ID] {
			errs = append(errs, ValidationError{Field: "module." + m.ID, Message: "duplicate module id", Code: ErrCodeDuplicateID})
		}
		moduleIDs[m.ID] = true
	}

	lessonIDs := make(map[string]bool)
	for _, m := range b.Modules {
		for _, l := range m.Lessons {
			field := fmt.Sprintf("module.%s.lesson.%s", m.ID, l.ID)
			if l.ID == "" {
				errs = append(errs, ValidationError{Field: field, Message: "lesson id is empty", Code: ErrCodeEmptyField})
				continue
			}
			if lessonIDs[l.ID] {
				errs = append(errs, ValidationError{Field: field, Message: "duplicate lesson id", Code: ErrCodeDuplicateID})
			}
			lessonIDs[l.ID] = true
			if !moduleIDs[l.ModuleID] {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("lesson references unknown module %q", l.ModuleID), Code: ErrCodeUnknownModule})
			}
			if l.ModuleID != m.ID {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("lesson owned by %q but references %q", m.ID, l.ModuleID), Code: ErrCodeUnknownModule})
			}
			if !l.BloomLevel.Valid() {
				errs = append(errs, ValidationError{Field: field + ".bloomLevel", Message: fmt.Sprintf("invalid bloom level %q", l.BloomLevel), Code: ErrCodeInvalidEnum})
			}
			for _, ll := range l.LearnerLevels {
				if !ll.Valid() {
					errs = append(errs, ValidationError{Field: field + ".learnerLevels", Message: fmt.Sprintf("invalid learner level %q", ll), Code: ErrCodeInvalidEnum})
				}
			}
		}
	}

	for _, m := range b.Modules {
		for _, pre := range m.PrerequisiteIDs {
			if !moduleIDs[pre] {
				errs = append(errs, ValidationError{
					Field:   "module." + m.ID + ".prerequisiteIds",
					Message: fmt.Sprintf("prerequisite %q does not exist", pre),
					Code:    ErrCodeUnknownPrereq,
				})
			}
		}
	}
	for _, cycle := range PrerequisiteCycles(b.Modules) {
		errs = append(errs, ValidationError{
			Field:   "module." + cycle[0] + ".prerequisiteIds",
			Message: "prerequisite cycle: " + strings.Join(cycle, " -> "),
			Code:    ErrCodePrereqCycle,
		})
	}

	termIDs := make(map[string]bool, len(b.Glossary))
	for _, t := range b.Glossary {
		if termIDs[t.ID] {
			errs = append(errs, ValidationError{Field: "glossary." + t.ID, Message: "duplicate term id", Code: ErrCodeDuplicateID})
		}
		termIDs[t.ID] = true
		if !t.Category.Valid() {
			errs = append(errs, ValidationError{Field: "glossary." + t.ID + ".category", Message: fmt.Sprintf("invalid category %q", t.Category), Code: ErrCodeInvalidEnum})
		}
	}

	loincCodes := make(map[string]bool, len(b.LOINC))
	for _, c := range b.LOINC {
		if loincCodes[c.Code] {
			errs = append(errs, ValidationError{Field: "loinc." + c.Code, Message: "duplicate code", Code: ErrCodeDuplicateID})
		}
		loincCodes[c.Code] = true
		if !c.Category.Valid() {
			errs = append(errs, ValidationError{Field: "loinc." + c.Code + ".category", Message: fmt.Sprintf("invalid category %q", c.Category), Code: ErrCodeInvalidEnum})
		}
	}

	snomedIDs := make(map[string]bool, len(b.SNOMED))
	for _, c := range b.SNOMED {
		if snomedIDs[c.ConceptID] {
			errs = append(errs, ValidationError{Field: "snomed." + c.ConceptID, Message: "duplicate concept id", Code: ErrCodeDuplicateID})
		}
		snomedIDs[c.ConceptID] = true
	}

	caseIDs := make(map[string]bool, len(b.Cases))
	for _, c := range b.Cases {
		if caseIDs[c.ID] {
			errs = append(errs, ValidationError{Field: "case." + c.ID, Message: "duplicate case id", Code: ErrCodeDuplicateID})
		}
		caseIDs[c.ID] = true
		for _, step := range c.Workflow {
			if !step.Status.Valid() {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("case.%s.workflow.%s.status", c.ID, step.ID), Message: fmt.Sprintf("invalid status %q", step.Status), Code: ErrCodeInvalidEnum})
			}
		}
	}

	questionIDs := make(map[string]bool, len(b.Questions))
	for _, q := range b.Questions {
		field := "question." + q.ID
		if questionIDs[q.ID] {
			errs = append(errs, ValidationError{Field: field, Message: "duplicate question id", Code: ErrCodeDuplicateID})
		}
		questionIDs[q.ID] = true
		if q.ModuleID != "" && !moduleIDs[q.ModuleID] {
			errs = append(errs, ValidationError{Field: field + ".moduleId", Message: fmt.Sprintf("question references unknown module %q", q.ModuleID), Code: ErrCodeUnknownModule})
		}
		if !q.Type.Valid() {
			errs = append(errs, ValidationError{Field: field + ".type", Message: fmt.Sprintf("invalid question type %q", q.Type), Code: ErrCodeInvalidEnum})
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, ValidationError{Field: field + ".difficulty", Message: fmt.Sprintf("invalid difficulty %q", q.Difficulty), Code: ErrCodeInvalidEnum})
		}
		options := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			options[o.ID] = true
		}
		for _, a := range q.CorrectAnswers {
			if !options[a] {
				errs = append(errs, ValidationError{Field: field + ".correctAnswers", Message: fmt.Sprintf("answer %q is not an option", a), Code: ErrCodeBadAnswerKey})
			}
		}
	}

	return errs
}

// PrerequisiteCycles detects cycles in the module prerequisite graph using
// Tarjan's strongly-connected-components algorithm. Each returned cycle is a
// path of module ids ending where it started, e.g. ["a", "b", "a"].
//
// The datasets shipped with the application are required to be acyclic; the
// bootstrap logs cycles as warnings while the validate command treats them
// as errors.
func PrerequisiteCycles(modules []Module) [][]string {
	graph := make(map[string][]string, len(modules))
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		known[m.ID] = true
	}
	for _, m := range modules {
		graph[m.ID] = []string{}
		for _, pre := range m.PrerequisiteIDs {
			if known[pre] {
				graph[m.ID] = append(graph[m.ID], pre)
			}
		}
	}

	sccs := tarjanSCC(graph)

	var cycles [][]string
	for _, scc := range sccs {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			cycles = append(cycles, closeCyclePath(scc, graph))
		}
	}
	return cycles
}

func hasSelfLoop(node string, graph map[string][]string) bool {
	for _, n := range graph[node] {
		if n == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components. Single nodes without
// self-loops are not cycles.
func tarjanSCC(graph map[string][]string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for node := range graph {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// closeCyclePath walks edges inside the SCC from its first member until the
// walk returns to the start, yielding a readable cycle path.
func closeCyclePath(scc []string, graph map[string][]string) []string {
	if len(scc) == 1 {
		return []string{scc[0], scc[0]}
	}

	member := make(map[string]bool, len(scc))
	for _, n := range scc {
		member[n] = true
	}

	start := scc[0]
	current := start
	path := []string{start}
	visited := make(map[string]bool)
	for {
		visited[current] = true
		next := ""
		for _, n := range graph[current] {
			if member[n] && (!visited[n] || n == start) {
				next = n
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}
	return path
}
