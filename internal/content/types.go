package content

import "time"

// Module is one unit of the curriculum. Modules are ordered by Order and may
// require other modules as prerequisites. A module owns its lessons; lessons
// carry a back-reference via ModuleID.
type Module struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	Icon             string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order            int      `json:"order" yaml:"order"`
	PrerequisiteIDs  []string `json:"prerequisiteIds" yaml:"prerequisiteIds"`
	EstimatedMinutes int      `json:"estimatedMinutes" yaml:"estimatedMinutes"`
	Lessons          []Lesson `json:"lessons" yaml:"lessons"`
}

// Lesson is a single piece of teaching content within a module. Body holds
// markdown text.
type Lesson struct {
	ID            string         `json:"id" yaml:"id"`
	ModuleID      string         `json:"moduleId" yaml:"moduleId"`
	Title         string         `json:"title" yaml:"title"`
	Body          string         `json:"body" yaml:"body"`
	BloomLevel    BloomLevel     `json:"bloomLevel" yaml:"bloomLevel"`
	LearnerLevels []LearnerLevel `json:"learnerLevels" yaml:"learnerLevels"`
	Order         int            `json:"order" yaml:"order"`
}

// GlossaryTerm is a dictionary entry. RelatedTerms are free-text labels, not
// enforced references.
type GlossaryTerm struct {
	ID           string       `json:"id" yaml:"id"`
	Term         string       `json:"term" yaml:"term"`
	Definition   string       `json:"definition" yaml:"definition"`
	Category     TermCategory `json:"category" yaml:"category"`
	RelatedTerms []string     `json:"relatedTerms,omitempty" yaml:"relatedTerms,omitempty"`
	Examples     []string     `json:"examples,omitempty" yaml:"examples,omitempty"`
	References   []string     `json:"references,omitempty" yaml:"references,omitempty"`
}

// LOINCCode is a sample LOINC entry, keyed by its external code.
type LOINCCode struct {
	Code        string        `json:"code" yaml:"code"`
	Component   string        `json:"component" yaml:"component"`
	Property    string        `json:"property" yaml:"property"`
	Timing      string        `json:"timing" yaml:"timing"`
	System      string        `json:"system" yaml:"system"`
	Scale       string        `json:"scale" yaml:"scale"`
	Method      string        `json:"method,omitempty" yaml:"method,omitempty"`
	DisplayName string        `json:"displayName" yaml:"displayName"`
	Category    LOINCCategory `json:"category" yaml:"category"`
}

// Relationship is a typed link from a SNOMED concept to a target label.
type Relationship struct {
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target" yaml:"target"`
}

// SNOMEDCode is a sample SNOMED CT concept, keyed by its concept id.
// Hierarchy lists ancestor labels from root to the concept itself.
type SNOMEDCode struct {
	ConceptID          string         `json:"conceptId" yaml:"conceptId"`
	Term               string         `json:"term" yaml:"term"`
	FullySpecifiedName string         `json:"fullySpecifiedName" yaml:"fullySpecifiedName"`
	SemanticTag        string         `json:"semanticTag" yaml:"semanticTag"`
	Hierarchy          []string       `json:"hierarchy" yaml:"hierarchy"`
	Relationships      []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// ValidationRule declares a check on a workflow step field. Failures surface
// as human-readable messages, never as errors thrown past the UI layer.
type ValidationRule struct {
	Field        string               `json:"field" yaml:"field"`
	Rule         string               `json:"rule" yaml:"rule"`
	Parameters   map[string]StepValue `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ErrorMessage string               `json:"errorMessage" yaml:"errorMessage"`
}

// WorkflowStep is one stage in a case scenario's workflow. Inputs and
// Outputs are closed tagged variants rather than freeform values so the
// datasets stay typed while generic key/value rendering still works.
type WorkflowStep struct {
	ID                string               `json:"id" yaml:"id"`
	Name              string               `json:"name" yaml:"name"`
	Description       string               `json:"description" yaml:"description"`
	Order             int                  `json:"order" yaml:"order"`
	Status            StepStatus           `json:"status" yaml:"status"`
	Inputs            map[string]StepValue `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs           map[string]StepValue `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	ValidationRules   []ValidationRule     `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	EstimatedDuration int                  `json:"estimatedDuration" yaml:"estimatedDuration"`
	AssignedRole      string               `json:"assignedRole" yaml:"assignedRole"`
	QCRequired        bool                 `json:"qcRequired" yaml:"qcRequired"`
}

// CaseContext situates a case scenario clinically.
type CaseContext struct {
	CaseType        string `json:"caseType" yaml:"caseType"`
	SpecimenType    string `json:"specimenType" yaml:"specimenType"`
	ClinicalContext string `json:"clinicalContext" yaml:"clinicalContext"`
}

// CodingChallenge lists the codes a learner should arrive at for a case.
type CodingChallenge struct {
	Diagnoses []string `json:"diagnoses" yaml:"diagnoses"`
	LOINC     []string `json:"loinc" yaml:"loinc"`
	SNOMED    []string `json:"snomed" yaml:"snomed"`
}

// CaseScenario is a guided walkthrough of a digital pathology case. It is
// conceptual teaching material; no real diagnosis is rendered.
type CaseScenario struct {
	ID                 string           `json:"id" yaml:"id"`
	Title              string           `json:"title" yaml:"title"`
	Description        string           `json:"description" yaml:"description"`
	LearningObjectives []string         `json:"learningObjectives" yaml:"learningObjectives"`
	Context            CaseContext      `json:"context" yaml:"context"`
	Workflow           []WorkflowStep   `json:"workflow" yaml:"workflow"`
	CodingChallenge    *CodingChallenge `json:"codingChallenge,omitempty" yaml:"codingChallenge,omitempty"`
	Reflection         []string         `json:"reflection,omitempty" yaml:"reflection,omitempty"`
}

// AssessmentOption is one selectable answer to a question.
type AssessmentOption struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// AssessmentQuestion is a question in the assessment bank. CorrectAnswers
// holds the option ids that together form the correct answer set.
type AssessmentQuestion struct {
	ID             string             `json:"id" yaml:"id"`
	ModuleID       string             `json:"moduleId" yaml:"moduleId"`
	Type           QuestionType       `json:"type" yaml:"type"`
	Question       string             `json:"question" yaml:"question"`
	Options        []AssessmentOption `json:"options" yaml:"options"`
	CorrectAnswers []string           `json:"correctAnswers" yaml:"correctAnswers"`
	Explanation    string             `json:"explanation" yaml:"explanation"`
	BloomLevel     BloomLevel         `json:"bloomLevel" yaml:"bloomLevel"`
	Difficulty     Difficulty         `json:"difficulty" yaml:"difficulty"`
	Tags           []string           `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// AssessmentResult records one attempt at a question. Attempts are history:
// repeated attempts at the same question are all kept.
type AssessmentResult struct {
	QuestionID  string    `json:"questionId"`
	UserAnswers []string  `json:"userAnswers"`
	IsCorrect   bool      `json:"isCorrect"`
	Timestamp   time.Time `json:"timestamp"`
}

// Achievement marks a milestone the learner has unlocked.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// UserProgress is the single mutable record per installation. Completed-id
// sets are monotonic: ids are only ever added, and only a full reset removes
// them.
type UserProgress struct {
	UserID             string             `json:"userId"`
	CompletedLessons   []string           `json:"completedLessons"`
	CompletedModules   []string           `json:"completedModules"`
	AssessmentResults  []AssessmentResult `json:"assessmentResults"`
	LastAccessedLesson string             `json:"lastAccessedLesson,omitempty"`
	TotalTimeSpent     int                `json:"totalTimeSpent"`
	Achievements       []Achievement      `json:"achievements"`
}

// NewUserProgress returns an empty progress record for the given user id.
func NewUserProgress(userID string) UserProgress {
	return UserProgress{
		UserID:            userID,
		CompletedLessons:  []string{},
		CompletedModules:  []string{},
		AssessmentResults: []AssessmentResult{},
		Achievements:      []Achievement{},
	}
}

// LessonCompleted reports whether the lesson id is in the completed set.
func (p UserProgress) LessonCompleted(id string) bool {
	for _, l := range p.CompletedLessons {
		if l == id {
			return true
		}
	}
	return false
}

// ModuleCompleted reports whether the module id is in the completed set.
func (p UserProgress) ModuleCompleted(id string) bool {
	for _, m := range p.CompletedModules {
		if m == id {
			return true
		}
	}
	return false
}
