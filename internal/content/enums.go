package content

// BloomLevel tags a lesson or question with its cognitive level in Bloom's
// taxonomy.
type BloomLevel string

const (
	BloomRemember   BloomLevel = "Remember"
	BloomUnderstand BloomLevel = "Understand"
	BloomApply      BloomLevel = "Apply"
	BloomAnalyze    BloomLevel = "Analyze"
	BloomEvaluate   BloomLevel = "Evaluate"
	BloomCreate     BloomLevel = "Create"
)

// Valid reports whether the level is a member of the fixed enumeration.
func (b BloomLevel) Valid() bool {
	switch b {
	case BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate:
		return true
	}
	return false
}

// LearnerLevel identifies the intended audience for a lesson.
type LearnerLevel string

const (
	LearnerMS3       LearnerLevel = "MS3"
	LearnerMS4       LearnerLevel = "MS4"
	LearnerResident  LearnerLevel = "Resident"
	LearnerFellow    LearnerLevel = "Fellow"
	LearnerAttending LearnerLevel = "Attending"
)

// Valid reports whether the level is a member of the fixed enumeration.
func (l LearnerLevel) Valid() bool {
	switch l {
	case LearnerMS3, LearnerMS4, LearnerResident, LearnerFellow, LearnerAttending:
		return true
	}
	return false
}

// TermCategory classifies a glossary term.
type TermCategory string

const (
	CategoryPathology     TermCategory = "Pathology"
	CategoryInformatics   TermCategory = "Informatics"
	CategoryAIML          TermCategory = "AI/ML"
	CategoryRegulatory    TermCategory = "Regulatory"
	CategoryDataStandards TermCategory = "Data Standards"
)

// Valid reports whether the category is a member of the fixed enumeration.
func (c TermCategory) Valid() bool {
	switch c {
	case CategoryPathology, CategoryInformatics, CategoryAIML, CategoryRegulatory, CategoryDataStandards:
		return true
	}
	return false
}

// LOINCCategory classifies a LOINC code sample.
type LOINCCategory string

const (
	LOINCLab      LOINCCategory = "LAB"
	LOINCClinical LOINCCategory = "CLINICAL"
	LOINCSurvey   LOINCCategory = "SURVEY"
	LOINCClaims   LOINCCategory = "CLAIMS"
)

// Valid reports whether the category is a member of the fixed enumeration.
func (c LOINCCategory) Valid() bool {
	switch c {
	case LOINCLab, LOINCClinical, LOINCSurvey, LOINCClaims:
		return true
	}
	return false
}

// QuestionType identifies the answer mechanics of an assessment question.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionMultipleSelect QuestionType = "multiple-select"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionMatching       QuestionType = "matching"
	QuestionScenario       QuestionType = "scenario"
)

// Valid reports whether the type is a member of the fixed enumeration.
func (q QuestionType) Valid() bool {
	switch q {
	case QuestionMultipleChoice, QuestionMultipleSelect, QuestionTrueFalse, QuestionMatching, QuestionScenario:
		return true
	}
	return false
}

// Difficulty rates an assessment question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether the difficulty is a member of the fixed enumeration.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StepStatus tracks a workflow step through a case scenario walkthrough.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

// Valid reports whether the status is a member of the fixed enumeration.
func (s StepStatus) Valid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted, StepFailed, StepSkipped:
		return true
	}
	return false
}
