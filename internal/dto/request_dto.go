package dto

// OptionPayload carries an option inside survey/question mutations. A nil ID
// means a new option; an existing ID updates the stored label in place.
type OptionPayload struct {
	ID    *uint  `json:"id"`
	Label string `json:"label" binding:"required"`
}

// QuestionPayload carries a question inside survey mutations. A nil ID means
// a new question; stored questions missing from the payload are soft-deleted.
type QuestionPayload struct {
	ID         *uint           `json:"id"`
	Title      string          `json:"title" binding:"required"`
	Type       int             `json:"type" binding:"min=0,max=3"`
	Imperative bool            `json:"imperative"`
	Options    []OptionPayload `json:"options" binding:"omitempty,dive"`
}

// SurveyCreateRequest creates a survey with its departments, questions and
// options in one transaction.
type SurveyCreateRequest struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	StartDate     string            `json:"start_date" binding:"required"`
	StartTime     string            `json:"start_time"`
	FinishDate    string            `json:"finish_date" binding:"required"`
	FinishTime    string            `json:"finish_time"`
	Type          int               `json:"type" binding:"min=0,max=2"`
	DepartmentIDs []uint            `json:"department_ids"`
	Questions     []QuestionPayload `json:"questions" binding:"omitempty,dive"`
}

// SurveyUpdateRequest replaces survey fields and reconciles department links,
// questions and options against the stored state.
type SurveyUpdateRequest struct {
	Title         string            `json:"title" binding:"required"`
	Description   string            `json:"description"`
	StartDate     string            `json:"start_date" binding:"required"`
	StartTime     string            `json:"start_time"`
	FinishDate    string            `json:"finish_date" binding:"required"`
	FinishTime    string            `json:"finish_time"`
	Type          int               `json:"type" binding:"min=0,max=2"`
	ForceActive   bool              `json:"force_active"`
	Open          bool              `json:"open"`
	DepartmentIDs []uint            `json:"department_ids"`
	Questions     []QuestionPayload `json:"questions" binding:"omitempty,dive"`
}

// QuestionCreateRequest adds a single question to an existing survey.
type QuestionCreateRequest struct {
	Title      string          `json:"title" binding:"required"`
	Type       int             `json:"type" binding:"min=0,max=3"`
	Imperative bool            `json:"imperative"`
	Options    []OptionPayload `json:"options" binding:"omitempty,dive"`
}

// QuestionUpdateRequest replaces a question's fields and its option set.
type QuestionUpdateRequest struct {
	Title      string          `json:"title" binding:"required"`
	Type       int             `json:"type" binding:"min=0,max=3"`
	Imperative bool            `json:"imperative"`
	Options    []OptionPayload `json:"options" binding:"omitempty,dive"`
}

// AnswerPayload is one candidate answer row. Multi-select questions send one
// row per chosen option; single-select and linear-scale send the chosen
// option; free text sends only a value.
type AnswerPayload struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Value      string `json:"value"`
	OptionID   *uint  `json:"option_id"`
}

// SubmissionRequest is the full answer set for a survey. It replaces any
// previous answers of the same user atomically.
type SubmissionRequest struct {
	Answers []AnswerPayload `json:"answers" binding:"required,dive"`
}
