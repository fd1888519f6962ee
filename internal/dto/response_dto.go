package dto

import "time"

// ErrorResponse is the uniform error body. Code is set for machine-readable
// signals the UI keys on, e.g. "no_change" on an unchanged resubmission.
type ErrorResponse struct {
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OptionResponse struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type QuestionResponse struct {
	ID          uint             `json:"id"`
	SurveyID    uint             `json:"survey_id"`
	Title       string           `json:"title"`
	Type        int              `json:"type"`
	Imperative  bool             `json:"imperative"`
	Options     []OptionResponse `json:"options,omitempty"`
	DocumentURL *string          `json:"document_url,omitempty"`
}

// SurveySummaryResponse is one row of a survey listing.
type SurveySummaryResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	StartDate   string               `json:"start_date"`
	StartTime   string               `json:"start_time"`
	FinishDate  string               `json:"finish_date"`
	FinishTime  string               `json:"finish_time"`
	ForceActive bool                 `json:"force_active"`
	Open        bool                 `json:"open"`
	Type        int                  `json:"type"`
	Status      string               `json:"status"`
	CreatorName string               `json:"creator_name,omitempty"`
	Completed   bool                 `json:"completed"`
	Departments []DepartmentResponse `json:"departments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ParticipatedSurveyResponse lists a survey the user has answered, with the
// participation timestamps.
type ParticipatedSurveyResponse struct {
	SurveySummaryResponse
	ParticipatedAt time.Time `json:"participated_at"`
	LastUpdatedAt  time.Time `json:"last_updated_at"`
}

type AnswerResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Value      string `json:"value"`
	OptionID   *uint  `json:"option_id,omitempty"`
}

// SurveyDetailResponse is everything a client needs to render the form:
// questions with live options, the caller's participation state and any
// previously stored answers.
type SurveyDetailResponse struct {
	Survey          SurveySummaryResponse `json:"survey"`
	DocumentURL     *string               `json:"document_url,omitempty"`
	Questions       []QuestionResponse    `json:"questions"`
	Participated    bool                  `json:"participated"`
	ExistingAnswers []AnswerResponse      `json:"existing_answers,omitempty"`
	Departments     []DepartmentResponse  `json:"departments,omitempty"`
}

// SubmissionResponse acknowledges a stored submission.
type SubmissionResponse struct {
	ParticipationID uint `json:"participation_id"`
	Updated         bool `json:"updated"`
}

// SurveyCreatedResponse acknowledges survey creation.
type SurveyCreatedResponse struct {
	SurveyID uint `json:"survey_id"`
}

// DocumentUploadResponse returns the stored relative URL of an attachment.
type DocumentUploadResponse struct {
	URL string `json:"url"`
}
