package dto

import "time"

// AnswerDistributionResponse is one aggregated answer bucket: how many
// participants gave this answer to this question. For choice questions the
// answer text is the live option label; free-text rows pass through verbatim.
type AnswerDistributionResponse struct {
	QuestionID    uint   `json:"question_id"`
	QuestionTitle string `json:"question_title"`
	QuestionType  int    `json:"question_type"`
	Answer        string `json:"answer"`
	OptionID      *uint  `json:"option_id,omitempty"`
	Count         int64  `json:"count"`
}

type SurveyStatisticsResponse struct {
	TotalParticipants int64                        `json:"total_participants"`
	Distribution      []AnswerDistributionResponse `json:"distribution"`
}

type ParticipantResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	UserName   string    `json:"user_name"`
	EmployeeNo string    `json:"employee_no,omitempty"`
	UserTitle  string    `json:"user_title,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ParticipantAnswerResponse struct {
	QuestionID    uint   `json:"question_id"`
	QuestionTitle string `json:"question_title"`
	QuestionType  int    `json:"question_type"`
	Answer        string `json:"answer"`
	OptionID      *uint  `json:"option_id,omitempty"`
}
