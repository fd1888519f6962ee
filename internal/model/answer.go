package model

import "time"

// Answer is one stored answer row. Multi-select questions produce one row per
// chosen option; other types produce a single row. The full answer set of a
// participation is replaced atomically on resubmission.
type Answer struct {
	ID              uint `gorm:"primarykey" json:"id"`
	ParticipationID uint `json:"participation_id" gorm:"not null;index"`
	SurveyID        uint `json:"survey_id" gorm:"not null;index"`
	QuestionID      uint `json:"question_id" gorm:"not null;index"`

	// Value holds the free text, the numeric scale value, or the chosen
	// option's label at submission time. A label snapshot that no longer
	// matches the live option label invalidates the stored choice.
	Value    string `json:"value" gorm:"type:text"`
	OptionID *uint  `json:"option_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
}
