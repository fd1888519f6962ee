package model

import "time"

// Participation records that a user has answered a survey. Its existence is
// the Unanswered/Answered state for the (survey, user) pair; the unique index
// is the correctness backstop against concurrent double-submits.
type Participation struct {
	ID       uint `gorm:"primarykey" json:"id"`
	SurveyID uint `json:"survey_id" gorm:"not null;uniqueIndex:idx_participation_survey_user"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_participation_survey_user"`
	User     User `json:"-" gorm:"foreignKey:UserID"`
	// UserName is snapshotted at first submission for reporting.
	UserName string `json:"user_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
