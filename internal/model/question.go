package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types. Choice-based types (multi and single select) carry Options;
// linear scale stores numeric labels as options; free text has none.
const (
	QuestionMultiSelect  = 0
	QuestionSingleSelect = 1
	QuestionLinearScale  = 2
	QuestionFreeText     = 3
)

type Question struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	SurveyID uint   `json:"survey_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"not null"`
	Type     int    `json:"type" gorm:"not null"`
	// Imperative questions must be answered before a submission is accepted.
	Imperative bool `json:"imperative" gorm:"default:false"`

	Options []Option `json:"options,omitempty" gorm:"foreignKey:QuestionID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasOptions reports whether the question type carries selectable options.
func (q *Question) HasOptions() bool {
	return q.Type == QuestionMultiSelect || q.Type == QuestionSingleSelect || q.Type == QuestionLinearScale
}
