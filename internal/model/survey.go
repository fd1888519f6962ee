package model

import (
	"time"

	"gorm.io/gorm"
)

// Survey type tags.
const (
	SurveyTypeNormal   = 0
	SurveyTypeVideo    = 1
	SurveyTypeInternal = 2
)

type Survey struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// Visibility window. Dates are "2006-01-02", times are "15:04"; the
	// status classifier combines them and treats unparseable values as
	// expired.
	StartDate  string `json:"start_date"`
	StartTime  string `json:"start_time"`
	FinishDate string `json:"finish_date"`
	FinishTime string `json:"finish_time"`

	// ForceActive is the administrative override: when set, the survey is
	// active regardless of its date window.
	ForceActive bool `json:"force_active" gorm:"default:false"`
	// Open is the stored open flag, lazily flipped to false once the window
	// has passed its finish instant.
	Open bool `json:"open" gorm:"default:true"`

	Type      int  `json:"type" gorm:"default:0"` // normal, video, internal
	CreatorID uint `json:"creator_id" gorm:"index"`
	Creator   User `json:"-" gorm:"foreignKey:CreatorID"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:SurveyID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SurveyDepartment links a survey to a target department. Links are
// soft-deleted and restored on survey update, never hard-deleted.
type SurveyDepartment struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SurveyID     uint           `json:"survey_id" gorm:"not null;index"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
