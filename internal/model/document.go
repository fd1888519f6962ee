package model

import (
	"time"

	"gorm.io/gorm"
)

// Document kinds: what the attachment belongs to.
const (
	DocumentSurvey   = 0
	DocumentQuestion = 1
)

// Document is a file attached to a survey or a question. URL is relative to
// the upload root.
type Document struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Kind      int            `json:"kind" gorm:"not null;index:idx_document_owner"`
	OwnerID   uint           `json:"owner_id" gorm:"not null;index:idx_document_owner"`
	URL       string         `json:"url" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
