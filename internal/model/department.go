package model

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DepartmentMember records a user's membership in a department. Only rows
// that are active and not soft-deleted count toward survey visibility.
type DepartmentMember struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	DepartmentID uint           `json:"department_id" gorm:"not null;index"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	Active       bool           `json:"active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
