package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	EmployeeNo   string         `json:"employee_no" gorm:"not null;uniqueIndex"`
	Name         string         `json:"name" gorm:"not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Title        string         `json:"title,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"not null;uniqueIndex"` // admin, survey_management, survey_reporting
}

type UserRole struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	RoleID uint `json:"role_id" gorm:"not null;index"`
	Role   Role `json:"-" gorm:"foreignKey:RoleID"`
}
