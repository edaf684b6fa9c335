package models

import "gorm.io/gorm"

// StudentProfile carries academic standing for users with the STUDENT role.
type StudentProfile struct {
	gorm.Model
	UserID       uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	GPA          float64 `json:"gpa" gorm:"default:0"`
	TotalCredits int     `json:"total_credits" gorm:"default:0"`
	User         User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
