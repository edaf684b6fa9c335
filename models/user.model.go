package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name       string     `json:"name" gorm:"default:''"`
	Email      string     `json:"email" gorm:"unique;not null"`
	Password   string     `json:"-" gorm:"not null"`
	Role       string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, FACULTY, ADMIN
	Department string     `json:"department" gorm:"default:''"`
	LastLogin  *time.Time `json:"last_login"`
	IsDeleted  bool       `gorm:"default:false"`
}
