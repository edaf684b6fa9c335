package models

import "gorm.io/gorm"

// Course represents a catalog course offering.
//
// EnrolledSeats is derived state: it must always equal the number of
// enrollment records for the course with status ENROLLED. Only the
// registry package may write it.
type Course struct {
	gorm.Model
	Code          string `json:"code" gorm:"uniqueIndex;not null"`
	Name          string `json:"name" gorm:"not null"`
	Instructor    string `json:"instructor"`
	Credits       int    `json:"credits" gorm:"default:0"`
	TotalSeats    int    `json:"total_seats" gorm:"default:0"`
	EnrolledSeats int    `json:"enrolled_seats" gorm:"default:0"`
	Schedule      string `json:"schedule"`
	Department    string `json:"department" gorm:"index"`
	Description   string `json:"description"`
	IsDeleted     bool   `gorm:"default:false"`
}
