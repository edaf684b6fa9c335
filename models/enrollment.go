package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EnrollmentStatusEnrolled  = "ENROLLED"
	EnrollmentStatusDropped   = "DROPPED"
	EnrollmentStatusCompleted = "COMPLETED"
)

// Enrollment is one ledger row of the student/course registration history.
// Rows are never deleted; a drop flips Status and a re-enrollment after a
// drop creates a fresh row. At most one row per (student, course) pair may
// hold status ENROLLED at any time.
type Enrollment struct {
	gorm.Model
	Reference  string     `json:"reference" gorm:"uniqueIndex;not null"`
	StudentID  uint       `json:"student_id" gorm:"index;not null"`
	CourseID   uint       `json:"course_id" gorm:"index;not null"`
	Status     string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, DROPPED, COMPLETED
	Grade      *string    `json:"grade"`
	EnrolledAt time.Time  `json:"enrolled_at"`
	DroppedAt  *time.Time `json:"dropped_at"`
	Student    User       `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course     Course     `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
