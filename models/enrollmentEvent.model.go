package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventActionEnrolled   = "ENROLLED"
	EventActionDropped    = "DROPPED"
	EventActionReconciled = "RECONCILED"
)

// EnrollmentEvent is the audit trail written alongside every registry
// mutation, in the same transaction.
type EnrollmentEvent struct {
	gorm.Model
	EnrollmentID uint           `json:"enrollment_id" gorm:"index"`
	StudentID    uint           `json:"student_id" gorm:"index"`
	CourseID     uint           `json:"course_id" gorm:"index"`
	Action       string         `json:"action"` // ENROLLED, DROPPED, RECONCILED
	Detail       datatypes.JSON `json:"detail"`
}
