package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"registra/models"
)

// Ledger reads the enrollment history. It exposes no delete: rows are
// permanent and drops only flip status.
type Ledger struct {
	db *gorm.DB
}

// RecordsForStudent returns every ledger row for the student, newest
// first.
func (l *Ledger) RecordsForStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	var records []models.Enrollment
	err := l.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&records).Error
	return records, err
}

// RecordsForCourse returns every ledger row for the course, newest first.
func (l *Ledger) RecordsForCourse(ctx context.Context, courseID uint) ([]models.Enrollment, error) {
	var records []models.Enrollment
	err := l.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&records).Error
	return records, err
}

// ActiveRecord returns the pair's ENROLLED row, or nil when none exists.
func (l *Ledger) ActiveRecord(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	var record models.Enrollment
	err := l.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND status = ?",
			studentID, courseID, models.EnrollmentStatusEnrolled).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ActiveCount returns the number of ENROLLED rows for the course,
// recomputed from the ledger rather than read from the cached counter.
func (l *Ledger) ActiveCount(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
		Count(&count).Error
	return count, err
}
