package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"registra/models"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 50 * time.Millisecond
)

// Coordinator enforces the two registration invariants: a course never
// holds more ENROLLED records than TotalSeats, and a (student, course)
// pair never holds more than one ENROLLED record.
//
// Each operation takes the course lock, then runs one transaction per
// attempt. Transient storage errors are retried with exponential backoff
// up to maxAttempts before surfacing ErrUnavailable.
type Coordinator struct {
	db          *gorm.DB
	locks       *courseLocks
	maxAttempts int
	backoff     time.Duration
}

// Enroll registers studentID into courseID and returns the new ledger
// record. Exactly one caller wins the last open seat.
func (co *Coordinator) Enroll(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	lock := co.locks.For(courseID)
	lock.Lock()
	defer lock.Unlock()

	var enrollment *models.Enrollment
	err := co.withRetry(ctx, func() error {
		enrollment = nil
		return co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var student models.User
			if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStudentNotFound
				}
				return err
			}

			var course models.Course
			if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCourseNotFound
				}
				return err
			}

			var active models.Enrollment
			err := tx.Where("student_id = ? AND course_id = ? AND status = ?",
				studentID, courseID, models.EnrollmentStatusEnrolled).First(&active).Error
			if err == nil {
				return ErrAlreadyEnrolled
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if course.EnrolledSeats >= course.TotalSeats {
				return ErrCourseFull
			}

			// Guarded increment: the WHERE clause refuses to pass the
			// ceiling even if the counter moved after the read above.
			res := tx.Model(&models.Course{}).
				Where("id = ? AND enrolled_seats < total_seats", courseID).
				UpdateColumn("enrolled_seats", gorm.Expr("enrolled_seats + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCourseFull
			}

			rec := models.Enrollment{
				Reference:  uuid.NewString(),
				StudentID:  studentID,
				CourseID:   courseID,
				Status:     models.EnrollmentStatusEnrolled,
				EnrolledAt: time.Now(),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}

			if err := appendEvent(tx, &rec, models.EventActionEnrolled, map[string]interface{}{
				"reference":   rec.Reference,
				"course_code": course.Code,
				"seat_no":     course.EnrolledSeats + 1,
			}); err != nil {
				return err
			}

			enrollment = &rec
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Drop marks the active enrollment DROPPED and releases the seat. A
// repeated drop of an already-dropped enrollment is a no-op success so
// network retries stay safe; dropping a pair that never enrolled fails
// with ErrNotEnrolled.
func (co *Coordinator) Drop(ctx context.Context, studentID, courseID uint) error {
	lock := co.locks.For(courseID)
	lock.Lock()
	defer lock.Unlock()

	return co.withRetry(ctx, func() error {
		return co.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var course models.Course
			if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCourseNotFound
				}
				return err
			}

			var active models.Enrollment
			err := tx.Where("student_id = ? AND course_id = ? AND status = ?",
				studentID, courseID, models.EnrollmentStatusEnrolled).First(&active).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				var dropped int64
				if err := tx.Model(&models.Enrollment{}).
					Where("student_id = ? AND course_id = ? AND status = ?",
						studentID, courseID, models.EnrollmentStatusDropped).
					Count(&dropped).Error; err != nil {
					return err
				}
				if dropped > 0 {
					// Idempotent retry of an earlier drop.
					return nil
				}
				return ErrNotEnrolled
			}
			if err != nil {
				return err
			}

			now := time.Now()
			if err := tx.Model(&active).Updates(map[string]interface{}{
				"status":     models.EnrollmentStatusDropped,
				"dropped_at": &now,
			}).Error; err != nil {
				return err
			}

			// Floored decrement; the counter cannot go negative even if
			// it was already corrupt.
			res := tx.Model(&models.Course{}).
				Where("id = ? AND enrolled_seats > 0", courseID).
				UpdateColumn("enrolled_seats", gorm.Expr("enrolled_seats - 1"))
			if res.Error != nil {
				return res.Error
			}

			return appendEvent(tx, &active, models.EventActionDropped, map[string]interface{}{
				"reference":   active.Reference,
				"course_code": course.Code,
			})
		})
	})
}

// IsEnrolled reports whether the pair currently holds an ENROLLED record.
// Single consistent read, no lock.
func (co *Coordinator) IsEnrolled(ctx context.Context, studentID, courseID uint) (bool, error) {
	var count int64
	err := co.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status = ?",
			studentID, courseID, models.EnrollmentStatusEnrolled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// withRetry runs op up to maxAttempts times. Business outcomes and
// context cancellation return immediately; anything else backs off and
// retries, then surfaces as ErrUnavailable.
func (co *Coordinator) withRetry(ctx context.Context, op func() error) error {
	backoff := co.backoff
	var last error
	for attempt := 1; attempt <= co.maxAttempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if isBusinessError(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		last = err
		log.Printf("[REGISTRY] attempt %d/%d failed: %v", attempt, co.maxAttempts, err)
		if attempt == co.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, last)
}

// appendEvent writes the audit row inside the caller's transaction.
func appendEvent(tx *gorm.DB, rec *models.Enrollment, action string, detail map[string]interface{}) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	event := models.EnrollmentEvent{
		EnrollmentID: rec.ID,
		StudentID:    rec.StudentID,
		CourseID:     rec.CourseID,
		Action:       action,
		Detail:       datatypes.JSON(payload),
	}
	return tx.Create(&event).Error
}
