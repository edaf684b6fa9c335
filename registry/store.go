package registry

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"registra/models"
)

// CourseStore owns course capacity. Capacity changes and course
// retirement take the same per-course lock as the coordinator so they
// cannot interleave with an enroll or drop on the same course.
type CourseStore struct {
	db    *gorm.DB
	locks *courseLocks
}

// Capacity returns TotalSeats for the course.
func (s *CourseStore) Capacity(ctx context.Context, courseID uint) (int, error) {
	course, err := s.get(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return course.TotalSeats, nil
}

// EnrolledCount returns the cached enrolled_seats counter.
func (s *CourseStore) EnrolledCount(ctx context.Context, courseID uint) (int, error) {
	course, err := s.get(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return course.EnrolledSeats, nil
}

// SetCapacity changes TotalSeats. Lowering it below the current active
// enrollment count fails with ErrCapacityTooLow.
func (s *CourseStore) SetCapacity(ctx context.Context, courseID uint, seats int) error {
	lock := s.locks.For(courseID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
			Count(&active).Error; err != nil {
			return err
		}
		if int64(seats) < active {
			return ErrCapacityTooLow
		}

		return tx.Model(&course).UpdateColumn("total_seats", seats).Error
	})
}

// Retire soft-deletes a course. Courses with active enrollments cannot
// be retired; callers must drop or complete them first.
func (s *CourseStore) Retire(ctx context.Context, courseID uint) error {
	lock := s.locks.For(courseID)
	lock.Lock()
	defer lock.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrCourseNotEmpty
		}

		return tx.Model(&course).UpdateColumn("is_deleted", true).Error
	})
}

// Recount recomputes enrolled_seats from the ledger and repairs the
// counter when it drifted. It returns the authoritative count and
// whether a repair happened. Used by the reconcile job.
func (s *CourseStore) Recount(ctx context.Context, courseID uint) (int64, bool, error) {
	lock := s.locks.For(courseID)
	lock.Lock()
	defer lock.Unlock()

	var count int64
	repaired := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ?", courseID).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}

		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
			Count(&count).Error; err != nil {
			return err
		}

		if int64(course.EnrolledSeats) == count {
			return nil
		}

		if err := tx.Model(&course).UpdateColumn("enrolled_seats", count).Error; err != nil {
			return err
		}
		repaired = true

		rec := models.Enrollment{CourseID: courseID}
		return appendEvent(tx, &rec, models.EventActionReconciled, map[string]interface{}{
			"previous":      course.EnrolledSeats,
			"recounted":     count,
			"reconciled_at": time.Now().Format(time.RFC3339),
		})
	})
	return count, repaired, err
}

func (s *CourseStore) get(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}
