package registry

import "errors"

// Business outcomes. These are surfaced to the caller verbatim and are
// never retried.
var (
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrCourseFull      = errors.New("course is full")
	ErrNotEnrolled     = errors.New("not enrolled in this course")
	ErrCourseNotFound  = errors.New("course not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrCapacityTooLow  = errors.New("capacity below current enrolled count")
	ErrCourseNotEmpty  = errors.New("course has active enrollments")
)

// ErrUnavailable wraps a transient storage failure that survived the
// bounded retry loop. Callers may safely retry the whole request.
var ErrUnavailable = errors.New("registration temporarily unavailable")

// isBusinessError reports whether err is a terminal business outcome
// rather than a transient infrastructure failure.
func isBusinessError(err error) bool {
	return errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrCourseFull) ||
		errors.Is(err, ErrNotEnrolled) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrCapacityTooLow) ||
		errors.Is(err, ErrCourseNotEmpty)
}
