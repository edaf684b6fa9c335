package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"registra/models"
)

func TestEnroll(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	rec, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, models.EnrollmentStatusEnrolled, rec.Status)
	require.NotEmpty(t, rec.Reference)
	require.False(t, rec.EnrolledAt.IsZero())

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 1, course.EnrolledSeats)

	// Audit row is written in the same transaction
	var events int64
	require.NoError(t, db.Model(&models.EnrollmentEvent{}).
		Where("enrollment_id = ? AND action = ?", rec.ID, models.EventActionEnrolled).
		Count(&events).Error)
	require.Equal(t, int64(1), events)

	requireCounterConsistent(t, db, courseID)
}

func TestEnrollTwiceFails(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	_, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)

	_, err = reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	// The rejection left no partial state behind
	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 1, course.EnrolledSeats)
	requireCounterConsistent(t, db, courseID)
}

func TestEnrollCourseFull(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 1)
	alice := seedStudent(t, db, "alice@uni.edu")
	bob := seedStudent(t, db, "bob@uni.edu")

	_, err := reg.Coordinator.Enroll(context.Background(), alice, courseID)
	require.NoError(t, err)

	_, err = reg.Coordinator.Enroll(context.Background(), bob, courseID)
	require.ErrorIs(t, err, ErrCourseFull)

	var records int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&records).Error)
	require.Equal(t, int64(1), records)
}

func TestEnrollUnknownCourse(t *testing.T) {
	reg, db := newTestRegistry(t)
	studentID := seedStudent(t, db, "alice@uni.edu")

	_, err := reg.Coordinator.Enroll(context.Background(), studentID, 9999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnrollUnknownStudent(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)

	_, err := reg.Coordinator.Enroll(context.Background(), 9999, courseID)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestLastSeatRace(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 1)
	alice := seedStudent(t, db, "alice@uni.edu")
	bob := seedStudent(t, db, "bob@uni.edu")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, sid := range []uint{alice, bob} {
		wg.Add(1)
		go func(i int, sid uint) {
			defer wg.Done()
			_, results[i] = reg.Coordinator.Enroll(context.Background(), sid, courseID)
		}(i, sid)
	}
	wg.Wait()

	wins, fulls := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrCourseFull):
			fulls++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins, "exactly one caller wins the last seat")
	require.Equal(t, 1, fulls)

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 1, course.EnrolledSeats)
	requireCounterConsistent(t, db, courseID)
}

func TestConcurrentEnrollNeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	const contenders = 10

	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", capacity)

	students := make([]uint, contenders)
	for i := range students {
		students[i] = seedStudent(t, db, string(rune('a'+i))+"@uni.edu")
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i, sid := range students {
		wg.Add(1)
		go func(i int, sid uint) {
			defer wg.Done()
			_, results[i] = reg.Coordinator.Enroll(context.Background(), sid, courseID)
		}(i, sid)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrCourseFull)
		}
	}
	require.Equal(t, capacity, wins)

	var active int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentStatusEnrolled).
		Count(&active).Error)
	require.Equal(t, int64(capacity), active)
	requireCounterConsistent(t, db, courseID)
}

func TestDrop(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	rec, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)

	require.NoError(t, reg.Coordinator.Drop(context.Background(), studentID, courseID))

	var dropped models.Enrollment
	require.NoError(t, db.First(&dropped, rec.ID).Error)
	require.Equal(t, models.EnrollmentStatusDropped, dropped.Status)
	require.NotNil(t, dropped.DroppedAt)

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 0, course.EnrolledSeats)
	requireCounterConsistent(t, db, courseID)
}

func TestDropIsIdempotent(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	_, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)

	// A retried drop succeeds without decrementing twice
	require.NoError(t, reg.Coordinator.Drop(context.Background(), studentID, courseID))
	require.NoError(t, reg.Coordinator.Drop(context.Background(), studentID, courseID))

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 0, course.EnrolledSeats)
	requireCounterConsistent(t, db, courseID)
}

func TestDropWithoutEnrollment(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	err := reg.Coordinator.Drop(context.Background(), studentID, courseID)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestReenrollAfterDrop(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	first, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)
	require.NoError(t, reg.Coordinator.Drop(context.Background(), studentID, courseID))

	second, err := reg.Coordinator.Enroll(context.Background(), studentID, courseID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID, "re-enrollment creates a fresh ledger row")
	require.NotEqual(t, first.Reference, second.Reference)

	// The ledger keeps the full history; only one row is active
	var total, active int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&total).Error)
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ? AND status = ?",
			studentID, courseID, models.EnrollmentStatusEnrolled).
		Count(&active).Error)
	require.Equal(t, int64(2), total)
	require.Equal(t, int64(1), active)
	requireCounterConsistent(t, db, courseID)
}

func TestCounterConsistencyAfterMixedSequence(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 5)

	students := make([]uint, 6)
	for i := range students {
		students[i] = seedStudent(t, db, string(rune('a'+i))+"@uni.edu")
	}

	ctx := context.Background()
	for _, sid := range students[:5] {
		_, err := reg.Coordinator.Enroll(ctx, sid, courseID)
		require.NoError(t, err)
	}
	_, err := reg.Coordinator.Enroll(ctx, students[5], courseID)
	require.ErrorIs(t, err, ErrCourseFull)

	require.NoError(t, reg.Coordinator.Drop(ctx, students[0], courseID))
	require.NoError(t, reg.Coordinator.Drop(ctx, students[1], courseID))

	// Seats freed by the drops are usable again
	_, err = reg.Coordinator.Enroll(ctx, students[5], courseID)
	require.NoError(t, err)

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 4, course.EnrolledSeats)
	requireCounterConsistent(t, db, courseID)
}

func TestIsEnrolled(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")
	ctx := context.Background()

	enrolled, err := reg.Coordinator.IsEnrolled(ctx, studentID, courseID)
	require.NoError(t, err)
	require.False(t, enrolled)

	_, err = reg.Coordinator.Enroll(ctx, studentID, courseID)
	require.NoError(t, err)

	enrolled, err = reg.Coordinator.IsEnrolled(ctx, studentID, courseID)
	require.NoError(t, err)
	require.True(t, enrolled)

	require.NoError(t, reg.Coordinator.Drop(ctx, studentID, courseID))

	enrolled, err = reg.Coordinator.IsEnrolled(ctx, studentID, courseID)
	require.NoError(t, err)
	require.False(t, enrolled)
}

func TestEnrollCancelledContext(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 30)
	studentID := seedStudent(t, db, "alice@uni.edu")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reg.Coordinator.Enroll(ctx, studentID, courseID)
	require.Error(t, err)

	// No partial state: the aborted attempt wrote nothing
	var records int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&records).Error)
	require.Equal(t, int64(0), records)

	var course models.Course
	require.NoError(t, db.First(&course, courseID).Error)
	require.Equal(t, 0, course.EnrolledSeats)
}
