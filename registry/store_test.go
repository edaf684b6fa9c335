package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"registra/models"
)

func TestSetCapacity(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 10)

	require.NoError(t, reg.Courses.SetCapacity(context.Background(), courseID, 25))

	seats, err := reg.Courses.Capacity(context.Background(), courseID)
	require.NoError(t, err)
	require.Equal(t, 25, seats)
}

func TestSetCapacityBelowEnrolledFails(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sid := seedStudent(t, db, string(rune('a'+i))+"@uni.edu")
		_, err := reg.Coordinator.Enroll(ctx, sid, courseID)
		require.NoError(t, err)
	}

	err := reg.Courses.SetCapacity(ctx, courseID, 2)
	require.ErrorIs(t, err, ErrCapacityTooLow)

	// Shrinking down to the enrolled count is allowed
	require.NoError(t, reg.Courses.SetCapacity(ctx, courseID, 3))

	// And the course is now full
	sid := seedStudent(t, db, "late@uni.edu")
	_, err = reg.Coordinator.Enroll(ctx, sid, courseID)
	require.ErrorIs(t, err, ErrCourseFull)
}

func TestRaisingCapacityOpensSeats(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 1)
	ctx := context.Background()

	alice := seedStudent(t, db, "alice@uni.edu")
	bob := seedStudent(t, db, "bob@uni.edu")

	_, err := reg.Coordinator.Enroll(ctx, alice, courseID)
	require.NoError(t, err)
	_, err = reg.Coordinator.Enroll(ctx, bob, courseID)
	require.ErrorIs(t, err, ErrCourseFull)

	require.NoError(t, reg.Courses.SetCapacity(ctx, courseID, 2))

	_, err = reg.Coordinator.Enroll(ctx, bob, courseID)
	require.NoError(t, err)
	requireCounterConsistent(t, db, courseID)
}

func TestEnrolledCount(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 10)
	ctx := context.Background()

	count, err := reg.Courses.EnrolledCount(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	sid := seedStudent(t, db, "alice@uni.edu")
	_, err = reg.Coordinator.Enroll(ctx, sid, courseID)
	require.NoError(t, err)

	count, err = reg.Courses.EnrolledCount(ctx, courseID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRecountRepairsDrift(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 10)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		sid := seedStudent(t, db, string(rune('a'+i))+"@uni.edu")
		_, err := reg.Coordinator.Enroll(ctx, sid, courseID)
		require.NoError(t, err)
	}

	// Simulate drift left behind by a writer that bypassed the registry
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("enrolled_seats", 7).Error)

	count, repaired, err := reg.Courses.Recount(ctx, courseID)
	require.NoError(t, err)
	require.True(t, repaired)
	require.Equal(t, int64(2), count)
	requireCounterConsistent(t, db, courseID)

	// Repair is recorded in the audit trail
	var events int64
	require.NoError(t, db.Model(&models.EnrollmentEvent{}).
		Where("course_id = ? AND action = ?", courseID, models.EventActionReconciled).
		Count(&events).Error)
	require.Equal(t, int64(1), events)

	// A clean counter is left alone
	_, repaired, err = reg.Courses.Recount(ctx, courseID)
	require.NoError(t, err)
	require.False(t, repaired)
}

func TestRetire(t *testing.T) {
	reg, db := newTestRegistry(t)
	courseID := seedCourse(t, db, "CS101", 10)
	ctx := context.Background()

	sid := seedStudent(t, db, "alice@uni.edu")
	_, err := reg.Coordinator.Enroll(ctx, sid, courseID)
	require.NoError(t, err)

	err = reg.Courses.Retire(ctx, courseID)
	require.ErrorIs(t, err, ErrCourseNotEmpty)

	require.NoError(t, reg.Coordinator.Drop(ctx, sid, courseID))
	require.NoError(t, reg.Courses.Retire(ctx, courseID))

	_, err = reg.Courses.Capacity(ctx, courseID)
	require.ErrorIs(t, err, ErrCourseNotFound)

	// The ledger history survives retirement
	records, err := reg.Ledger.RecordsForCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, records, 1)
}
